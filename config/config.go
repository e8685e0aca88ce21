package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DatabasePostgres = "postgres"
	DatabaseMySQL    = "mysql"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port          int
	DatabaseType  string
	DatabaseURL   string
	Pool          PoolConfig
	JWT           JWTConfig
	AdminEmail    string
	IndexLimit    int
	MaxIndexLimit int
	LogLevel      string
	LogFormat     string
	GinMode       string
}

// Load resolves the configuration from flags, the environment (optionally
// seeded from a .env file) and defaults, in that order of precedence.
func Load(args []string) (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("pollsite", pflag.ContinueOnError)
	fs.IntP("port", "p", 8080, "Server port")
	fs.StringP("database_type", "t", DatabaseSQLite, "Database type (postgres, mysql or sqlite)")
	fs.StringP("database_url", "d", "", "Database URL or sqlite file path")
	fs.String("log_level", "info", "Log level (debug, info, warn, error)")
	fs.String("log_format", "text", "Log format (text or json)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("jwt_expiration", 24*time.Hour)
	v.SetDefault("index_limit", 5)
	v.SetDefault("max_index_limit", 50)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 2)
	v.SetDefault("db_conn_max_lifetime", 5*time.Minute)

	cfg := Config{
		Port:         v.GetInt("port"),
		DatabaseType: strings.ToLower(strings.TrimSpace(v.GetString("database_type"))),
		DatabaseURL:  strings.TrimSpace(v.GetString("database_url")),
		Pool: PoolConfig{
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
		},
		JWT: JWTConfig{
			Secret:     []byte(v.GetString("jwt_secret")),
			Expiration: v.GetDuration("jwt_expiration"),
		},
		AdminEmail:    strings.ToLower(strings.TrimSpace(v.GetString("admin_email"))),
		IndexLimit:    v.GetInt("index_limit"),
		MaxIndexLimit: v.GetInt("max_index_limit"),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
		LogFormat:     strings.ToLower(v.GetString("log_format")),
		GinMode:       v.GetString("gin_mode"),
	}

	if cfg.DatabaseType == DatabaseSQLite && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "polls.db"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.DatabaseType {
	case DatabasePostgres, DatabaseMySQL, DatabaseSQLite:
	default:
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if len(c.JWT.Secret) == 0 {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}

	if c.Pool.MaxOpenConns < 0 || c.Pool.MaxIdleConns < 0 || c.Pool.ConnMaxLifetime < 0 {
		return errors.New("database pool settings must not be negative")
	}

	if c.IndexLimit <= 0 {
		return errors.New("INDEX_LIMIT must be positive")
	}
	if c.MaxIndexLimit < c.IndexLimit {
		return errors.New("MAX_INDEX_LIMIT must not be lower than INDEX_LIMIT")
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	return nil
}
