package config

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pollsite/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig bounds the connection pool of server databases. Zero values
// keep the database/sql defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// OpenDB opens the configured database and sizes its pool. SQLite is limited
// to a single open connection since it allows only one writer at a time.
func OpenDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseType {
	case DatabasePostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case DatabaseMySQL:
		dialector = mysql.Open(cfg.DatabaseURL)
	case DatabaseSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DatabaseURL))
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.LogLevel == "debug" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	configurePool(sqlDB, cfg)

	return db, nil
}

func configurePool(sqlDB *sql.DB, cfg Config) {
	if cfg.DatabaseType == DatabaseSQLite {
		sqlDB.SetMaxOpenConns(1)
		return
	}

	if cfg.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpenConns)
	}
	if cfg.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdleConns)
	}
	if cfg.Pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.Pool.ConnMaxLifetime)
	}
}

// Migrate creates or updates the users, questions and choices tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Question{}, &models.Choice{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + sqlitePragmas
	}
	return path + "?" + sqlitePragmas
}
