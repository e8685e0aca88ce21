package config

import "time"

const defaultJWTSecret = "your-secret-key-change-this-in-production"

type JWTConfig struct {
	Secret     []byte
	Expiration time.Duration
}

// IsDefaultSecret reports whether no secret was configured.
func (c JWTConfig) IsDefaultSecret() bool {
	return string(c.Secret) == defaultJWTSecret
}
