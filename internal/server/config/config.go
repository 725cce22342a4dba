// Package config handles configuration for the server component:
// defaults, JSON overlay, environment (including a .env file) and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the LibraryLite server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - EndpointAddrGRPC: bind address for the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL URL (pgx) or SQLite DSN (modernc).
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: session token lifetime.
//   - PasswordHashCost: bcrypt cost for newly hashed passwords.
//   - CookieSecure: sets the Secure attribute on the session cookie.
//   - AdminUsername / AdminPassword / AdminPasswordHash: the account provisioned
//     on an empty database. A non-empty hash takes precedence over the password.
//   - HealthCheckInterval: how often the gRPC health status re-pings the database.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	PasswordHashCost            int
	CookieSecure                bool
	AdminUsername               string
	AdminPassword               string
	AdminPasswordHash           string
	HealthCheckInterval         time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey and the admin password are insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "file:librarylite.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.PasswordHashCost = bcrypt.DefaultCost
	c.CookieSecure = false
	c.AdminUsername = "admin"
	c.AdminPassword = "admin123"
	c.AdminPasswordHash = ""
	c.HealthCheckInterval = 10 * time.Second
	c.LogLevel = "info"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key must not be empty")
	}
	if c.AccessTokenValidityDuration < time.Second {
		return fmt.Errorf("access token validity must be at least 1s, got %s", c.AccessTokenValidityDuration)
	}
	if c.PasswordHashCost < bcrypt.MinCost || c.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("password hash cost must be in [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.PasswordHashCost)
	}
	if c.AdminUsername == "" {
		return errors.New("admin username must not be empty")
	}
	if c.HealthCheckInterval <= 0 {
		return fmt.Errorf("health check interval must be positive, got %s", c.HealthCheckInterval)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
