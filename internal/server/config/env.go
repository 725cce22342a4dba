package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded, when present, before the environment is read.
// Variables already set in the process environment win over the file.
var envFile = ".env"

// parseEnv overlays LIBRARYLITE_* environment variables onto config.
//
//	LIBRARYLITE_HTTP_ADDR               HTTP bind address
//	LIBRARYLITE_GRPC_ADDR               gRPC health bind address
//	LIBRARYLITE_DATABASE_DSN            database DSN
//	LIBRARYLITE_SECRET_KEY              token signing secret
//	LIBRARYLITE_TOKEN_TTL               token lifetime, Go duration ("60m")
//	LIBRARYLITE_PASSWORD_HASH_COST      bcrypt cost
//	LIBRARYLITE_COOKIE_SECURE           true/false
//	LIBRARYLITE_ADMIN_USERNAME          seeded administrator name
//	LIBRARYLITE_ADMIN_PASSWORD          seeded administrator password
//	LIBRARYLITE_ADMIN_PASSWORD_HASH     seeded administrator bcrypt hash
//	LIBRARYLITE_HEALTH_INTERVAL         gRPC health re-check interval
//	LIBRARYLITE_LOG_LEVEL               debug|info|warn|error
//
// Malformed numeric, boolean or duration values are reported as errors.
func parseEnv(config *Config) error {
	_ = godotenv.Load(envFile)

	lookupString("LIBRARYLITE_HTTP_ADDR", &config.EndpointAddrHTTP)
	lookupString("LIBRARYLITE_GRPC_ADDR", &config.EndpointAddrGRPC)
	lookupString("LIBRARYLITE_DATABASE_DSN", &config.DatabaseDSN)
	lookupString("LIBRARYLITE_SECRET_KEY", &config.SecretKey)
	lookupString("LIBRARYLITE_ADMIN_USERNAME", &config.AdminUsername)
	lookupString("LIBRARYLITE_ADMIN_PASSWORD", &config.AdminPassword)
	lookupString("LIBRARYLITE_ADMIN_PASSWORD_HASH", &config.AdminPasswordHash)
	lookupString("LIBRARYLITE_LOG_LEVEL", &config.LogLevel)

	if err := lookupDuration("LIBRARYLITE_TOKEN_TTL", &config.AccessTokenValidityDuration); err != nil {
		return err
	}
	if err := lookupDuration("LIBRARYLITE_HEALTH_INTERVAL", &config.HealthCheckInterval); err != nil {
		return err
	}

	if v, ok := os.LookupEnv("LIBRARYLITE_PASSWORD_HASH_COST"); ok {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LIBRARYLITE_PASSWORD_HASH_COST: %w", err)
		}
		config.PasswordHashCost = cost
	}

	if v, ok := os.LookupEnv("LIBRARYLITE_COOKIE_SECURE"); ok {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LIBRARYLITE_COOKIE_SECURE: %w", err)
		}
		config.CookieSecure = secure
	}

	return nil
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
