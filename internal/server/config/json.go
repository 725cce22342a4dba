package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/librarylite/internal/flagx"
	"github.com/dmitrijs2005/librarylite/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Every field is
// a pointer so that keys missing from the file leave the current value alone.
// Durations accept both "60m" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	PasswordHashCost            *int            `json:"password_hash_cost"`
	CookieSecure                *bool           `json:"cookie_secure"`
	AdminUsername               *string         `json:"admin_username"`
	AdminPassword               *string         `json:"admin_password"`
	AdminPasswordHash           *string         `json:"admin_password_hash"`
	HealthCheckInterval         *timex.Duration `json:"health_check_interval"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// Without the flag nothing is loaded. An unreadable file or invalid JSON
// panics, like a bad command-line flag does.
func parseJson(config *Config) {
	path := flagx.ConfigFilePath(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.PasswordHashCost, c.PasswordHashCost)
	setIf(&config.CookieSecure, c.CookieSecure)
	setIf(&config.AdminUsername, c.AdminUsername)
	setIf(&config.AdminPassword, c.AdminPassword)
	setIf(&config.AdminPasswordHash, c.AdminPasswordHash)
	setIf(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
