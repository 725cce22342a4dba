package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		expected    func() *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-g", ":6000", "-d", "postgres://db", "-s", "secret",
				"-t", "15", "-k", "12", "-l", "debug",
			},
			expected: func() *Config {
				c := defaults()
				c.EndpointAddrHTTP = "127.0.0.1:9090"
				c.EndpointAddrGRPC = ":6000"
				c.DatabaseDSN = "postgres://db"
				c.SecretKey = "secret"
				c.AccessTokenValidityDuration = 15 * time.Minute
				c.PasswordHashCost = 12
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name:     "no flags keeps values",
			args:     []string{"cmd"},
			expected: defaults,
		},
		{
			name: "config flag and unknown flags are ignored",
			args: []string{"cmd", "-c", "conf.json", "-x", "1", "-s", "other"},
			expected: func() *Config {
				c := defaults()
				c.SecretKey = "other"
				return c
			},
		},
		{
			name:        "non-numeric ttl panics",
			args:        []string{"cmd", "-t", "hour"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := defaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected(), config))
		})
	}
}

func TestParseFlags_KeepsSubMinuteTTLWithoutFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-s", "x"}

	c := &Config{AccessTokenValidityDuration: 90 * time.Second}
	parseFlags(c)

	assert.Equal(t, 90*time.Second, c.AccessTokenValidityDuration)
}
