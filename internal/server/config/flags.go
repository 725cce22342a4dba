package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   database DSN (postgres:// URL or SQLite DSN)
//	-s string   token HMAC secret key
//	-t int      access token validity, minutes
//	-k int      bcrypt cost
//	-l string   log level
//
// os.Args is filtered first so -c/-config and foreign flags do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-k", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.IntVar(&config.PasswordHashCost, "k", config.PasswordHashCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -t overrides, so sub-minute values from other layers survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
