package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

var knownFlags = []string{"-a", "-g", "-d", "-s", "-t", "-e", "-b", "-r", "-l"}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST bind address (e.g., ":3001")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN or "memory"
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-e string   environment ("development", "production")
//	-b int      bcrypt cost
//	-r string   Redis address for the logout denylist
//	-l string   auth route rate limit (e.g., "20-M")
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and unknown
// flags do not break parsing.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run REST server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.AuthRateLimit, "l", config.AuthRateLimit, "auth rate limit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
		}
	})
	return nil
}
