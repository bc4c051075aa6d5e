package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded when present. Variables already set in the process
// environment win over the file.
var envFile = ".env"

// parseEnv overlays values from the process environment.
//
// Recognized variables:
//
//	HTTP_ADDRESS     REST bind address
//	GRPC_ADDRESS     gRPC health bind address
//	DATABASE_DSN     PostgreSQL DSN or "memory"
//	JWT_SECRET       token signing secret
//	TOKEN_TTL        token lifetime ("1h", "30m")
//	APP_ENV          environment name
//	BCRYPT_COST      bcrypt work factor
//	REDIS_ADDR       Redis address for the logout denylist
//	AUTH_RATE_LIMIT  auth route rate, e.g. "20-M"
//	LOG_LEVEL        debug, info, warn or error
func parseEnv(config *Config) error {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	lookupString(&config.EndpointAddrHTTP, "HTTP_ADDRESS")
	lookupString(&config.EndpointAddrGRPC, "GRPC_ADDRESS")
	lookupString(&config.DatabaseDSN, "DATABASE_DSN")
	lookupString(&config.SecretKey, "JWT_SECRET")
	lookupString(&config.Environment, "APP_ENV")
	lookupString(&config.RedisAddr, "REDIS_ADDR")
	lookupString(&config.LogLevel, "LOG_LEVEL")
	if v, ok := os.LookupEnv("AUTH_RATE_LIMIT"); ok {
		config.AuthRateLimit = v
	}

	if v, ok := os.LookupEnv("TOKEN_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		config.TokenTTL = d
	}

	if v, ok := os.LookupEnv("BCRYPT_COST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		config.BcryptCost = n
	}
	return nil
}

func lookupString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
