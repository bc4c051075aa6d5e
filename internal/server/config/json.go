package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration file.
// Durations accept both "1h" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	TokenTTL         timex.Duration `json:"token_ttl"`
	Environment      string         `json:"environment"`
	BcryptCost       int            `json:"bcrypt_cost"`
	RedisAddr        string         `json:"redis_addr"`
	AuthRateLimit    *string        `json:"auth_rate_limit"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config. Fields that
// are absent from the file keep their current value. No flag, no file.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Environment, c.Environment)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.LogLevel, c.LogLevel)
	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	// an explicit "" turns rate limiting off
	if c.AuthRateLimit != nil {
		config.AuthRateLimit = *c.AuthRateLimit
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
