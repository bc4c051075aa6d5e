// Package config loads CLI settings from defaults, an optional JSON file and
// command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds runtime settings for the TaskKeeper CLI.
type Config struct {
	ServerURL           string        // base URL of the REST API
	SessionDB           string        // sqlite file holding the saved session
	OnlineCheckInterval time.Duration // how often the server is probed
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3001"
	c.SessionDB = "taskkeeper.db"
	c.OnlineCheckInterval = 3 * time.Second
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.OnlineCheckInterval <= 0 {
		return errors.New("online check interval must be positive")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
