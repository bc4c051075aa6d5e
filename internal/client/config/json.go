package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
)

type JsonConfig struct {
	ServerURL           string         `json:"server_url"`
	SessionDB           string         `json:"session_db"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays values from the file named by -c/-config.
func parseJson(cfg *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.SessionDB != "" {
		cfg.SessionDB = jc.SessionDB
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	return nil
}
