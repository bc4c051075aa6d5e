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
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:8080", "-g", ":9090", "-d", "db", "-s", "secret",
			"-t", "30", "-e", "production", "-b", "12", "-r", "redis:6379", "-l", "5-S",
		},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:8080",
				EndpointAddrGRPC: ":9090",
				DatabaseDSN:      "db",
				SecretKey:        "secret",
				TokenTTL:         30 * time.Minute,
				Environment:      "production",
				BcryptCost:       12,
				RedisAddr:        "redis:6379",
				AuthRateLimit:    "5-S",
			}},
		{name: "unknown and config flags are ignored", args: []string{"cmd", "-c", "x.json", "-z", "-d", "memory"},
			expected: &Config{
				DatabaseDSN: "memory",
				TokenTTL:    90 * time.Second,
			}},
		{name: "bad number", args: []string{"cmd", "-b", "many"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{TokenTTL: 90 * time.Second}
			err := parseFlags(config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
