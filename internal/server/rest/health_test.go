package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeRedisPinger struct{ err error }

func (f fakeRedisPinger) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		redis  RedisPinger
		code   int
		status string
		checks map[string]string
	}{
		{
			name:   "memory store",
			code:   http.StatusOK,
			status: "ok",
			checks: map[string]string{"database": "memory"},
		},
		{
			name:   "database and redis up",
			db:     fakePinger{},
			redis:  fakeRedisPinger{},
			code:   http.StatusOK,
			status: "ok",
			checks: map[string]string{"database": "ok", "redis": "ok"},
		},
		{
			name:   "database down",
			db:     fakePinger{err: errors.New("refused")},
			code:   http.StatusServiceUnavailable,
			status: "unhealthy",
			checks: map[string]string{"database": "down"},
		},
		{
			name:   "redis down",
			db:     fakePinger{},
			redis:  fakeRedisPinger{err: errors.New("refused")},
			code:   http.StatusServiceUnavailable,
			status: "unhealthy",
			checks: map[string]string{"database": "ok", "redis": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tt.db, tt.redis).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.code, rec.Code)
			var out healthResponse
			decode(t, rec, &out)
			assert.Equal(t, tt.status, out.Status)
			assert.Equal(t, tt.checks, out.Checks)
		})
	}
}

func TestHealthRoute(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
