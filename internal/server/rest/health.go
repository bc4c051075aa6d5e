package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// HealthHandler serves /health with database and optional Redis checks.
// A nil database means the in-memory store is in use.
type HealthHandler struct {
	db    Pinger
	redis RedisPinger
}

func NewHealthHandler(db Pinger, redisClient RedisPinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allOK := true

	if h.db == nil {
		checks["database"] = "memory"
	} else if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = "down"
		allOK = false
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
			allOK = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !allOK {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Checks: checks})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Checks: checks})
}
