// Package rest exposes the task API over HTTP: chi routing, the session
// guard, JSON handlers and the operational endpoints.
package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const bannerMessage = "Task Manager API - Backend is running"

type RouterConfig struct {
	Users         UserService
	Tasks         TaskService
	Health        http.Handler
	Logger        logging.Logger
	Cookies       CookieSettings
	IsDevelopment bool
	AuthRateLimit string // ulule/limiter format; empty disables
	Metrics       bool   // expose /metrics
}

func NewRouter(cfg RouterConfig) (http.Handler, error) {
	authLimit, err := NewIPRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger.With("module", "rest")
	guard := NewGuard(cfg.Users, cfg.Logger)
	authH := NewAuthHandler(cfg.Users, cfg.Cookies, cfg.Logger)
	taskH := NewTaskHandler(cfg.Tasks, cfg.Logger)

	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(accessLog(log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(PrometheusMiddleware)
	}
	r.Use(NewSecure(SecureOptions(cfg.IsDevelopment)))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, bannerMessage)
	})
	if cfg.Health != nil {
		r.Get("/health", cfg.Health.ServeHTTP)
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	// only routes that read a body insist on JSON
	jsonOnly := chimid.AllowContentType("application/json")

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authLimit, jsonOnly)
				r.Post("/register", authH.Register)
				r.Post("/login", authH.Login)
			})
			r.Post("/logout", authH.Logout)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(guard.Handler)
			r.With(jsonOnly).Post("/", taskH.Create)
			r.Get("/", taskH.List)
			r.Get("/status/{status}", taskH.ListByStatus)
			r.With(jsonOnly).Put("/{id}", taskH.Update)
			r.Delete("/{id}", taskH.Delete)
		})
	})

	return r, nil
}
