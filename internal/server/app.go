// Package server wires configuration, storage, services and transports
// into a running task API and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/rest"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/taskkeeper/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	http   *rest.HTTPServer
	grpc   *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))
	app := &App{config: c, logger: logger}

	var (
		manager repomanager.RepositoryManager
		tx      dbx.Transactor
		conn    dbx.DBTX
	)

	if c.UsesMemoryStore() {
		logger.Warn(ctx, "using in-memory store, data is lost on exit")
		manager = repomanager.NewInMemoryRepositoryManager()
		tx = dbx.NoTx{}
	} else {
		db, err := openDB(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = db

		manager = repomanager.NewPostgresRepositoryManager()
		if err := manager.RunMigrations(ctx, db); err != nil {
			app.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
		tx = dbx.NewSQLTransactor(db, nil)
		conn = db
	}

	var denylist auth.Denylist = auth.NoopDenylist{}
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			app.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		denylist = auth.NewRedisDenylist(app.redis)
	}

	tokens := auth.NewTokenManager([]byte(c.SecretKey), c.TokenTTL)
	us := services.NewUserService(conn, manager, tokens, auth.NewPasswordHasher(c.BcryptCost), denylist)
	ts := services.NewTaskService(conn, tx, manager)

	handler, err := rest.NewRouter(rest.RouterConfig{
		Users:         us,
		Tasks:         ts,
		Health:        app.healthHandler(),
		Logger:        logger,
		Cookies:       rest.CookieSettings{TTL: c.TokenTTL, Secure: !c.IsDevelopment()},
		IsDevelopment: c.IsDevelopment(),
		AuthRateLimit: c.AuthRateLimit,
		Metrics:       true,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("router init error: %w", err)
	}

	app.http = rest.NewHTTPServer(c.EndpointAddrHTTP, handler, logger)
	app.grpc = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, app.storeCheck())

	return app, nil
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// healthHandler avoids handing typed nil clients to the health checks.
func (app *App) healthHandler() *rest.HealthHandler {
	var db rest.Pinger
	if app.db != nil {
		db = app.db
	}
	var rc rest.RedisPinger
	if app.redis != nil {
		rc = app.redis
	}
	return rest.NewHealthHandler(db, rc)
}

func (app *App) storeCheck() gs.Checker {
	if app.db == nil {
		return nil
	}
	return app.db.PingContext
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Close releases the database and Redis connections.
func (app *App) Close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close failed", "error", err)
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(context.Background(), "redis close failed", "error", err)
		}
	}
}

type runner interface {
	Run(ctx context.Context) error
}

// Run starts both servers and blocks until a signal arrives or either
// server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	for _, s := range []runner{app.http, app.grpc} {
		wg.Add(1)
		go func(s runner) {
			defer wg.Done()
			if err := s.Run(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
				cancelFunc()
			}
		}(s)
	}

	wg.Wait()

	app.Close()
	app.logger.Info(context.Background(), "App stopped")
}
