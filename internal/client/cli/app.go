package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	auth   services.AuthService
	tasks  services.TaskService
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	mode     Mode
	lastList []models.Task
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing session store: %w", err)
	}

	app := newApp(c, client.NewHTTPClient(c.ServerURL), metadata.NewSQLiteRepository(db), os.Stdin, os.Stdout)
	app.db = db

	if err := app.auth.Restore(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, api client.Client, meta metadata.Repository, in io.Reader, out io.Writer) *App {
	as := services.NewAuthService(api, meta)
	return &App{
		config: c,
		auth:   as,
		tasks:  services.NewTaskService(api, as),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) Run(ctx context.Context) {
	if a.db != nil {
		defer a.db.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to TaskKeeper CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Resumed session for %s\n", a.auth.Email())
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.auth.Token() != ""
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		fmt.Fprintf(a.out, "\nSwitched to %s mode\n", mode)
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	mode := a.mode
	a.mu.Unlock()

	s := a.auth.Email()
	if mode != "" {
		if s != "" {
			s += " "
		}
		s += string(mode)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
