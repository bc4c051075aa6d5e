package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager([]byte("test-secret"), time.Hour)
}

func newHasher() *auth.PasswordHasher {
	return auth.NewPasswordHasher(bcrypt.MinCost)
}

// newMemoryServices wires both services over one in-memory store.
func newMemoryServices() (*UserService, *TaskService) {
	m := repomanager.NewInMemoryRepositoryManager()
	return NewUserService(nil, m, newTokens(), newHasher(), nil),
		NewTaskService(nil, dbx.NoTx{}, m)
}

// --- fakes ---

type fakeUsersRepo struct {
	byEmail    *models.User
	byEmailErr error
	byID       *models.User
	byIDErr    error
	createErr  error
	created    *models.User
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
}

func (f *fakeUsersRepo) GetByID(context.Context, string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

type fakeTasksRepo struct {
	calls int

	task    *models.Task
	getErr  error
	listErr error
	updErr  error
	delErr  error
	list    []models.Task
}

func (f *fakeTasksRepo) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	f.calls++
	return t, nil
}

func (f *fakeTasksRepo) GetByID(context.Context, string) (*models.Task, error) {
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.task
	return &cp, nil
}

func (f *fakeTasksRepo) ListByUser(context.Context, string, models.TaskStatus) ([]models.Task, error) {
	f.calls++
	return f.list, f.listErr
}

func (f *fakeTasksRepo) Update(_ context.Context, t *models.Task) (*models.Task, error) {
	f.calls++
	if f.updErr != nil {
		return nil, f.updErr
	}
	return t, nil
}

func (f *fakeTasksRepo) Delete(context.Context, string) error {
	f.calls++
	return f.delErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository              { return m.t }

type fakeDenylist struct {
	revoked  map[string]bool
	checkErr error
}

func (d *fakeDenylist) Revoke(_ context.Context, jti string, _ time.Time) error {
	d.revoked[jti] = true
	return nil
}

func (d *fakeDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.revoked[jti], nil
}
