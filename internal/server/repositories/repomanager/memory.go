package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every caller from one memory.Store.
// The DBTX handle is ignored; pair it with dbx.NoTx.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.store.Users()
}

func (m *InMemoryRepositoryManager) Tasks(dbx.DBTX) tasks.Repository {
	return m.store.Tasks()
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}
