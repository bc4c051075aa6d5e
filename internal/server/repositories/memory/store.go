// Package memory keeps users and tasks in process memory. It backs local
// runs with "-d memory" and the end-to-end tests.
package memory

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Store holds all records behind one RWMutex that is held only for the
// duration of a single repository call.
type Store struct {
	mu sync.RWMutex

	users      map[string]models.User
	emails     map[string]string // normalized email -> user id
	lastNumber int64

	tasks   map[string]taskRecord
	taskSeq int64

	now func() time.Time
}

type taskRecord struct {
	task models.Task
	seq  int64
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]models.User),
		emails: make(map[string]string),
		tasks:  make(map[string]taskRecord),
		now:    time.Now,
	}
}

// Users returns the credential store view.
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

// Tasks returns the task store view.
func (s *Store) Tasks() *TaskRepository {
	return &TaskRepository{s: s}
}
