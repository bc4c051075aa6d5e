package models

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	}
	return false
}

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Status      TaskStatus `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// TaskPatch carries a partial update. Nil fields are left untouched; a
// non-nil pointer to "" is an explicit value.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// Apply copies the present fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
