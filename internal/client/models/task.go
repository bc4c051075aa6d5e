// Package models holds the CLI's view of API resources.
package models

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Task struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TaskPatch sends only the fields that are set.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}
