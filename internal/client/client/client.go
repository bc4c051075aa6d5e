// Package client talks to the TaskKeeper REST API and keeps the CLI's local
// session database.
package client

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (string, error)
	Logout(ctx context.Context, token string) error
	// ListTasks returns all tasks when status is empty.
	ListTasks(ctx context.Context, token, status string) ([]models.Task, error)
	CreateTask(ctx context.Context, token string, t models.NewTask) (*models.Task, error)
	UpdateTask(ctx context.Context, token, id string, p models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
}
