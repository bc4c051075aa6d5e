package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository stores tasks. It does not check ownership; the service does.
type Repository interface {
	// Create inserts the task and fills in CreatedAt and UpdatedAt.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// GetByID returns common.ErrorNotFound when no task has the id.
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// ListByUser returns the user's tasks newest first. An empty status
	// matches every task.
	ListByUser(ctx context.Context, userID string, status models.TaskStatus) ([]models.Task, error)
	// Update writes title, description and status and refreshes UpdatedAt.
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}
