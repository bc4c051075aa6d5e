package users

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the credential store. Emails are compared case-insensitively;
// callers pass them already normalized.
type Repository interface {
	// Create inserts the user and fills in Number and CreatedAt. A taken
	// email yields common.ErrUserExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
