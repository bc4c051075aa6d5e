package memory

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type UserRepository struct {
	s *Store
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, taken := r.s.emails[key]; taken {
		return nil, common.ErrUserExists
	}

	r.s.lastNumber++
	user.Number = r.s.lastNumber
	user.CreatedAt = r.s.now().UTC()

	r.s.users[user.ID] = *user
	r.s.emails[key] = user.ID

	out := *user
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[normalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}
