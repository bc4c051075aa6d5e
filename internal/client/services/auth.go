// Package services holds the CLI's session and task logic on top of the
// API client and the local session store.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/metadata"
)

var ErrNotLoggedIn = errors.New("not logged in")

const (
	keyToken = "token"
	keyEmail = "email"
)

// AuthService keeps the current session in memory and in the local store
// so a restarted CLI stays logged in until the token expires.
type AuthService interface {
	Restore(ctx context.Context) error
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	// Expire forgets the local session after the server rejected it.
	Expire(ctx context.Context) error
	Token() string
	Email() string
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	meta   metadata.Repository

	mu    sync.RWMutex
	token string
	email string
}

func NewAuthService(c client.Client, meta metadata.Repository) AuthService {
	return &authService{client: c, meta: meta}
}

func (a *authService) Restore(ctx context.Context) error {
	token, err := a.meta.Get(ctx, keyToken)
	if err != nil {
		return err
	}
	email, err := a.meta.Get(ctx, keyEmail)
	if err != nil {
		return err
	}
	a.set(string(token), string(email))
	return nil
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) error {
	return a.client.Register(ctx, name, email, password)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.meta.Set(ctx, keyToken, []byte(token)); err != nil {
		return err
	}
	if err := a.meta.Set(ctx, keyEmail, []byte(email)); err != nil {
		return err
	}
	a.set(token, email)
	return nil
}

// Logout clears the local session even when the server cannot be reached.
func (a *authService) Logout(ctx context.Context) error {
	token := a.Token()
	if token == "" {
		return ErrNotLoggedIn
	}
	remoteErr := a.client.Logout(ctx, token)
	if err := a.Expire(ctx); err != nil {
		return err
	}
	return remoteErr
}

func (a *authService) Expire(ctx context.Context) error {
	a.set("", "")
	return a.meta.Clear(ctx)
}

func (a *authService) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *authService) Email() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.email
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) set(token, email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token, a.email = token, email
}
