// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, logout and resolving the
// caller behind a session token.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	minPasswordLength = 6
	// bcrypt refuses longer input
	maxPasswordBytes = 72
)

// LoginResult is what a successful login hands to the transport.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a session token
// - Logout: revoke the presented token when a denylist is configured
// - Authenticate: resolve the user behind a token
type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenManager
	hasher      *auth.PasswordHasher
	denylist    auth.Denylist
	validate    *validator.Validate

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService constructs a UserService. A nil denylist means stateless
// logout.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, tokens *auth.TokenManager,
	hasher *auth.PasswordHasher, denylist auth.Denylist) *UserService {
	if denylist == nil {
		denylist = auth.NoopDenylist{}
	}
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		denylist:    denylist,
		validate:    validator.New(),
	}
}

// Register creates a new user. The email is stored trimmed and lower-cased.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, common.ErrAllFieldsRequired
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, common.ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, common.ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return nil, common.ErrPasswordTooLong
	}

	repo := s.repomanager.Users(s.db)

	// fast path only; the unique index decides races
	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrUserExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUserExists) {
			return nil, common.ErrUserExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, common.ErrEmailPasswordRequired
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same bcrypt time as a real comparison
			_, _ = s.hasher.Compare(s.dummy(), password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("error checking password: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes a still-valid token when a denylist is configured. Tokens
// that are missing or already invalid need nothing.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// Authenticate resolves the user a token was issued to. Any token problem,
// a revoked token or a user that no longer exists yields ErrSessionInvalid.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrSessionInvalid, err)
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking denylist: %w", err)
	}
	if revoked {
		return nil, common.ErrSessionInvalid
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrSessionInvalid
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

func (s *UserService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(uuid.NewString())
	})
	return s.dummyHash
}
