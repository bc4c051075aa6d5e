// Package auth issues and verifies session tokens, hashes credentials and
// tracks revoked tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the registered claims plus the caller identity.
// Subject and UserID hold the same value.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// TokenManager signs and verifies HS256 session tokens with a fixed secret
// and lifetime.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a TokenManager.
type Option func(*TokenManager)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(secret []byte, ttl time.Duration, opts ...Option) *TokenManager {
	m := &TokenManager{secret: secret, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// TTL returns the lifetime given to every issued token.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue returns a signed token for the user and the moment it expires.
func (m *TokenManager) Issue(userID, email string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		UserID: userID,
		Email:  email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses the token and checks its signature, algorithm and expiry.
// An expired token yields common.ErrTokenExpired, any other failure
// common.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" || claims.UserID != claims.Subject {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
