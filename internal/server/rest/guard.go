package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// Authenticator resolves the user behind a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Guard rejects requests without a valid session and attaches the
// resolved user to the request context.
type Guard struct {
	auth   Authenticator
	logger logging.Logger
}

func NewGuard(a Authenticator, l logging.Logger) *Guard {
	return &Guard{auth: a, logger: l.With("module", "guard")}
}

func (g *Guard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, common.ErrNotLoggedIn.Message)
			return
		}

		user, err := g.auth.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrUnauthenticated) {
				g.logger.Debug(r.Context(), "session rejected", "error", err)
				writeMessage(w, http.StatusUnauthorized, common.ErrSessionInvalid.Message)
				return
			}
			writeError(w, r, g.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// tokenFromRequest prefers the session cookie over the Authorization header.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(common.SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, common.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, common.BearerPrefix))
	}
	return ""
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the user attached by Guard, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}
