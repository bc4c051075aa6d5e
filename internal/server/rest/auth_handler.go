package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

// UserService is what the auth routes and the guard need from the
// identity layer.
type UserService interface {
	Authenticator
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	users   UserService
	cookies CookieSettings
	logger  logging.Logger
}

func NewAuthHandler(us UserService, cookies CookieSettings, l logging.Logger) *AuthHandler {
	return &AuthHandler{users: us, cookies: cookies, logger: l.With("module", "auth_handler")}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadBody)
		return
	}

	u, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		RecordAuthAttempt("register", false)
		writeError(w, r, h.logger, err)
		return
	}
	RecordAuthAttempt("register", true)
	h.logger.Info(r.Context(), "user registered", "user_id", u.ID, "user_number", u.Number)

	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    userResponse{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadBody)
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		RecordAuthAttempt("login", false)
		writeError(w, r, h.logger, err)
		return
	}
	RecordAuthAttempt("login", true)

	http.SetCookie(w, h.cookies.session(res.Token))
	writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: res.Token})
}

// Logout always succeeds for the client. A failure to record the revocation
// is logged only.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context(), tokenFromRequest(r)); err != nil {
		h.logger.Warn(r.Context(), "logout revocation failed", "error", err)
	}
	http.SetCookie(w, h.cookies.cleared())
	writeMessage(w, http.StatusOK, "Logout successful")
}
