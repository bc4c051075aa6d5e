package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testAPI struct {
	t *testing.T
	h http.Handler
}

type routerOption func(*RouterConfig)

// newTestAPI wires the real services over the in-memory store.
func newTestAPI(t *testing.T, opts ...routerOption) *testAPI {
	t.Helper()

	m := repomanager.NewInMemoryRepositoryManager()
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	us := services.NewUserService(nil, m, tokens, auth.NewPasswordHasher(bcrypt.MinCost), nil)
	ts := services.NewTaskService(nil, dbx.NoTx{}, m)

	cfg := RouterConfig{
		Users:         us,
		Tasks:         ts,
		Health:        NewHealthHandler(nil, nil),
		Logger:        logging.Nop{},
		Cookies:       CookieSettings{TTL: time.Hour, Secure: true},
		IsDevelopment: false,
		Metrics:       true,
	}
	for _, o := range opts {
		o(&cfg)
	}

	h, err := NewRouter(cfg)
	require.NoError(t, err)
	return &testAPI{t: t, h: h}
}

func (a *testAPI) do(method, path string, body any, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

// doRaw sends body as-is under the given content type.
func (a *testAPI) doRaw(method, path, contentType, body, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

// login registers (if needed) and logs in, returning the bearer token.
func (a *testAPI) login(name, email, password string) string {
	a.t.Helper()
	a.do(http.MethodPost, "/api/auth/register", map[string]string{"name": name, "email": email, "password": password}, "")
	rec := a.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(a.t, rec, &out)
	return out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m struct {
		Message string `json:"message"`
	}
	decode(t, rec, &m)
	return m.Message
}
