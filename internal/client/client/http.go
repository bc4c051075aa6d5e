package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// HTTPClient sends the session token as a bearer header; the CLI has no
// cookie jar.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type messageResponse struct {
	Message string `json:"message"`
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

type loginResponse struct {
	Token string `json:"token"`
}

type taskResponse struct {
	Task models.Task `json:"task"`
}

type statusListResponse struct {
	Tasks []models.Task `json:"tasks"`
}

// do sends one JSON request and decodes a 2xx body into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m messageResponse
		_ = json.NewDecoder(resp.Body).Decode(&m)
		return &APIError{StatusCode: resp.StatusCode, Message: m.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", "", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "",
		registerRequest{Name: name, Email: email, Password: string(password)}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "",
		loginRequest{Email: email, Password: string(password)}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

func (c *HTTPClient) ListTasks(ctx context.Context, token, status string) ([]models.Task, error) {
	if status == "" {
		var out []models.Task
		if err := c.do(ctx, http.MethodGet, "/api/tasks", token, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var out statusListResponse
	if err := c.do(ctx, http.MethodGet, "/api/tasks/status/"+url.PathEscape(status), token, nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, token string, t models.NewTask) (*models.Task, error) {
	var out taskResponse
	if err := c.do(ctx, http.MethodPost, "/api/tasks", token, t, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, token, id string, p models.TaskPatch) (*models.Task, error) {
	var out taskResponse
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), token, p, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), token, nil, nil)
}
