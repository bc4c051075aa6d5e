package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type memMeta struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemMeta() *memMeta { return &memMeta{data: map[string][]byte{}} }

func (m *memMeta) Get(_ context.Context, k string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.data[k], nil
}

func (m *memMeta) Set(_ context.Context, k string, v []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[k] = v
	return nil
}

func (m *memMeta) Delete(_ context.Context, k string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, k)
	return nil
}

func (m *memMeta) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

type fakeClient struct {
	token    string
	err      error
	logouts  []string
	lastTok  string
	lastID   string
	lastPat  models.TaskPatch
	listResp []models.Task
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Ping(context.Context) error { return f.err }

func (f *fakeClient) Register(context.Context, string, string, []byte) error { return f.err }

func (f *fakeClient) Login(context.Context, string, []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func (f *fakeClient) Logout(_ context.Context, token string) error {
	f.logouts = append(f.logouts, token)
	return f.err
}

func (f *fakeClient) ListTasks(_ context.Context, token, _ string) ([]models.Task, error) {
	f.lastTok = token
	return f.listResp, f.err
}

func (f *fakeClient) CreateTask(_ context.Context, token string, t models.NewTask) (*models.Task, error) {
	f.lastTok = token
	if f.err != nil {
		return nil, f.err
	}
	return &models.Task{ID: "t1", Title: t.Title, Description: t.Description, Status: models.StatusPending}, nil
}

func (f *fakeClient) UpdateTask(_ context.Context, token, id string, p models.TaskPatch) (*models.Task, error) {
	f.lastTok, f.lastID, f.lastPat = token, id, p
	if f.err != nil {
		return nil, f.err
	}
	return &models.Task{ID: id}, nil
}

func (f *fakeClient) DeleteTask(_ context.Context, token, id string) error {
	f.lastTok, f.lastID = token, id
	return f.err
}
