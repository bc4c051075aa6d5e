package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedIn(t *testing.T, fc *fakeClient) (AuthService, TaskService) {
	t.Helper()
	fc.token = "tok"
	a := NewAuthService(fc, newMemMeta())
	require.NoError(t, a.Login(context.Background(), "a@x.com", []byte("secret1")))
	return a, NewTaskService(fc, a)
}

func TestTaskService_RequiresSession(t *testing.T) {
	fc := &fakeClient{}
	ts := NewTaskService(fc, NewAuthService(fc, newMemMeta()))

	_, err := ts.List(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.ErrorIs(t, ts.Delete(context.Background(), "x"), ErrNotLoggedIn)
}

func TestTaskService_PassesToken(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{listResp: []models.Task{{ID: "a"}}}
	_, ts := loggedIn(t, fc)

	list, err := ts.List(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "tok", fc.lastTok)

	task, err := ts.Add(ctx, "title", "desc")
	require.NoError(t, err)
	assert.Equal(t, "title", task.Title)

	_, err = ts.SetStatus(ctx, "id1", models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, "id1", fc.lastID)
	require.NotNil(t, fc.lastPat.Status)
	assert.Equal(t, models.StatusCompleted, *fc.lastPat.Status)
	assert.Nil(t, fc.lastPat.Title)

	require.NoError(t, ts.Delete(ctx, "id2"))
	assert.Equal(t, "id2", fc.lastID)
}

func TestTaskService_UnauthorizedExpiresSession(t *testing.T) {
	fc := &fakeClient{}
	a, ts := loggedIn(t, fc)

	fc.err = &client.APIError{StatusCode: 401, Message: "Invalid or expired token"}
	_, err := ts.List(context.Background(), "")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestTaskService_OtherErrorsKeepSession(t *testing.T) {
	fc := &fakeClient{}
	a, ts := loggedIn(t, fc)

	fc.err = &client.APIError{StatusCode: 403, Message: "Unauthorized"}
	_, err := ts.Edit(context.Background(), "x", models.TaskPatch{})
	assert.EqualError(t, err, "Unauthorized")
	assert.Equal(t, "tok", a.Token())
}
