package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type TaskService interface {
	// List returns all tasks when status is empty.
	List(ctx context.Context, status string) ([]models.Task, error)
	Add(ctx context.Context, title, description string) (*models.Task, error)
	Edit(ctx context.Context, id string, p models.TaskPatch) (*models.Task, error)
	SetStatus(ctx context.Context, id, status string) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskService struct {
	client client.Client
	auth   AuthService
}

func NewTaskService(c client.Client, a AuthService) TaskService {
	return &taskService{client: c, auth: a}
}

// withToken runs fn with the session token and drops the local session
// when the server says it is no longer valid.
func (s *taskService) withToken(ctx context.Context, fn func(token string) error) error {
	token := s.auth.Token()
	if token == "" {
		return ErrNotLoggedIn
	}
	err := fn(token)
	if errors.Is(err, client.ErrUnauthorized) {
		if expErr := s.auth.Expire(ctx); expErr != nil {
			return errors.Join(err, expErr)
		}
	}
	return err
}

func (s *taskService) List(ctx context.Context, status string) ([]models.Task, error) {
	var out []models.Task
	err := s.withToken(ctx, func(token string) error {
		var err error
		out, err = s.client.ListTasks(ctx, token, status)
		return err
	})
	return out, err
}

func (s *taskService) Add(ctx context.Context, title, description string) (*models.Task, error) {
	var out *models.Task
	err := s.withToken(ctx, func(token string) error {
		var err error
		out, err = s.client.CreateTask(ctx, token, models.NewTask{Title: title, Description: description})
		return err
	})
	return out, err
}

func (s *taskService) Edit(ctx context.Context, id string, p models.TaskPatch) (*models.Task, error) {
	var out *models.Task
	err := s.withToken(ctx, func(token string) error {
		var err error
		out, err = s.client.UpdateTask(ctx, token, id, p)
		return err
	})
	return out, err
}

func (s *taskService) SetStatus(ctx context.Context, id, status string) (*models.Task, error) {
	return s.Edit(ctx, id, models.TaskPatch{Status: &status})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.withToken(ctx, func(token string) error {
		return s.client.DeleteTask(ctx, token, id)
	})
}
