package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CreateTaskInput is the client-supplied part of a new task. Zero values
// take the defaults: empty description, pending status.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
}

// TaskService implements ownership-checked task operations. Every method
// takes the id of the authenticated caller.
type TaskService struct {
	db          dbx.DBTX
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db dbx.DBTX, tx dbx.Transactor, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, tx: tx, repomanager: m}
}

func (s *TaskService) Create(ctx context.Context, ownerID string, in CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, common.ErrTitleRequired
	}

	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, common.ErrInvalidStatus
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
	}

	t, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return t, nil
}

// List returns the caller's tasks, newest first.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, ownerID, "")
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// ListByStatus returns the caller's tasks in the given status, newest
// first. The status is checked before storage is touched.
func (s *TaskService) ListByStatus(ctx context.Context, ownerID string, status models.TaskStatus) ([]models.Task, error) {
	if !status.Valid() {
		return nil, common.ErrInvalidStatus
	}
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, ownerID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// Update applies the present fields of patch. Not found is checked first,
// then ownership, then the patch values.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	var updated *models.Task

	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := s.load(ctx, repo.GetByID, taskID)
		if err != nil {
			return err
		}
		if err := ensureOwner(task, ownerID, common.ErrTaskForbidden); err != nil {
			return err
		}
		if err := validatePatch(&patch); err != nil {
			return err
		}

		patch.Apply(task)

		updated, err = repo.Update(ctx, task)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrTaskNotFound
			}
			return fmt.Errorf("error updating task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the task and returns its last state.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	var deleted *models.Task

	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := s.load(ctx, repo.GetByID, taskID)
		if err != nil {
			return err
		}
		if err := ensureOwner(task, ownerID, common.ErrDeleteDenied); err != nil {
			return err
		}

		if err := repo.Delete(ctx, task.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrTaskNotFound
			}
			return fmt.Errorf("error deleting task: %w", err)
		}
		deleted = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *TaskService) load(ctx context.Context, get func(context.Context, string) (*models.Task, error), taskID string) (*models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, common.ErrTaskNotFound
	}
	task, err := get(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTaskNotFound
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}
	return task, nil
}

// ensureOwner is the single ownership predicate for task mutations.
func ensureOwner(task *models.Task, callerID string, denied error) error {
	if task.UserID != callerID {
		return denied
	}
	return nil
}

func validatePatch(p *models.TaskPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return common.ErrTitleRequired
	}
	if p.Status != nil && !p.Status.Valid() {
		return common.ErrInvalidStatus
	}
	return nil
}
