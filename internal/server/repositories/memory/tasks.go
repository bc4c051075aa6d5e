package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type TaskRepository struct {
	s *Store
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	r.s.taskSeq++
	r.s.tasks[task.ID] = taskRecord{task: *task, seq: r.s.taskSeq}

	out := *task
	return &out, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	t := rec.task
	return &t, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string, status models.TaskStatus) ([]models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	recs := make([]taskRecord, 0)
	for _, rec := range r.s.tasks {
		if rec.task.UserID != userID {
			continue
		}
		if status != "" && rec.task.Status != status {
			continue
		}
		recs = append(recs, rec)
	}
	r.s.mu.RUnlock()

	// newest first; insertion order breaks timestamp ties
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].task.CreatedAt.Equal(recs[j].task.CreatedAt) {
			return recs[i].task.CreatedAt.After(recs[j].task.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})

	result := make([]models.Task, 0, len(recs))
	for _, rec := range recs {
		result = append(result, rec.task)
	}
	return result, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.tasks[task.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	rec.task.Title = task.Title
	rec.task.Description = task.Description
	rec.task.Status = task.Status
	rec.task.UpdatedAt = r.s.now().UTC()
	r.s.tasks[task.ID] = rec

	out := rec.task
	return &out, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.tasks, id)
	return nil
}
