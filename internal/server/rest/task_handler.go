package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// TaskService is the ownership-checked task API used by the task routes.
type TaskService interface {
	Create(ctx context.Context, ownerID string, in services.CreateTaskInput) (*models.Task, error)
	List(ctx context.Context, ownerID string) ([]models.Task, error)
	ListByStatus(ctx context.Context, ownerID string, status models.TaskStatus) ([]models.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) (*models.Task, error)
}

type TaskHandler struct {
	tasks  TaskService
	logger logging.Logger
}

func NewTaskHandler(ts TaskService, l logging.Logger) *TaskHandler {
	return &TaskHandler{tasks: ts, logger: l.With("module", "task_handler")}
}

type taskResponse struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskList(ts []models.Task) []taskResponse {
	out := make([]taskResponse, 0, len(ts))
	for i := range ts {
		out = append(out, toTaskResponse(&ts[i]))
	}
	return out
}

type taskMessageResponse struct {
	Message string       `json:"message"`
	Task    taskResponse `json:"task"`
}

type statusListResponse struct {
	Status string         `json:"status"`
	Tasks  []taskResponse `json:"tasks"`
	Count  int            `json:"count"`
}

type deletedTask struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type deleteResponse struct {
	Message     string      `json:"message"`
	DeletedTask deletedTask `json:"deletedTask"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// updateTaskRequest uses pointers so an explicit "" differs from absence.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (req updateTaskRequest) patch() models.TaskPatch {
	p := models.TaskPatch{Title: req.Title, Description: req.Description}
	if req.Status != nil {
		s := models.TaskStatus(*req.Status)
		p.Status = &s
	}
	return p
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadBody)
		return
	}

	task, err := h.tasks.Create(r.Context(), user.ID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskMessageResponse{Message: "Task created successfully", Task: toTaskResponse(task)})
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	tasks, err := h.tasks.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskList(tasks))
}

func (h *TaskHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	status := chi.URLParam(r, "status")

	tasks, err := h.tasks.ListByStatus(r.Context(), user.ID, models.TaskStatus(status))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, statusListResponse{Status: status, Tasks: toTaskList(tasks), Count: len(tasks)})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadBody)
		return
	}

	task, err := h.tasks.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req.patch())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, taskMessageResponse{Message: "Task updated successfully", Task: toTaskResponse(task)})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	task, err := h.tasks.Delete(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		Message: "Task deleted successfully",
		DeletedTask: deletedTask{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Status:      string(task.Status),
		},
	})
}
