package delivery

import (
	"errors"
	"net/http"
	"time"

	"todovault-backend/internal/task/domain"
	"todovault-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
	}
}

// TaskRequest is the request body for creating or editing a task.
type TaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" binding:"required"`
	Priority    string `json:"priority"`
}

func (r *TaskRequest) toDraft() (domain.Draft, error) {
	dueDate, err := time.Parse(time.RFC3339, r.DueDate)
	if err != nil {
		return domain.Draft{}, err
	}
	return domain.Draft{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     dueDate,
		Priority:    domain.ParsePriority(r.Priority),
	}, nil
}

// respondError maps the task error taxonomy onto HTTP statuses. Validation
// failures carry a stable reason code for the frontend's toasts; storage
// failures get a generic retry-prompting message.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "reason": string(verr.Reason)})
		return
	}
	if errors.Is(err, domain.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	var serr *domain.StorageError
	if errors.As(err, &serr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage failure, please try again"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// GetTasks returns all tasks for the authenticated user in display order
// GET /api/tasks
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID := c.GetString("userID")

	tasks, err := h.taskUsecase.ListTasks(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.GetString("userID")

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dueDate must be RFC 3339"})
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), userID, draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// EditTask replaces a task's editable fields
// PUT /api/tasks/:id
func (h *TaskHandler) EditTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dueDate must be RFC 3339"})
		return
	}

	task, err := h.taskUsecase.EditTask(c.Request.Context(), userID, taskID, draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ToggleComplete marks a task completed
// PATCH /api/tasks/:id/complete
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	task, err := h.taskUsecase.ToggleComplete(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task permanently
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	if err := h.taskUsecase.RemoveTask(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
