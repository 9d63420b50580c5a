package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todovault-backend/internal/task/domain"
	"todovault-backend/internal/task/repository"
	"todovault-backend/internal/task/usecase"
	"todovault-backend/pkg/kvstore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, clock func() time.Time) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewKVTaskRepository(kvstore.NewMemoryStore(0))
	handler := NewTaskHandler(usecase.NewTaskUsecase(repo, clock))

	r := gin.New()
	tasks := r.Group("/api/tasks")
	// stand-in for the auth middleware
	tasks.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Next()
	})
	tasks.GET("", handler.GetTasks)
	tasks.POST("", handler.CreateTask)
	tasks.PUT("/:id", handler.EditTask)
	tasks.PATCH("/:id/complete", handler.ToggleComplete)
	tasks.DELETE("/:id", handler.DeleteTask)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createBody(title string, due time.Time, priority string) string {
	return fmt.Sprintf(`{"title":%q,"dueDate":%q,"priority":%q}`, title, due.Format(time.RFC3339), priority)
}

func TestCreateAndListTasks(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(t, func() time.Time { return now })

	w := doJSON(r, http.MethodPost, "/api/tasks", createBody("Buy milk", now.Add(time.Hour), "high"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, domain.PriorityHigh, created.Priority)

	w = doJSON(r, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Tasks []usecase.TaskView `json:"tasks"`
		Total int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Equal(t, 1, listed.Total)
	assert.Equal(t, created.ID, listed.Tasks[0].ID)
	assert.False(t, listed.Tasks[0].Expired)
}

func TestCreateTask_ValidationMapsTo400(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(t, func() time.Time { return now })

	w := doJSON(r, http.MethodPost, "/api/tasks", createBody("a title well beyond limit", now.Add(time.Hour), "medium"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "title_too_long", resp["reason"])

	w = doJSON(r, http.MethodPost, "/api/tasks", createBody("Buy milk", now.Add(-time.Hour), "medium"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "due_date_not_future", resp["reason"])
}

func TestEditTask_NotFoundMapsTo404(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(t, func() time.Time { return now })

	w := doJSON(r, http.MethodPut, "/api/tasks/no-such-id", createBody("Buy milk", now.Add(time.Hour), "low"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleCompleteExpiredMapsTo400(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(t, func() time.Time { return now })

	w := doJSON(r, http.MethodPost, "/api/tasks", createBody("Buy milk", now.Add(time.Minute), "medium"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// the clock moves past the due date between requests
	now = now.Add(time.Hour)

	w = doJSON(r, http.MethodPatch, "/api/tasks/"+created.ID+"/complete", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "already_expired", resp["reason"])
}

func TestDeleteTask(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(t, func() time.Time { return now })

	w := doJSON(r, http.MethodPost, "/api/tasks", createBody("Buy milk", now.Add(time.Hour), "medium"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodDelete, "/api/tasks/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	// deleting again is still a 200: the operation is idempotent
	w = doJSON(r, http.MethodDelete, "/api/tasks/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/tasks", "")
	var listed struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 0, listed.Total)
}
