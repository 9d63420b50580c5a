package usecase

import (
	"context"
	"strings"
	"time"

	"todovault-backend/internal/task/domain"
	"todovault-backend/internal/task/repository"
)

// taskUsecase implements TaskUsecase on top of a TaskRepository. Validation
// runs before the repository is touched, so rejected drafts never reach the
// store.
type taskUsecase struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskUsecase creates a new instance of taskUsecase. A nil clock defaults
// to time.Now; tests inject a fixed clock to drive expiration.
func NewTaskUsecase(taskRepo repository.TaskRepository, clock func() time.Time) TaskUsecase {
	if clock == nil {
		clock = time.Now
	}
	return &taskUsecase{
		taskRepo: taskRepo,
		now:      clock,
	}
}

func (u *taskUsecase) ListTasks(ctx context.Context, userID string) ([]TaskView, error) {
	tasks, err := u.taskRepo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	domain.SortForDisplay(tasks, now)

	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, TaskView{
			Task:    task,
			Expired: task.Expired(now),
		})
	}
	return views, nil
}

func (u *taskUsecase) CreateTask(ctx context.Context, userID string, draft domain.Draft) (*domain.Task, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if err := domain.ValidateDraft(draft, u.now()); err != nil {
		return nil, err
	}
	return u.taskRepo.Add(ctx, userID, draft)
}

func (u *taskUsecase) EditTask(ctx context.Context, userID, taskID string, draft domain.Draft) (*domain.Task, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if err := domain.ValidateDraft(draft, u.now()); err != nil {
		return nil, err
	}

	priority := draft.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	return u.taskRepo.Update(ctx, userID, taskID, domain.TaskUpdate{
		Title:       &draft.Title,
		Description: &draft.Description,
		DueDate:     &draft.DueDate,
		Priority:    &priority,
	})
}

func (u *taskUsecase) ToggleComplete(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	tasks, err := u.taskRepo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	var task *domain.Task
	for i := range tasks {
		if tasks[i].ID == taskID {
			task = &tasks[i]
			break
		}
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	if task.Expired(u.now()) {
		return nil, &domain.ValidationError{Reason: domain.ReasonAlreadyExpired}
	}
	if task.Completed {
		return task, nil
	}

	completed := true
	return u.taskRepo.Update(ctx, userID, taskID, domain.TaskUpdate{Completed: &completed})
}

func (u *taskUsecase) RemoveTask(ctx context.Context, userID, taskID string) error {
	return u.taskRepo.Delete(ctx, userID, taskID)
}
