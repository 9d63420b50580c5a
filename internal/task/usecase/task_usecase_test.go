package usecase

import (
	"context"
	"testing"
	"time"

	"todovault-backend/internal/task/domain"
	"todovault-backend/internal/task/repository"
	"todovault-backend/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a movable wall clock shared by the usecase under test.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestUsecase(t *testing.T) (TaskUsecase, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := repository.NewKVTaskRepository(kvstore.NewMemoryStore(0))
	return NewTaskUsecase(repo, clock.Now), clock
}

func TestCreateToggleExpireScenario(t *testing.T) {
	ctx := context.Background()
	uc, clock := newTestUsecase(t)

	created, err := uc.CreateTask(ctx, "u1", domain.Draft{
		Title:    "Buy milk",
		DueDate:  clock.Now().Add(time.Hour),
		Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)

	views, err := uc.ListTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Completed)
	assert.False(t, views[0].Expired)

	toggled, err := uc.ToggleComplete(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	// once the due date passes, further toggles are rejected
	clock.Advance(2 * time.Hour)
	_, err = uc.ToggleComplete(ctx, "u1", created.ID)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ReasonAlreadyExpired, verr.Reason)

	// deletion stays permitted regardless of expiration and completion
	require.NoError(t, uc.RemoveTask(ctx, "u1", created.ID))
	views, err = uc.ListTasks(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestToggleComplete_AlreadyCompletedIsNoOp(t *testing.T) {
	ctx := context.Background()
	uc, clock := newTestUsecase(t)

	created, err := uc.CreateTask(ctx, "u1", domain.Draft{
		Title:   "Water plants",
		DueDate: clock.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = uc.ToggleComplete(ctx, "u1", created.ID)
	require.NoError(t, err)

	again, err := uc.ToggleComplete(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.True(t, again.Completed)
}

func TestToggleComplete_MissingTask(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase(t)

	_, err := uc.ToggleComplete(ctx, "u1", "no-such-id")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestCreateTask_RejectsInvalidDrafts(t *testing.T) {
	ctx := context.Background()
	uc, clock := newTestUsecase(t)

	cases := []struct {
		name   string
		draft  domain.Draft
		reason domain.ValidationReason
	}{
		{
			name:   "title too long",
			draft:  domain.Draft{Title: "a very long task title", DueDate: clock.Now().Add(time.Hour)},
			reason: domain.ReasonTitleTooLong,
		},
		{
			name:   "empty title",
			draft:  domain.Draft{Title: "  ", DueDate: clock.Now().Add(time.Hour)},
			reason: domain.ReasonTitleEmpty,
		},
		{
			name:   "due date in the past",
			draft:  domain.Draft{Title: "Buy milk", DueDate: clock.Now().Add(-time.Minute)},
			reason: domain.ReasonDueDateNotFuture,
		},
		{
			name:   "due date exactly now",
			draft:  domain.Draft{Title: "Buy milk", DueDate: clock.Now()},
			reason: domain.ReasonDueDateNotFuture,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateTask(ctx, "u1", tc.draft)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.reason, verr.Reason)
		})
	}

	// nothing invalid ever reached the store
	views, err := uc.ListTasks(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestEditTask_KeepsCompletionState(t *testing.T) {
	ctx := context.Background()
	uc, clock := newTestUsecase(t)

	created, err := uc.CreateTask(ctx, "u1", domain.Draft{
		Title:   "Buy milk",
		DueDate: clock.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = uc.ToggleComplete(ctx, "u1", created.ID)
	require.NoError(t, err)

	edited, err := uc.EditTask(ctx, "u1", created.ID, domain.Draft{
		Title:    "Buy oat milk",
		DueDate:  clock.Now().Add(2 * time.Hour),
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", edited.Title)
	assert.Equal(t, domain.PriorityLow, edited.Priority)
	assert.True(t, edited.Completed, "an edit must not clear completion")
}

func TestListTasks_SortedWithExpiredLast(t *testing.T) {
	ctx := context.Background()
	uc, clock := newTestUsecase(t)

	soonExpired, err := uc.CreateTask(ctx, "u1", domain.Draft{
		Title:    "Post letter",
		DueDate:  clock.Now().Add(time.Minute),
		Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)

	lowLater, err := uc.CreateTask(ctx, "u1", domain.Draft{
		Title:    "Read book",
		DueDate:  clock.Now().Add(3 * time.Hour),
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	highLater, err := uc.CreateTask(ctx, "u1", domain.Draft{
		Title:    "Call mom",
		DueDate:  clock.Now().Add(2 * time.Hour),
		Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)

	// the first task expires without any write happening
	clock.Advance(30 * time.Minute)

	views, err := uc.ListTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, highLater.ID, views[0].ID)
	assert.Equal(t, lowLater.ID, views[1].ID)
	assert.Equal(t, soonExpired.ID, views[2].ID)
	assert.True(t, views[2].Expired)
	assert.False(t, views[0].Expired)
}
