package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validDraft() Draft {
	return Draft{
		Title:    "Buy milk",
		DueDate:  testNow.Add(time.Hour),
		Priority: PriorityMedium,
	}
}

func TestValidateDraft_TitleBoundary(t *testing.T) {
	d := validDraft()

	d.Title = strings.Repeat("a", 15)
	assert.NoError(t, ValidateDraft(d, testNow))

	d.Title = strings.Repeat("a", 16)
	err := ValidateDraft(d, testNow)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonTitleTooLong, verr.Reason)

	// length is measured after trimming
	d.Title = "  " + strings.Repeat("a", 15) + "  "
	assert.NoError(t, ValidateDraft(d, testNow))

	// and in runes, not bytes
	d.Title = strings.Repeat("ü", 15)
	assert.NoError(t, ValidateDraft(d, testNow))
}

func TestValidateDraft_EmptyTitle(t *testing.T) {
	d := validDraft()
	d.Title = "   "

	err := ValidateDraft(d, testNow)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonTitleEmpty, verr.Reason)
}

func TestValidateDraft_DueDateBoundary(t *testing.T) {
	d := validDraft()

	for _, due := range []time.Time{testNow, testNow.Add(-time.Hour)} {
		d.DueDate = due
		err := ValidateDraft(d, testNow)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonDueDateNotFuture, verr.Reason)
	}

	d.DueDate = testNow.Add(time.Second)
	assert.NoError(t, ValidateDraft(d, testNow))
}

func TestExpired(t *testing.T) {
	task := Task{DueDate: testNow.Add(time.Minute)}
	assert.False(t, task.Expired(testNow))

	// strictly before now, so the exact due instant is not yet expired
	assert.False(t, task.Expired(task.DueDate))
	assert.True(t, task.Expired(task.DueDate.Add(time.Second)))
}

func TestSortForDisplay(t *testing.T) {
	tasks := []Task{
		{ID: "expired-high", Priority: PriorityHigh, DueDate: testNow.Add(-time.Hour)},
		{ID: "low-early", Priority: PriorityLow, DueDate: testNow.Add(time.Hour)},
		{ID: "high-late", Priority: PriorityHigh, DueDate: testNow.Add(3 * time.Hour)},
		{ID: "high-early", Priority: PriorityHigh, DueDate: testNow.Add(time.Hour)},
		{ID: "medium", Priority: PriorityMedium, DueDate: testNow.Add(2 * time.Hour)},
	}

	SortForDisplay(tasks, testNow)

	var order []string
	for _, task := range tasks {
		order = append(order, task.ID)
	}
	assert.Equal(t, []string{"high-early", "high-late", "medium", "low-early", "expired-high"}, order)
}

func TestSortForDisplay_Stable(t *testing.T) {
	due := testNow.Add(time.Hour)
	tasks := []Task{
		{ID: "first", Priority: PriorityMedium, DueDate: due},
		{ID: "second", Priority: PriorityMedium, DueDate: due},
		{ID: "third", Priority: PriorityMedium, DueDate: due},
	}

	SortForDisplay(tasks, testNow)

	assert.Equal(t, "first", tasks[0].ID)
	assert.Equal(t, "second", tasks[1].ID)
	assert.Equal(t, "third", tasks[2].ID)
}
