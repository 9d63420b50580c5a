package domain

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleRunes is the effective title length limit. The UI lets users type
// slightly past it; anything longer is rejected at submit time.
const MaxTitleRunes = 15

// ValidateDraft checks a draft against the task acceptance rules at the
// given instant. The title is measured after trimming.
func ValidateDraft(d Draft, now time.Time) error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return &ValidationError{Reason: ReasonTitleEmpty}
	}
	if utf8.RuneCountInString(title) > MaxTitleRunes {
		return &ValidationError{Reason: ReasonTitleTooLong}
	}
	if !d.DueDate.After(now) {
		return &ValidationError{Reason: ReasonDueDateNotFuture}
	}
	return nil
}

// SortForDisplay orders tasks in place for presentation:
//
//  1. non-expired tasks before expired ones
//  2. within a bucket, priority high, medium, low
//  3. within a bucket and priority, earlier due date first
//
// The sort is stable, so records with fully equal keys keep their insertion
// order from the stored collection.
func SortForDisplay(tasks []Task, now time.Time) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		if ae, be := a.Expired(now), b.Expired(now); ae != be {
			return !ae
		}
		if a.Priority != b.Priority {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		return a.DueDate.Before(b.DueDate)
	})
}
