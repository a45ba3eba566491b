package timeentry

import (
	"context"
	"errors"
)

var ErrNegativeHours = errors.New("hours must be non-negative")

type ListFilter struct {
	// UserID: "" means any user.
	UserID string

	// TaskID: "" means any task.
	TaskID string
}

type Repo interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
	Reset(ctx context.Context) error
}

func matches(e Entry, filter ListFilter) bool {
	if filter.UserID != "" && e.UserID != filter.UserID {
		return false
	}
	if filter.TaskID != "" && e.TaskID != filter.TaskID {
		return false
	}
	return true
}
