package task

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("task not found")

// Patch represents a partial update.
// nil pointer => "no change"
type Patch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *Status     `json:"status,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	ActualHours *float64   `json:"actual_hours,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
}

type ListFilter struct {
	// AssignedTo: "" means any assignee.
	AssignedTo string

	// Status: "" means any status.
	Status Status
}

type Repo interface {
	Create(ctx context.Context, t Task) (Task, error)
	Get(ctx context.Context, id string) (Task, bool, error)
	Update(ctx context.Context, id string, p Patch, now time.Time) (Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	Delete(ctx context.Context, id string) (bool, error)
	AddHours(ctx context.Context, id string, hours float64) (Task, error)
	Reset(ctx context.Context) error
}

func applyPatch(t *Task, p Patch, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.SetStatus(*p.Status, now)
	}
	if p.Priority != nil && p.Priority.Valid() {
		t.Priority = *p.Priority
	}
	if p.ActualHours != nil && *p.ActualHours >= 0 {
		t.ActualHours = *p.ActualHours
	}
	// zero time clears the due date
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			t.DueDate = nil
		} else {
			due := *p.DueDate
			t.DueDate = &due
		}
	}
	if p.Tags != nil {
		if *p.Tags == nil {
			t.Tags = []string{}
		} else {
			t.Tags = *p.Tags
		}
	}
}

func matches(t Task, filter ListFilter) bool {
	if filter.AssignedTo != "" && t.AssignedTo != filter.AssignedTo {
		return false
	}
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	return true
}
