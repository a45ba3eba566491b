package task

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Priority       Priority   `json:"priority"`
	AssignedTo     string     `json:"assigned_to,omitempty"`
	ProjectID      string     `json:"project_id,omitempty"`
	EstimatedHours float64    `json:"estimated_hours,omitempty"`
	ActualHours    float64    `json:"actual_hours,omitempty"`
	CreatedDate    time.Time  `json:"created_date"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletedDate  *time.Time `json:"completed_date,omitempty"`
	Tags           []string   `json:"tags"`
}

func New(title, description, assignedTo string, priority Priority) Task {
	if !priority.Valid() {
		priority = PriorityMedium
	}
	return Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusTodo,
		Priority:    priority,
		AssignedTo:  assignedTo,
		CreatedDate: time.Now().UTC(),
		Tags:        []string{},
	}
}

func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// SetStatus transitions the task, stamping CompletedDate on the first move
// to done and clearing it again if the task leaves done.
func (t *Task) SetStatus(s Status, now time.Time) {
	if !s.Valid() || t.Status == s {
		return
	}
	if s == StatusDone {
		done := now
		t.CompletedDate = &done
	} else {
		t.CompletedDate = nil
	}
	t.Status = s
}

func (t *Task) AddHours(h float64) {
	if h <= 0 {
		return
	}
	t.ActualHours += h
}
