package timeentry

import (
	"time"

	"github.com/google/uuid"
)

// Entry records hours a user spent on a day, optionally against a task.
// Entries are append-only; EntryDate is the day the work was performed,
// not the moment the record was written.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TaskID      string    `json:"task_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Hours       float64   `json:"hours"`
	EntryDate   time.Time `json:"entry_date"`
	IsPomodoro  bool      `json:"is_pomodoro,omitempty"`
}

func New(userID, taskID, description string, hours float64, entryDate time.Time) Entry {
	if entryDate.IsZero() {
		entryDate = time.Now().UTC()
	}
	return Entry{
		ID:          uuid.NewString(),
		UserID:      userID,
		TaskID:      taskID,
		Description: description,
		Hours:       hours,
		EntryDate:   entryDate,
	}
}
