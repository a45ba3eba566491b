package goal

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeTaskBased Type = "task_based"
	TypeTimeBased Type = "time_based"
	TypeOKR       Type = "okr"
)

func (t Type) Valid() bool {
	switch t {
	case TypeTaskBased, TypeTimeBased, TypeOKR:
		return true
	}
	return false
}

type Goal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	GoalType     Type       `json:"goal_type"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CreatedDate  time.Time  `json:"created_date"`
	Completed    bool       `json:"completed"`
}

func New(userID, title, description string, goalType Type, targetValue float64) Goal {
	return Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		GoalType:    goalType,
		TargetValue: targetValue,
		CreatedDate: time.Now().UTC(),
	}
}
