// Package seed fills the record stores with a deterministic sample data
// set: five users, tasks spread over the last 30 days in mixed statuses,
// and weekday time entries. The same reference instant always produces the
// same records, which keeps demos and tests reproducible.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/arurana24/The-Third-Angle/internal/task"
	"github.com/arurana24/The-Third-Angle/internal/timeentry"
	"github.com/arurana24/The-Third-Angle/internal/user"
)

type Stores struct {
	Users   user.Repo
	Tasks   task.Repo
	Entries timeentry.Repo
}

var sampleUsers = []struct {
	name, email, avatar string
}{
	{"Alex Johnson", "alex@thirdangle.com", "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150"},
	{"Sarah Chen", "sarah@thirdangle.com", "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150"},
	{"Mike Rodriguez", "mike@thirdangle.com", "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150"},
	{"Emma Wilson", "emma@thirdangle.com", "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150"},
	{"David Kim", "david@thirdangle.com", "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150"},
}

var taskTemplates = []struct {
	title, description string
	priority           task.Priority
}{
	{"Design Landing Page", "Create wireframes and mockups", task.PriorityHigh},
	{"API Development", "Build REST endpoints", task.PriorityHigh},
	{"User Authentication", "Implement login system", task.PriorityMedium},
	{"Database Migration", "Update schema", task.PriorityLow},
	{"Testing Suite", "Write unit tests", task.PriorityMedium},
	{"UI Components", "Build reusable components", task.PriorityHigh},
	{"Performance Optimization", "Improve load times", task.PriorityLow},
	{"Documentation", "API documentation", task.PriorityMedium},
	{"Code Review", "Review pull requests", task.PriorityHigh},
	{"Bug Fixes", "Fix reported issues", task.PriorityMedium},
}

// Apply resets the stores and inserts the sample data set anchored at now.
func Apply(ctx context.Context, s Stores, now time.Time) error {
	if err := s.Users.Reset(ctx); err != nil {
		return fmt.Errorf("reset users: %w", err)
	}
	if err := s.Tasks.Reset(ctx); err != nil {
		return fmt.Errorf("reset tasks: %w", err)
	}
	if err := s.Entries.Reset(ctx); err != nil {
		return fmt.Errorf("reset time entries: %w", err)
	}

	userIDs := make([]string, 0, len(sampleUsers))
	for _, su := range sampleUsers {
		u, err := s.Users.Create(ctx, user.New(su.name, su.email, su.avatar))
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
		userIDs = append(userIDs, u.ID)
	}

	// Tasks over the last 30 days: the (i+j)%3 pattern assigns each
	// template to a subset of users, and i%3 spreads the statuses.
	for i, tpl := range taskTemplates {
		for j, userID := range userIDs {
			if (i+j)%3 != 0 {
				continue
			}

			t := task.New(tpl.title, tpl.description, userID, tpl.priority)
			t.CreatedDate = now.AddDate(0, 0, -(30 - i*2))
			t.EstimatedHours = 4.0 + float64(i%5)

			switch i % 3 {
			case 0:
				done := t.CreatedDate.AddDate(0, 0, 1+i%5)
				t.Status = task.StatusDone
				t.CompletedDate = &done
				t.ActualHours = t.EstimatedHours + float64(i%3-1)
			case 1:
				t.Status = task.StatusInProgress
				t.ActualHours = t.EstimatedHours / 2
			}

			if _, err := s.Tasks.Create(ctx, t); err != nil {
				return fmt.Errorf("seed task %q: %w", tpl.title, err)
			}
		}
	}

	// Weekday time entries: a morning and an afternoon session per user
	// per working day of the window.
	for _, userID := range userIDs {
		for day := 0; day < 30; day++ {
			date := now.AddDate(0, 0, -day)
			if wd := day % 7; wd == 5 || wd == 6 {
				continue
			}

			morning := timeentry.New(userID, "", "Morning work session",
				3.5+float64(day%3)*0.5, atHour(date, 9))
			morning.IsPomodoro = true
			if _, err := s.Entries.Create(ctx, morning); err != nil {
				return fmt.Errorf("seed time entry: %w", err)
			}

			afternoon := timeentry.New(userID, "", "Afternoon work session",
				4.0+float64(day%2)*0.5, atHour(date, 14))
			if _, err := s.Entries.Create(ctx, afternoon); err != nil {
				return fmt.Errorf("seed time entry: %w", err)
			}
		}
	}

	return nil
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
