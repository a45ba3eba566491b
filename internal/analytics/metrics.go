package analytics

import (
	"math"
	"time"

	"github.com/arurana24/The-Third-Angle/internal/task"
	"github.com/arurana24/The-Third-Angle/internal/timeentry"
)

// Calculator computes per-user derived metrics from one snapshot. It is a
// pure view over already-fetched collections; building one does no I/O.
// Unknown user IDs yield all-zero metrics since assigned_to/user_id
// references arrive unvalidated.
type Calculator struct {
	cfg             Config
	tasksByAssignee map[string][]task.Task
	entriesByUser   map[string][]timeentry.Entry
}

func NewCalculator(cfg Config, snap Snapshot) *Calculator {
	c := &Calculator{
		cfg:             cfg,
		tasksByAssignee: make(map[string][]task.Task),
		entriesByUser:   make(map[string][]timeentry.Entry),
	}
	for _, t := range snap.Tasks {
		if t.AssignedTo == "" {
			continue
		}
		c.tasksByAssignee[t.AssignedTo] = append(c.tasksByAssignee[t.AssignedTo], t)
	}
	for _, e := range snap.Entries {
		c.entriesByUser[e.UserID] = append(c.entriesByUser[e.UserID], e)
	}
	return c
}

// CompletionRate returns done/assigned as a percentage in [0,100].
// A user with no assigned tasks scores 0.
func (c *Calculator) CompletionRate(userID string) float64 {
	assigned := c.tasksByAssignee[userID]
	if len(assigned) == 0 {
		return 0
	}
	done := 0
	for _, t := range assigned {
		if t.Status == task.StatusDone {
			done++
		}
	}
	return float64(done) / float64(len(assigned)) * 100
}

// AssignedTasks returns how many tasks are assigned to the user.
func (c *Calculator) AssignedTasks(userID string) int {
	return len(c.tasksByAssignee[userID])
}

// CompletedTasks returns how many of the user's tasks are done.
func (c *Calculator) CompletedTasks(userID string) int {
	done := 0
	for _, t := range c.tasksByAssignee[userID] {
		if t.Status == task.StatusDone {
			done++
		}
	}
	return done
}

// CompletedInRange counts the user's tasks completed in [start, end).
func (c *Calculator) CompletedInRange(userID string, start, end time.Time) int {
	count := 0
	for _, t := range c.tasksByAssignee[userID] {
		if t.Status != task.StatusDone || t.CompletedDate == nil {
			continue
		}
		if inRange(*t.CompletedDate, start, end) {
			count++
		}
	}
	return count
}

// HoursInRange sums the user's logged hours with entry_date in [start, end).
func (c *Calculator) HoursInRange(userID string, start, end time.Time) float64 {
	total := 0.0
	for _, e := range c.entriesByUser[userID] {
		if inRange(e.EntryDate, start, end) {
			total += e.Hours
		}
	}
	return total
}

// HoursThisWeek sums the user's hours over the 7 days ending at now.
func (c *Calculator) HoursThisWeek(userID string, now time.Time) float64 {
	return c.HoursInRange(userID, now.AddDate(0, 0, -7), now)
}

// ProductivityScore blends completion rate with hours-this-week measured
// against the weekly target. Both components are capped at 100 before
// weighting, so the result stays in [0,100].
func (c *Calculator) ProductivityScore(userID string, now time.Time) float64 {
	completion := c.CompletionRate(userID)

	hoursPct := c.HoursThisWeek(userID, now) / c.cfg.WeeklyHoursTarget * 100
	if hoursPct > 100 {
		hoursPct = 100
	}

	return completion*c.cfg.CompletionWeight + hoursPct*c.cfg.HoursWeight
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// round1 rounds to one decimal place for report payloads.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
