package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arurana24/The-Third-Angle/internal/task"
	"github.com/arurana24/The-Third-Angle/internal/timeentry"
)

func TestCompletionRate(t *testing.T) {
	snap := sampleTeamSnapshot()
	calc := NewCalculator(DefaultConfig(), snap)

	assert.Equal(t, 100.0, calc.CompletionRate("u-a"))
	assert.Equal(t, 100.0, calc.CompletionRate("u-b"))
	assert.Equal(t, 0.0, calc.CompletionRate("u-c"))
}

func TestCompletionRate_NoAssignedTasks(t *testing.T) {
	calc := NewCalculator(DefaultConfig(), Snapshot{})

	assert.Equal(t, 0.0, calc.CompletionRate("nobody"))
}

func TestCompletionRate_Partial(t *testing.T) {
	snap := Snapshot{
		Tasks: []task.Task{
			doneTask("t1", "u-x", testNow.AddDate(0, 0, -1)),
			openTask("t2", "u-x", task.StatusTodo),
			openTask("t3", "u-x", task.StatusInProgress),
			openTask("t4", "u-x", task.StatusTodo),
		},
	}
	calc := NewCalculator(DefaultConfig(), snap)

	assert.Equal(t, 25.0, calc.CompletionRate("u-x"))
}

func TestHoursInRange(t *testing.T) {
	snap := sampleTeamSnapshot()
	calc := NewCalculator(DefaultConfig(), snap)

	weekStart := testNow.AddDate(0, 0, -7)
	assert.Equal(t, 6.0, calc.HoursInRange("u-a", weekStart, testNow))
	assert.Equal(t, 2.0, calc.HoursInRange("u-b", weekStart, testNow))
	assert.Equal(t, 0.0, calc.HoursInRange("u-c", weekStart, testNow))
}

func TestHoursInRange_BoundaryHalfOpen(t *testing.T) {
	start := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	snap := Snapshot{
		Entries: []timeentry.Entry{
			loggedHours("at-start", "u-x", 1, start),
			loggedHours("inside", "u-x", 2, start.Add(12*time.Hour)),
			loggedHours("at-end", "u-x", 4, end),
			loggedHours("before", "u-x", 8, start.Add(-time.Second)),
		},
	}
	calc := NewCalculator(DefaultConfig(), snap)

	// [start, end): the entry exactly at end is excluded, at start included.
	assert.Equal(t, 3.0, calc.HoursInRange("u-x", start, end))
}

func TestProductivityScore(t *testing.T) {
	snap := sampleTeamSnapshot()
	calc := NewCalculator(DefaultConfig(), snap)

	// 6h of a 40h target is 15%; 100*0.7 + 15*0.3 = 74.5
	assert.InDelta(t, 74.5, calc.ProductivityScore("u-a", testNow), 1e-9)
	// 2h of 40h is 5%; 100*0.7 + 5*0.3 = 71.5
	assert.InDelta(t, 71.5, calc.ProductivityScore("u-b", testNow), 1e-9)
	assert.Equal(t, 0.0, calc.ProductivityScore("u-c", testNow))
}

func TestProductivityScore_CapsHoursComponent(t *testing.T) {
	// 80h against a 40h target would be 200%; the component caps at 100,
	// so a fully-completing, over-logging user scores exactly 100.
	snap := Snapshot{
		Tasks: []task.Task{doneTask("t1", "u-x", testNow.AddDate(0, 0, -1))},
		Entries: []timeentry.Entry{
			loggedHours("e1", "u-x", 80, testNow.AddDate(0, 0, -1)),
		},
	}
	calc := NewCalculator(DefaultConfig(), snap)

	assert.Equal(t, 100.0, calc.ProductivityScore("u-x", testNow))
}

func TestProductivityScore_UnknownUserIsZero(t *testing.T) {
	calc := NewCalculator(DefaultConfig(), sampleTeamSnapshot())

	assert.Equal(t, 0.0, calc.ProductivityScore("ghost", testNow))
	assert.Equal(t, 0.0, calc.CompletionRate("ghost"))
	assert.Equal(t, 0, calc.CompletedTasks("ghost"))
}
