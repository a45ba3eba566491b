package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arurana24/The-Third-Angle/internal/task"
	"github.com/arurana24/The-Third-Angle/internal/timeentry"
	"github.com/arurana24/The-Third-Angle/internal/user"
)

// Fixed reference instant: Sunday 2025-06-15 12:00 UTC, mid-month so the
// leaderboard window and the trend window both have room on each side.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testEngine(t *testing.T, src Source) *Engine {
	t.Helper()
	e, err := NewEngine(src, DefaultConfig(), nil)
	require.NoError(t, err)
	return e
}

func testUser(id, name string) user.User {
	return user.User{ID: id, Name: name, Email: name + "@example.com", Role: user.DefaultRole}
}

func doneTask(id, userID string, completed time.Time) task.Task {
	return task.Task{
		ID:            id,
		Title:         id,
		Status:        task.StatusDone,
		Priority:      task.PriorityMedium,
		AssignedTo:    userID,
		CreatedDate:   completed.AddDate(0, 0, -2),
		CompletedDate: &completed,
		Tags:          []string{},
	}
}

func openTask(id, userID string, status task.Status) task.Task {
	return task.Task{
		ID:          id,
		Title:       id,
		Status:      status,
		Priority:    task.PriorityMedium,
		AssignedTo:  userID,
		CreatedDate: testNow.AddDate(0, 0, -5),
		Tags:        []string{},
	}
}

func loggedHours(id, userID string, hours float64, at time.Time) timeentry.Entry {
	return timeentry.Entry{
		ID:        id,
		UserID:    userID,
		Hours:     hours,
		EntryDate: at,
	}
}

// sliceSource serves fixed collections, optionally failing to simulate an
// unreachable record store.
type sliceSource struct {
	snap Snapshot
	fail bool
}

var errStoreDown = errors.New("store down")

func (s *sliceSource) ListUsers(ctx context.Context) ([]user.User, error) {
	if s.fail {
		return nil, errStoreDown
	}
	return s.snap.Users, nil
}

func (s *sliceSource) ListTasks(ctx context.Context) ([]task.Task, error) {
	if s.fail {
		return nil, errStoreDown
	}
	return s.snap.Tasks, nil
}

func (s *sliceSource) ListTimeEntries(ctx context.Context) ([]timeentry.Entry, error) {
	if s.fail {
		return nil, errStoreDown
	}
	return s.snap.Entries, nil
}

// sampleTeamSnapshot is a small fixed team: 3 users, 5 tasks (3 done for
// Alice, 1 done for Bob, 1 todo for Carol), 6h logged this week for Alice
// and 2h for Bob.
func sampleTeamSnapshot() Snapshot {
	inMonth := testNow.AddDate(0, 0, -3)
	return Snapshot{
		Users: []user.User{
			testUser("u-a", "Alice"),
			testUser("u-b", "Bob"),
			testUser("u-c", "Carol"),
		},
		Tasks: []task.Task{
			doneTask("t1", "u-a", inMonth),
			doneTask("t2", "u-a", inMonth),
			doneTask("t3", "u-a", inMonth),
			doneTask("t4", "u-b", inMonth),
			openTask("t5", "u-c", task.StatusTodo),
		},
		Entries: []timeentry.Entry{
			loggedHours("e1", "u-a", 2, testNow.AddDate(0, 0, -1)),
			loggedHours("e2", "u-a", 2, testNow.AddDate(0, 0, -2)),
			loggedHours("e3", "u-a", 2, testNow.AddDate(0, 0, -3)),
			loggedHours("e4", "u-b", 2, testNow.AddDate(0, 0, -1)),
		},
	}
}
