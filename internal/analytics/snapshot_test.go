package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arurana24/The-Third-Angle/internal/task"
	"github.com/arurana24/The-Third-Angle/internal/timeentry"
	"github.com/arurana24/The-Third-Angle/internal/user"
)

func TestTakeSnapshot_SourceFailure(t *testing.T) {
	src := &sliceSource{fail: true}

	_, err := TakeSnapshot(context.Background(), src, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestTakeSnapshot_SkipsMalformedRecords(t *testing.T) {
	done := testNow.AddDate(0, 0, -1)
	src := &sliceSource{snap: Snapshot{
		Users: []user.User{
			testUser("u-1", "Ann"),
			{Name: "no id"},
		},
		Tasks: []task.Task{
			doneTask("t1", "u-1", done),
			{ID: "t2", Title: "bad status", Status: "archived"},
			// done without a completion date violates the invariant
			{ID: "t3", Title: "done no date", Status: task.StatusDone},
			// completion date without done does too
			{ID: "t4", Title: "todo with date", Status: task.StatusTodo, CompletedDate: &done},
		},
		Entries: []timeentry.Entry{
			loggedHours("e1", "u-1", 2, done),
			{ID: "e2", UserID: "u-1", Hours: -5, EntryDate: done},
			{ID: "e3", Hours: 1, EntryDate: done},
		},
	}}

	snap, err := TakeSnapshot(context.Background(), src, nil)
	require.NoError(t, err)

	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Tasks, 1)
	assert.Len(t, snap.Entries, 1)
	assert.Equal(t, 5, snap.Skipped)
}

func TestEngine_Report_AllFromOneSnapshot(t *testing.T) {
	src := &sliceSource{snap: sampleTeamSnapshot()}
	e := testEngine(t, src)

	report, err := e.Report(context.Background(), testNow)
	require.NoError(t, err)

	// Internal consistency: the overview's mean is derived from exactly
	// the per-user scores the performance list shows.
	sum := 0.0
	for _, p := range report.Performance {
		sum += p.ProductivityScore
	}
	assert.InDelta(t, round1(sum/float64(len(report.Performance))),
		report.Overview.TeamProductivityScore, 1e-9)

	assert.Len(t, report.Leaderboard, 3)
	assert.Len(t, report.Trends.TaskCompletionTrends, 30)
}

func TestEngine_Report_SourceFailureReturnsNothing(t *testing.T) {
	src := &sliceSource{fail: true}
	e := testEngine(t, src)

	report, err := e.Report(context.Background(), testNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
	assert.Equal(t, Report{}, report)
}
