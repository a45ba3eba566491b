package analytics

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/arurana24/The-Third-Angle/internal/task"
	"github.com/arurana24/The-Third-Angle/internal/timeentry"
	"github.com/arurana24/The-Third-Angle/internal/user"
)

// ErrSnapshotUnavailable marks a transient record-store read failure.
// Callers may retry; no partial report is ever returned alongside it.
var ErrSnapshotUnavailable = errors.New("record store unavailable")

// Source is the record store adapter boundary. Implementations may read
// from memory, disk, or a remote store; the engine only needs the full
// current snapshot of each collection.
type Source interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	ListTasks(ctx context.Context) ([]task.Task, error)
	ListTimeEntries(ctx context.Context) ([]timeentry.Entry, error)
}

// Snapshot is one consistent, immutable read of the three collections.
// Every report for a request is computed from the same Snapshot so derived
// values (e.g. team score vs. listed per-user scores) always agree.
type Snapshot struct {
	Users   []user.User
	Tasks   []task.Task
	Entries []timeentry.Entry

	// Skipped counts records dropped during normalization.
	Skipped int
}

// TakeSnapshot reads all three collections once and drops malformed
// records. A single bad record never fails the whole read; an unreachable
// source fails the whole read with ErrSnapshotUnavailable.
func TakeSnapshot(ctx context.Context, src Source, logger *log.Logger) (Snapshot, error) {
	users, err := src.ListUsers(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: list users: %v", ErrSnapshotUnavailable, err)
	}
	tasks, err := src.ListTasks(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: list tasks: %v", ErrSnapshotUnavailable, err)
	}
	entries, err := src.ListTimeEntries(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: list time entries: %v", ErrSnapshotUnavailable, err)
	}

	snap := Snapshot{
		Users:   make([]user.User, 0, len(users)),
		Tasks:   make([]task.Task, 0, len(tasks)),
		Entries: make([]timeentry.Entry, 0, len(entries)),
	}

	for _, u := range users {
		if u.ID == "" {
			snap.Skipped++
			continue
		}
		snap.Users = append(snap.Users, u)
	}

	for _, t := range tasks {
		if !validTask(t) {
			snap.Skipped++
			continue
		}
		snap.Tasks = append(snap.Tasks, t)
	}

	for _, e := range entries {
		if e.ID == "" || e.UserID == "" || e.Hours < 0 || e.EntryDate.IsZero() {
			snap.Skipped++
			continue
		}
		snap.Entries = append(snap.Entries, e)
	}

	if snap.Skipped > 0 && logger != nil {
		logger.Printf(`{"level":"warn","msg":"snapshot_skipped_records","skipped":%d}`, snap.Skipped)
	}

	return snap, nil
}

// validTask enforces the invariant that CompletedDate is present iff the
// task is done. Records violating it came from an unvalidated store and
// are skipped rather than guessed at.
func validTask(t task.Task) bool {
	if t.ID == "" || !t.Status.Valid() {
		return false
	}
	if t.Status == task.StatusDone {
		return t.CompletedDate != nil
	}
	return t.CompletedDate == nil
}
