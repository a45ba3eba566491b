package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	created, err := repo.Create(ctx, New("a", "", "u-1", PriorityLow))
	require.NoError(t, err)

	got, ok, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestMemoryRepo_Update_StatusTransition(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, New("a", "", "u-1", PriorityMedium))
	require.NoError(t, err)

	done := StatusDone
	updated, err := repo.Update(ctx, created.ID, Patch{Status: &done}, now)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, updated.Status)
	require.NotNil(t, updated.CompletedDate)
	assert.Equal(t, now, *updated.CompletedDate)
}

func TestMemoryRepo_Update_NotFound(t *testing.T) {
	repo := NewMemoryRepo()

	_, err := repo.Update(context.Background(), "missing", Patch{}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_List_Filters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	now := time.Now().UTC()

	t1, _ := repo.Create(ctx, New("a", "", "u-1", PriorityLow))
	_, _ = repo.Create(ctx, New("b", "", "u-2", PriorityLow))

	done := StatusDone
	_, err := repo.Update(ctx, t1.ID, Patch{Status: &done}, now)
	require.NoError(t, err)

	byUser, err := repo.List(ctx, ListFilter{AssignedTo: "u-1"})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, t1.ID, byUser[0].ID)

	byStatus, err := repo.List(ctx, ListFilter{Status: StatusDone})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, t1.ID, byStatus[0].ID)

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	created, _ := repo.Create(ctx, New("a", "", "", PriorityLow))

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRepo_AddHours(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	created, _ := repo.Create(ctx, New("a", "", "", PriorityLow))

	updated, err := repo.AddHours(ctx, created.ID, 3.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, updated.ActualHours)

	_, err = repo.AddHours(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	created, err := repo.Create(ctx, New("persists", "", "u-1", PriorityHigh))
	require.NoError(t, err)

	// A fresh repo over the same directory sees the task.
	reopened, err := NewFileRepo(dir)
	require.NoError(t, err)

	got, ok, err := reopened.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.Title, got.Title)
}
