package timeentry

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[string]Entry)}
}

func (r *MemoryRepo) Create(ctx context.Context, e Entry) (Entry, error) {
	_ = ctx

	if e.Hours < 0 {
		return Entry{}, ErrNegativeHours
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[e.ID] = e
	return e, nil
}

func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if matches(e, filter) {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *MemoryRepo) Reset(ctx context.Context) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]Entry)
	return nil
}

// sortEntries orders newest first, ties broken by ID for stable output.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].EntryDate.Equal(entries[j].EntryDate) {
			return entries[i].EntryDate.After(entries[j].EntryDate)
		}
		return entries[i].ID < entries[j].ID
	})
}
