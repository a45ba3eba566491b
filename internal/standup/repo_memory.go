package standup

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrAlreadySubmitted is returned when a user already has a standup for the
// calendar day of the new entry.
var ErrAlreadySubmitted = errors.New("standup already exists for today")

type ListFilter struct {
	// UserID: "" means any user.
	UserID string

	// Date: zero means any day; otherwise matches the calendar day in UTC.
	Date time.Time
}

type Repo interface {
	Create(ctx context.Context, s Standup) (Standup, error)
	List(ctx context.Context, filter ListFilter) ([]Standup, error)
	Reset(ctx context.Context) error
}

type MemoryRepo struct {
	mu       sync.RWMutex
	standups map[string]Standup
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{standups: make(map[string]Standup)}
}

func (r *MemoryRepo) Create(ctx context.Context, s Standup) (Standup, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.standups {
		if existing.UserID == s.UserID && sameDay(existing.Date, s.Date) {
			return Standup{}, ErrAlreadySubmitted
		}
	}

	r.standups[s.ID] = s
	return s, nil
}

func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]Standup, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Standup, 0, len(r.standups))
	for _, s := range r.standups {
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		if !filter.Date.IsZero() && !sameDay(s.Date, filter.Date) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) Reset(ctx context.Context) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.standups = make(map[string]Standup)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
