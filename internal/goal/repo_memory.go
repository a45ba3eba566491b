package goal

import (
	"context"
	"sort"
	"sync"
)

type Repo interface {
	Create(ctx context.Context, g Goal) (Goal, error)
	List(ctx context.Context, userID string) ([]Goal, error)
	Reset(ctx context.Context) error
}

type MemoryRepo struct {
	mu    sync.RWMutex
	goals map[string]Goal
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{goals: make(map[string]Goal)}
}

func (r *MemoryRepo) Create(ctx context.Context, g Goal) (Goal, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.goals[g.ID] = g
	return g, nil
}

// List returns goals for one user, or all goals when userID is empty.
func (r *MemoryRepo) List(ctx context.Context, userID string) ([]Goal, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Goal, 0, len(r.goals))
	for _, g := range r.goals {
		if userID != "" && g.UserID != userID {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedDate.Equal(out[j].CreatedDate) {
			return out[i].CreatedDate.Before(out[j].CreatedDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) Reset(ctx context.Context) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.goals = make(map[string]Goal)
	return nil
}
