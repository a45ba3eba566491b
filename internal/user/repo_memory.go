package user

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, u User) (User, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return User{}, ErrEmailTaken
		}
	}

	r.users[u.ID] = u
	return u, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (User, bool, error) {
	_ = ctx

	r.mu.RLock()
	u, ok := r.users[id]
	r.mu.RUnlock()

	return u, ok, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sortUsers(out)
	return out, nil
}

func (r *MemoryRepo) Reset(ctx context.Context) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]User)
	return nil
}

// sortUsers orders by join date, then ID, so List output is stable.
func sortUsers(users []User) {
	sort.Slice(users, func(i, j int) bool {
		if !users[i].JoinedDate.Equal(users[j].JoinedDate) {
			return users[i].JoinedDate.Before(users[j].JoinedDate)
		}
		return users[i].ID < users[j].ID
	})
}
