package task

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tasks: make(map[string]Task)}
}

func (r *MemoryRepo) Create(ctx context.Context, t Task) (Task, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	normalizeTask(&t)
	r.tasks[t.ID] = t
	return t, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Task, bool, error) {
	_ = ctx

	r.mu.RLock()
	t, ok := r.tasks[id]
	r.mu.RUnlock()

	return t, ok, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, p Patch, now time.Time) (Task, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}

	applyPatch(&t, p, now)
	normalizeTask(&t)
	r.tasks[id] = t
	return t, nil
}

func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]Task, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if matches(t, filter) {
			normalizeTask(&t)
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *MemoryRepo) AddHours(ctx context.Context, id string, hours float64) (Task, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	t.AddHours(hours)
	r.tasks[id] = t
	return t, nil
}

func (r *MemoryRepo) Reset(ctx context.Context) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = make(map[string]Task)
	return nil
}

func normalizeTask(t *Task) {
	if t.Tags == nil {
		t.Tags = []string{}
	}
}

// sortTasks orders by creation date, then ID, so List output is stable.
func sortTasks(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedDate.Equal(tasks[j].CreatedDate) {
			return tasks[i].CreatedDate.Before(tasks[j].CreatedDate)
		}
		return tasks[i].ID < tasks[j].ID
	})
}
