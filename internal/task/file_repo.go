package task

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/atomic"
)

// FileRepo is a persistent task repository backed by a single JSON file.
type FileRepo struct {
	mu    sync.RWMutex
	path  string
	tasks map[string]Task
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path:  filepath.Join(dataDir, "tasks.json"),
		tasks: make(map[string]Task),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var loaded map[string]Task
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded == nil {
		loaded = make(map[string]Task)
	}
	r.tasks = loaded
	return nil
}

// save must be called with r.mu held.
func (r *FileRepo) save() error {
	b, err := json.MarshalIndent(r.tasks, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(r.path, bytes.NewReader(b))
}

func (r *FileRepo) Create(ctx context.Context, t Task) (Task, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	normalizeTask(&t)
	r.tasks[t.ID] = t
	if err := r.save(); err != nil {
		delete(r.tasks, t.ID)
		return Task{}, err
	}
	return t, nil
}

func (r *FileRepo) Get(ctx context.Context, id string) (Task, bool, error) {
	_ = ctx

	r.mu.RLock()
	t, ok := r.tasks[id]
	r.mu.RUnlock()

	return t, ok, nil
}

func (r *FileRepo) Update(ctx context.Context, id string, p Patch, now time.Time) (Task, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}

	prev := t
	applyPatch(&t, p, now)
	normalizeTask(&t)
	r.tasks[id] = t
	if err := r.save(); err != nil {
		r.tasks[id] = prev
		return Task{}, err
	}
	return t, nil
}

func (r *FileRepo) List(ctx context.Context, filter ListFilter) ([]Task, error) {
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

func (r *FileRepo) Delete(ctx context.Context, id string) (bool, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return false, nil
	}
	delete(r.tasks, id)
	if err := r.save(); err != nil {
		r.tasks[id] = t
		return false, err
	}
	return true, nil
}

func (r *FileRepo) AddHours(ctx context.Context, id string, hours float64) (Task, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	prev := t
	t.AddHours(hours)
	r.tasks[id] = t
	if err := r.save(); err != nil {
		r.tasks[id] = prev
		return Task{}, err
	}
	return t, nil
}

func (r *FileRepo) Reset(ctx context.Context) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = make(map[string]Task)
	return r.save()
}
