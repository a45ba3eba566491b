package timeentry

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// FileRepo is a persistent time-entry repository backed by a single JSON file.
type FileRepo struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path:    filepath.Join(dataDir, "time_entries.json"),
		entries: make(map[string]Entry),
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

	var loaded map[string]Entry
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded == nil {
		loaded = make(map[string]Entry)
	}
	r.entries = loaded
	return nil
}

// save must be called with r.mu held.
func (r *FileRepo) save() error {
	b, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(r.path, bytes.NewReader(b))
}

func (r *FileRepo) Create(ctx context.Context, e Entry) (Entry, error) {
	_ = ctx

	if e.Hours < 0 {
		return Entry{}, ErrNegativeHours
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[e.ID] = e
	if err := r.save(); err != nil {
		delete(r.entries, e.ID)
		return Entry{}, err
	}
	return e, nil
}

func (r *FileRepo) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
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

func (r *FileRepo) Reset(ctx context.Context) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]Entry)
	return r.save()
}
