package user

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// FileRepo is a persistent user repository backed by a single JSON file.
// Writes go through an atomic rename so a crash never leaves a torn file.
type FileRepo struct {
	mu    sync.RWMutex
	path  string
	users map[string]User
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path:  filepath.Join(dataDir, "users.json"),
		users: make(map[string]User),
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

	var loaded map[string]User
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded == nil {
		loaded = make(map[string]User)
	}
	r.users = loaded
	return nil
}

// save must be called with r.mu held.
func (r *FileRepo) save() error {
	b, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(r.path, bytes.NewReader(b))
}

func (r *FileRepo) Create(ctx context.Context, u User) (User, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return User{}, ErrEmailTaken
		}
	}

	r.users[u.ID] = u
	if err := r.save(); err != nil {
		delete(r.users, u.ID)
		return User{}, err
	}
	return u, nil
}

func (r *FileRepo) Get(ctx context.Context, id string) (User, bool, error) {
	_ = ctx

	r.mu.RLock()
	u, ok := r.users[id]
	r.mu.RUnlock()

	return u, ok, nil
}

func (r *FileRepo) List(ctx context.Context) ([]User, error) {
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

func (r *FileRepo) Reset(ctx context.Context) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]User)
	return r.save()
}
