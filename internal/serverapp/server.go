package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/arurana24/The-Third-Angle/internal/analytics"
	"github.com/arurana24/The-Third-Angle/internal/config"
	"github.com/arurana24/The-Third-Angle/internal/goal"
	"github.com/arurana24/The-Third-Angle/internal/httpmw"
	"github.com/arurana24/The-Third-Angle/internal/seed"
	"github.com/arurana24/The-Third-Angle/internal/standup"
	"github.com/arurana24/The-Third-Angle/internal/task"
	"github.com/arurana24/The-Third-Angle/internal/timeentry"
	"github.com/arurana24/The-Third-Angle/internal/user"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger

	// Clock is the reference instant for "today" and window computations.
	// Defaults to time.Now in UTC; tests pin it.
	Clock func() time.Time

	// InMemory skips the JSON file stores. Used by tests.
	InMemory bool
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Now().UTC() }
	}

	var (
		userRepo  user.Repo
		taskRepo  task.Repo
		entryRepo timeentry.Repo
		err       error
	)
	if opts.InMemory {
		userRepo = user.NewMemoryRepo()
		taskRepo = task.NewMemoryRepo()
		entryRepo = timeentry.NewMemoryRepo()
	} else {
		dataDir := opts.Config.DataDir
		if userRepo, err = user.NewFileRepo(dataDir); err != nil {
			return nil, err
		}
		if taskRepo, err = task.NewFileRepo(dataDir); err != nil {
			return nil, err
		}
		if entryRepo, err = timeentry.NewFileRepo(dataDir); err != nil {
			return nil, err
		}
	}
	goalRepo := goal.NewMemoryRepo()
	standupRepo := standup.NewMemoryRepo()

	engineCfg, err := opts.Config.Analytics.EngineConfig()
	if err != nil {
		return nil, err
	}
	engine, err := analytics.NewEngine(&storeSource{
		users:   userRepo,
		tasks:   taskRepo,
		entries: entryRepo,
	}, engineCfg, opts.Logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "thirdangle",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	userHandler := user.NewHandler(userRepo)
	mux.HandleFunc("/api/users", userHandler.Users)
	mux.HandleFunc("/api/users/", userHandler.UserByID)

	taskHandler := task.NewHandler(taskRepo, userRepo, opts.Clock)
	mux.HandleFunc("/api/tasks", taskHandler.Tasks)
	mux.HandleFunc("/api/tasks/", taskHandler.TaskByID)

	entryHandler := timeentry.NewHandler(entryRepo, userRepo, taskRepo)
	mux.HandleFunc("/api/time-entries", entryHandler.Entries)

	goalHandler := goal.NewHandler(goalRepo)
	mux.HandleFunc("/api/goals", goalHandler.Goals)

	standupHandler := standup.NewHandler(standupRepo, opts.Clock)
	mux.HandleFunc("/api/standups", standupHandler.Standups)

	analyticsHandler := analytics.NewHandler(engine, opts.Clock)
	mux.HandleFunc("/api/analytics/team-overview", analyticsHandler.TeamOverview)
	mux.HandleFunc("/api/analytics/individual-performance", analyticsHandler.IndividualPerformance)
	mux.HandleFunc("/api/analytics/team-leaderboard", analyticsHandler.Leaderboard)
	mux.HandleFunc("/api/analytics/productivity-trends", analyticsHandler.Trends)

	mux.HandleFunc("/api/init-sample-data", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			return
		}
		stores := seed.Stores{Users: userRepo, Tasks: taskRepo, Entries: entryRepo}
		if err := seed.Apply(r.Context(), stores, opts.Clock()); err != nil {
			opts.Logger.Printf(`{"level":"error","msg":"seed_failed","error":%q}`, err.Error())
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "seed failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "sample data initialized"})
	})

	return httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithAccessLog(opts.Logger),
	), nil
}

// storeSource adapts the record repositories to the analytics engine's
// Source boundary.
type storeSource struct {
	users   user.Repo
	tasks   task.Repo
	entries timeentry.Repo
}

func (s *storeSource) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}

func (s *storeSource) ListTasks(ctx context.Context) ([]task.Task, error) {
	return s.tasks.List(ctx, task.ListFilter{})
}

func (s *storeSource) ListTimeEntries(ctx context.Context) ([]timeentry.Entry, error) {
	return s.entries.List(ctx, timeentry.ListFilter{})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
