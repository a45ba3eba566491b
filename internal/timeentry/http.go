package timeentry

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/arurana24/The-Third-Angle/internal/task"
	"github.com/arurana24/The-Third-Angle/internal/user"
)

type Handler struct {
	repo  Repo
	users user.Repo
	tasks task.Repo
}

func NewHandler(repo Repo, users user.Repo, tasks task.Repo) *Handler {
	return &Handler{repo: repo, users: users, tasks: tasks}
}

type createRequest struct {
	UserID      string     `json:"user_id"`
	TaskID      string     `json:"task_id"`
	Description string     `json:"description"`
	Hours       float64    `json:"hours"`
	EntryDate   *time.Time `json:"entry_date"`
	IsPomodoro  bool       `json:"is_pomodoro"`
}

// Entries handles /api/time-entries (POST create, GET list).
func (h *Handler) Entries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeErr(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.Hours < 0 {
		writeErr(w, http.StatusBadRequest, "hours must be non-negative")
		return
	}

	if h.users != nil {
		_, ok, err := h.users.Get(r.Context(), req.UserID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "lookup user failed")
			return
		}
		if !ok {
			writeErr(w, http.StatusNotFound, "user not found")
			return
		}
	}

	var entryDate time.Time
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}
	e := New(req.UserID, req.TaskID, req.Description, req.Hours, entryDate)
	e.IsPomodoro = req.IsPomodoro

	created, err := h.repo.Create(r.Context(), e)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "create time entry failed")
		return
	}

	// Logged hours accumulate onto the referenced task. A missing task is
	// tolerated so orphaned task_id references never block the entry.
	if created.TaskID != "" && h.tasks != nil {
		_, _ = h.tasks.AddHours(r.Context(), created.TaskID, created.Hours)
	}

	writeJSON(w, http.StatusOK, created)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		UserID: r.URL.Query().Get("user_id"),
		TaskID: r.URL.Query().Get("task_id"),
	}

	entries, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "list time entries failed")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
