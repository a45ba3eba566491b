package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/arurana24/The-Third-Angle/internal/user"
)

type Handler struct {
	repo  Repo
	users user.Repo
	clock func() time.Time
}

func NewHandler(repo Repo, users user.Repo, clock func() time.Time) *Handler {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Handler{repo: repo, users: users, clock: clock}
}

type createRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       Priority   `json:"priority"`
	AssignedTo     string     `json:"assigned_to"`
	ProjectID      string     `json:"project_id"`
	EstimatedHours float64    `json:"estimated_hours"`
	DueDate        *time.Time `json:"due_date"`
	Tags           []string   `json:"tags"`
}

// Tasks handles /api/tasks (POST create, GET list).
func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
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
	if strings.TrimSpace(req.Title) == "" {
		writeErr(w, http.StatusBadRequest, "title is required")
		return
	}

	if req.AssignedTo != "" && h.users != nil {
		_, ok, err := h.users.Get(r.Context(), req.AssignedTo)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "lookup assignee failed")
			return
		}
		if !ok {
			writeErr(w, http.StatusNotFound, "assigned user not found")
			return
		}
	}

	t := New(req.Title, req.Description, req.AssignedTo, req.Priority)
	t.ProjectID = req.ProjectID
	t.EstimatedHours = req.EstimatedHours
	t.DueDate = req.DueDate
	if req.Tags != nil {
		t.Tags = req.Tags
	}

	created, err := h.repo.Create(r.Context(), t)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "create task failed")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		AssignedTo: r.URL.Query().Get("user_id"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := Status(s)
		if !status.Valid() {
			writeErr(w, http.StatusBadRequest, "unknown status: "+s)
			return
		}
		filter.Status = status
	}

	tasks, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "list tasks failed")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// TaskByID handles /api/tasks/{id} (PUT update, DELETE).
func (h *Handler) TaskByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	if id == "" || strings.Contains(id, "/") {
		writeErr(w, http.StatusNotFound, "task not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var p Patch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if p.Status != nil && !p.Status.Valid() {
			writeErr(w, http.StatusBadRequest, "unknown status")
			return
		}
		if p.Priority != nil && !p.Priority.Valid() {
			writeErr(w, http.StatusBadRequest, "unknown priority")
			return
		}

		updated, err := h.repo.Update(r.Context(), id, p, h.clock())
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeErr(w, http.StatusNotFound, "task not found")
				return
			}
			writeErr(w, http.StatusInternalServerError, "update task failed")
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		ok, err := h.repo.Delete(r.Context(), id)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "delete task failed")
			return
		}
		if !ok {
			writeErr(w, http.StatusNotFound, "task not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "task deleted"})

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
