package goal

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

type createRequest struct {
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	GoalType    Type       `json:"goal_type"`
	TargetValue float64    `json:"target_value"`
	Deadline    *time.Time `json:"deadline"`
}

// Goals handles /api/goals (POST create, GET list).
func (h *Handler) Goals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Title) == "" {
			writeErr(w, http.StatusBadRequest, "user_id and title are required")
			return
		}
		if !req.GoalType.Valid() {
			writeErr(w, http.StatusBadRequest, "unknown goal_type")
			return
		}

		g := New(req.UserID, req.Title, req.Description, req.GoalType, req.TargetValue)
		g.Deadline = req.Deadline

		created, err := h.repo.Create(r.Context(), g)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "create goal failed")
			return
		}
		writeJSON(w, http.StatusOK, created)

	case http.MethodGet:
		goals, err := h.repo.List(r.Context(), r.URL.Query().Get("user_id"))
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "list goals failed")
			return
		}
		writeJSON(w, http.StatusOK, goals)

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
