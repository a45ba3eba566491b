package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

type createRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Users handles /api/users (POST create, GET list).
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
			writeErr(w, http.StatusBadRequest, "name and email are required")
			return
		}

		u, err := h.repo.Create(r.Context(), New(req.Name, req.Email, req.AvatarURL))
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				writeErr(w, http.StatusBadRequest, "email already registered")
				return
			}
			writeErr(w, http.StatusInternalServerError, "create user failed")
			return
		}
		writeJSON(w, http.StatusOK, u)

	case http.MethodGet:
		users, err := h.repo.List(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "list users failed")
			return
		}
		writeJSON(w, http.StatusOK, users)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// UserByID handles /api/users/{id}.
func (h *Handler) UserByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if id == "" || strings.Contains(id, "/") {
		writeErr(w, http.StatusNotFound, "user not found")
		return
	}

	u, ok, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "get user failed")
		return
	}
	if !ok {
		writeErr(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
