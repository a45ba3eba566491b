package standup

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

type Handler struct {
	repo  Repo
	clock func() time.Time
}

func NewHandler(repo Repo, clock func() time.Time) *Handler {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Handler{repo: repo, clock: clock}
}

type createRequest struct {
	UserID    string `json:"user_id"`
	WhatIDid  string `json:"what_i_did"`
	WhatIllDo string `json:"what_ill_do"`
	Blockers  string `json:"blockers"`
}

// Standups handles /api/standups (POST create, GET list).
func (h *Handler) Standups(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.UserID) == "" {
			writeErr(w, http.StatusBadRequest, "user_id is required")
			return
		}

		s := New(req.UserID, req.WhatIDid, req.WhatIllDo, req.Blockers, h.clock())
		created, err := h.repo.Create(r.Context(), s)
		if err != nil {
			if errors.Is(err, ErrAlreadySubmitted) {
				writeErr(w, http.StatusBadRequest, "standup already exists for today")
				return
			}
			writeErr(w, http.StatusInternalServerError, "create standup failed")
			return
		}
		writeJSON(w, http.StatusOK, created)

	case http.MethodGet:
		filter := ListFilter{UserID: r.URL.Query().Get("user_id")}
		if d := r.URL.Query().Get("date"); d != "" {
			day, err := time.Parse("2006-01-02", d)
			if err != nil {
				writeErr(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
				return
			}
			filter.Date = day
		}

		standups, err := h.repo.List(r.Context(), filter)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "list standups failed")
			return
		}
		writeJSON(w, http.StatusOK, standups)

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
