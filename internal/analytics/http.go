package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

type Handler struct {
	engine *Engine
	clock  func() time.Time
}

func NewHandler(engine *Engine, clock func() time.Time) *Handler {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Handler{engine: engine, clock: clock}
}

// TeamOverview handles GET /api/analytics/team-overview.
func (h *Handler) TeamOverview(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(snap Snapshot, now time.Time) any {
		return h.engine.TeamOverview(snap, now)
	})
}

// IndividualPerformance handles GET /api/analytics/individual-performance.
func (h *Handler) IndividualPerformance(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(snap Snapshot, now time.Time) any {
		return h.engine.IndividualPerformance(snap, now)
	})
}

// Leaderboard handles GET /api/analytics/team-leaderboard.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(snap Snapshot, now time.Time) any {
		return h.engine.Leaderboard(snap, now)
	})
}

// Trends handles GET /api/analytics/productivity-trends.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(snap Snapshot, now time.Time) any {
		return h.engine.Trends(snap, now)
	})
}

// serve takes one snapshot and builds a single report from it. A snapshot
// failure is surfaced whole; no partially-populated payload leaves here.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, build func(Snapshot, time.Time) any) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, err := h.engine.Snapshot(r.Context())
	if err != nil {
		if errors.Is(err, ErrSnapshotUnavailable) {
			writeErr(w, http.StatusServiceUnavailable, "record store unavailable, retry later")
			return
		}
		writeErr(w, http.StatusInternalServerError, "snapshot failed")
		return
	}

	writeJSON(w, http.StatusOK, build(snap, h.clock()))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
