package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arurana24/The-Third-Angle/internal/config"
	"github.com/arurana24/The-Third-Angle/internal/serverapp"
)

var integrationNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

type testApp struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)

	h, err := serverapp.NewHandler(serverapp.Options{
		Config:   config.Default(),
		Logger:   logger,
		Clock:    func() time.Time { return integrationNow },
		InMemory: true,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testApp{handler: h, logs: &logs}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b), "application/json")
}

func (a *testApp) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func decodeBodyList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json list failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func asString(t *testing.T, v any) string {
	t.Helper()
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string, got %T (%v)", v, v)
	}
	return s
}

func TestServer_HealthExposesRequestID(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/healthz", nil, "")
	if res.Code != http.StatusOK {
		t.Fatalf("/healthz expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
		t.Fatalf("/healthz missing X-Request-Id header")
	}
}

func TestServer_UserTaskTimeEntryRoundTrip(t *testing.T) {
	app := newTestApp(t)

	userRes := app.json(http.MethodPost, "/api/users", map[string]any{
		"name":  "Integration User",
		"email": "integration@example.com",
	})
	if userRes.Code != http.StatusOK {
		t.Fatalf("create user expected 200, got %d body=%s", userRes.Code, userRes.Body.String())
	}
	userID := asString(t, decodeBodyMap(t, userRes)["id"])

	dupRes := app.json(http.MethodPost, "/api/users", map[string]any{
		"name":  "Dup",
		"email": "INTEGRATION@example.com",
	})
	if dupRes.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email expected 400, got %d", dupRes.Code)
	}

	orphanRes := app.json(http.MethodPost, "/api/tasks", map[string]any{
		"title":       "Orphan",
		"assigned_to": "no-such-user",
	})
	if orphanRes.Code != http.StatusNotFound {
		t.Fatalf("task for unknown user expected 404, got %d body=%s", orphanRes.Code, orphanRes.Body.String())
	}

	taskRes := app.json(http.MethodPost, "/api/tasks", map[string]any{
		"title":       "Ship it",
		"assigned_to": userID,
		"priority":    "high",
	})
	if taskRes.Code != http.StatusOK {
		t.Fatalf("create task expected 200, got %d body=%s", taskRes.Code, taskRes.Body.String())
	}
	taskID := asString(t, decodeBodyMap(t, taskRes)["id"])

	doneRes := app.json(http.MethodPut, "/api/tasks/"+taskID, map[string]any{
		"status": "done",
	})
	if doneRes.Code != http.StatusOK {
		t.Fatalf("complete task expected 200, got %d body=%s", doneRes.Code, doneRes.Body.String())
	}
	if decodeBodyMap(t, doneRes)["completed_date"] == nil {
		t.Fatalf("completed task should carry completed_date, body=%s", doneRes.Body.String())
	}

	entryRes := app.json(http.MethodPost, "/api/time-entries", map[string]any{
		"user_id":     userID,
		"task_id":     taskID,
		"hours":       4.0,
		"description": "integration work",
	})
	if entryRes.Code != http.StatusOK {
		t.Fatalf("create time entry expected 200, got %d body=%s", entryRes.Code, entryRes.Body.String())
	}

	negRes := app.json(http.MethodPost, "/api/time-entries", map[string]any{
		"user_id": userID,
		"hours":   -1.0,
	})
	if negRes.Code != http.StatusBadRequest {
		t.Fatalf("negative hours expected 400, got %d", negRes.Code)
	}

	listRes := app.request(http.MethodGet, "/api/tasks?user_id="+userID, nil, "")
	if listRes.Code != http.StatusOK {
		t.Fatalf("list tasks expected 200, got %d", listRes.Code)
	}
	if got := len(decodeBodyList(t, listRes)); got != 1 {
		t.Fatalf("expected 1 task for user, got %d", got)
	}
}

func TestServer_SeedThenAnalytics(t *testing.T) {
	app := newTestApp(t)

	seedRes := app.request(http.MethodPost, "/api/init-sample-data", nil, "")
	if seedRes.Code != http.StatusOK {
		t.Fatalf("seed expected 200, got %d body=%s", seedRes.Code, seedRes.Body.String())
	}

	usersRes := app.request(http.MethodGet, "/api/users", nil, "")
	if usersRes.Code != http.StatusOK {
		t.Fatalf("list users expected 200, got %d", usersRes.Code)
	}
	if got := len(decodeBodyList(t, usersRes)); got != 5 {
		t.Fatalf("expected 5 seeded users, got %d", got)
	}

	overviewRes := app.request(http.MethodGet, "/api/analytics/team-overview", nil, "")
	if overviewRes.Code != http.StatusOK {
		t.Fatalf("team overview expected 200, got %d body=%s", overviewRes.Code, overviewRes.Body.String())
	}
	overview := decodeBodyMap(t, overviewRes)
	if overview["team_size"].(float64) != 5 {
		t.Fatalf("expected team_size of 5, got %v", overview["team_size"])
	}
	total := overview["total_tasks"].(float64)
	partition := overview["completed_tasks"].(float64) +
		overview["in_progress_tasks"].(float64) +
		overview["todo_tasks"].(float64)
	if total != partition {
		t.Fatalf("status counts should partition total: %v != %v", total, partition)
	}

	perfRes := app.request(http.MethodGet, "/api/analytics/individual-performance", nil, "")
	if perfRes.Code != http.StatusOK {
		t.Fatalf("individual performance expected 200, got %d", perfRes.Code)
	}
	perf := decodeBodyList(t, perfRes)
	if len(perf) != 5 {
		t.Fatalf("expected 5 performance rows, got %d", len(perf))
	}
	for i := 1; i < len(perf); i++ {
		prev := perf[i-1]["productivity_score"].(float64)
		cur := perf[i]["productivity_score"].(float64)
		if cur > prev {
			t.Fatalf("performance rows out of order at %d: %v > %v", i, cur, prev)
		}
	}

	boardRes := app.request(http.MethodGet, "/api/analytics/team-leaderboard", nil, "")
	if boardRes.Code != http.StatusOK {
		t.Fatalf("leaderboard expected 200, got %d", boardRes.Code)
	}
	board := decodeBodyList(t, boardRes)
	if len(board) != 5 {
		t.Fatalf("expected 5 leaderboard rows, got %d", len(board))
	}
	for i, row := range board {
		if rank := row["rank"].(float64); rank != float64(i+1) {
			t.Fatalf("expected contiguous ranks, row %d has rank %v", i, rank)
		}
	}

	trendsRes := app.request(http.MethodGet, "/api/analytics/productivity-trends", nil, "")
	if trendsRes.Code != http.StatusOK {
		t.Fatalf("trends expected 200, got %d", trendsRes.Code)
	}
	trends := decodeBodyMap(t, trendsRes)
	completions, ok := trends["task_completion_trends"].([]any)
	if !ok || len(completions) != 30 {
		t.Fatalf("expected a dense 30-day completion trend, got %v", trends["task_completion_trends"])
	}
	last := completions[len(completions)-1].(map[string]any)
	if asString(t, last["day"]) != "2025-06-15" {
		t.Fatalf("expected trend to end at the reference day, got %v", last["day"])
	}

	postRes := app.request(http.MethodPost, "/api/analytics/team-overview", nil, "")
	if postRes.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST to analytics expected 405, got %d", postRes.Code)
	}
}
