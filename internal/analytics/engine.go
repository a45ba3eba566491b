package analytics

import (
	"context"
	"log"
	"sync"
	"time"
)

// Engine turns a snapshot of users, tasks and time entries into the derived
// productivity reports. All report methods are pure over the snapshot and
// take the reference instant explicitly, so results are reproducible.
type Engine struct {
	cfg    Config
	src    Source
	logger *log.Logger
}

// NewEngine validates cfg up front; a bad weight or window fails here,
// never at query time.
func NewEngine(src Source, cfg Config, logger *log.Logger) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{cfg: cfg, src: src, logger: logger}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Snapshot reads the record store once. Reports built from the returned
// snapshot are mutually consistent.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	return TakeSnapshot(ctx, e.src, e.logger)
}

// Report bundles all four report payloads computed from one snapshot.
type Report struct {
	Overview    TeamOverview       `json:"team_overview"`
	Performance []UserPerformance  `json:"individual_performance"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Trends      Trends             `json:"productivity_trends"`
}

// Report takes one snapshot and computes the four reports concurrently.
// They share no mutable state and are merged only here, at assembly.
func (e *Engine) Report(ctx context.Context, now time.Time) (Report, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return Report{}, err
	}

	var out Report
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		out.Overview = e.TeamOverview(snap, now)
	}()
	go func() {
		defer wg.Done()
		out.Performance = e.IndividualPerformance(snap, now)
	}()
	go func() {
		defer wg.Done()
		out.Leaderboard = e.Leaderboard(snap, now)
	}()
	go func() {
		defer wg.Done()
		out.Trends = e.Trends(snap, now)
	}()

	wg.Wait()
	return out, nil
}
