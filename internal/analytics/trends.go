package analytics

import (
	"time"
)

const dayFormat = "2006-01-02"

type CompletionPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type HoursPoint struct {
	Day        string  `json:"day"`
	TotalHours float64 `json:"total_hours"`
}

type Trends struct {
	TaskCompletionTrends []CompletionPoint `json:"task_completion_trends"`
	TimeLoggingTrends    []HoursPoint      `json:"time_logging_trends"`
}

// Trends buckets completions and logged hours into calendar days over the
// rolling window ending at now. The series are dense: every day of the
// window appears exactly once, in chronological order, zero-valued when no
// record touched it. Downstream display truncation is the caller's concern.
func (e *Engine) Trends(snap Snapshot, now time.Time) Trends {
	loc := e.cfg.DayBoundary
	days := e.cfg.WindowDays

	// Buckets are generated from the window itself, never from observed
	// records, so sparse data cannot leave gaps.
	windowStart := startOfDay(now, loc).AddDate(0, 0, -(days - 1))
	windowEnd := windowStart.AddDate(0, 0, days)

	counts := make(map[string]int, days)
	hours := make(map[string]float64, days)

	for _, t := range snap.Tasks {
		if t.CompletedDate == nil {
			continue
		}
		done := *t.CompletedDate
		if inRange(done, windowStart, windowEnd) {
			counts[done.In(loc).Format(dayFormat)]++
		}
	}

	for _, en := range snap.Entries {
		if inRange(en.EntryDate, windowStart, windowEnd) {
			hours[en.EntryDate.In(loc).Format(dayFormat)] += en.Hours
		}
	}

	out := Trends{
		TaskCompletionTrends: make([]CompletionPoint, 0, days),
		TimeLoggingTrends:    make([]HoursPoint, 0, days),
	}
	for day := windowStart; day.Before(windowEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayFormat)
		out.TaskCompletionTrends = append(out.TaskCompletionTrends, CompletionPoint{
			Day:   key,
			Count: counts[key],
		})
		out.TimeLoggingTrends = append(out.TimeLoggingTrends, HoursPoint{
			Day:        key,
			TotalHours: round1(hours[key]),
		})
	}

	return out
}
