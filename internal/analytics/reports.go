package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/arurana24/The-Third-Angle/internal/task"
)

type TeamOverview struct {
	TeamSize              int     `json:"team_size"`
	TotalTasks            int     `json:"total_tasks"`
	CompletedTasks        int     `json:"completed_tasks"`
	InProgressTasks       int     `json:"in_progress_tasks"`
	TodoTasks             int     `json:"todo_tasks"`
	CompletionRate        float64 `json:"completion_rate"`
	TasksCompletedToday   int     `json:"tasks_completed_today"`
	TeamProductivityScore float64 `json:"team_productivity_score"`
}

type UserPerformance struct {
	UserID            string  `json:"user_id"`
	Name              string  `json:"name"`
	AvatarURL         string  `json:"avatar_url,omitempty"`
	CompletedTasks    int     `json:"completed_tasks"`
	HoursThisWeek     float64 `json:"hours_this_week"`
	CompletionRate    float64 `json:"completion_rate"`
	ProductivityScore float64 `json:"productivity_score"`
}

type LeaderboardEntry struct {
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	AvatarURL      string  `json:"avatar_url,omitempty"`
	Rank           int     `json:"rank"`
	TasksCompleted int     `json:"tasks_completed"`
	HoursLogged    float64 `json:"hours_logged"`
	Points         int     `json:"points"`
}

// TeamOverview aggregates task counts and the mean productivity score for
// the whole team. now anchors "today".
func (e *Engine) TeamOverview(snap Snapshot, now time.Time) TeamOverview {
	out := TeamOverview{TeamSize: len(snap.Users)}

	for _, t := range snap.Tasks {
		out.TotalTasks++
		switch t.Status {
		case task.StatusDone:
			out.CompletedTasks++
		case task.StatusInProgress:
			out.InProgressTasks++
		case task.StatusTodo:
			out.TodoTasks++
		}
	}

	if out.TotalTasks > 0 {
		out.CompletionRate = round1(float64(out.CompletedTasks) / float64(out.TotalTasks) * 100)
	}

	dayStart := startOfDay(now, e.cfg.DayBoundary)
	dayEnd := dayStart.AddDate(0, 0, 1)
	for _, t := range snap.Tasks {
		if t.CompletedDate != nil && inRange(*t.CompletedDate, dayStart, dayEnd) {
			out.TasksCompletedToday++
		}
	}

	// Mean of the per-user scores as they appear in the individual
	// performance report, so the two reports agree for one snapshot.
	if len(snap.Users) > 0 {
		calc := NewCalculator(e.cfg, snap)
		sum := 0.0
		for _, u := range snap.Users {
			sum += round1(calc.ProductivityScore(u.ID, now))
		}
		out.TeamProductivityScore = round1(sum / float64(len(snap.Users)))
	}

	return out
}

// IndividualPerformance lists every user's metrics, best score first.
// Ties break by completed tasks desc, then name asc, then user ID, so
// recomputation over an unchanged snapshot is byte-identical.
func (e *Engine) IndividualPerformance(snap Snapshot, now time.Time) []UserPerformance {
	calc := NewCalculator(e.cfg, snap)

	out := make([]UserPerformance, 0, len(snap.Users))
	for _, u := range snap.Users {
		out = append(out, UserPerformance{
			UserID:            u.ID,
			Name:              u.Name,
			AvatarURL:         u.AvatarURL,
			CompletedTasks:    calc.CompletedTasks(u.ID),
			HoursThisWeek:     round1(calc.HoursThisWeek(u.ID, now)),
			CompletionRate:    round1(calc.CompletionRate(u.ID)),
			ProductivityScore: round1(calc.ProductivityScore(u.ID, now)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductivityScore != out[j].ProductivityScore {
			return out[i].ProductivityScore > out[j].ProductivityScore
		}
		if out[i].CompletedTasks != out[j].CompletedTasks {
			return out[i].CompletedTasks > out[j].CompletedTasks
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].UserID < out[j].UserID
	})

	return out
}

// Leaderboard ranks users by points earned in the current calendar month.
// Ranks are always the contiguous sequence 1..N; equal points still get
// distinct sequential ranks after tie-breaking.
func (e *Engine) Leaderboard(snap Snapshot, now time.Time) []LeaderboardEntry {
	calc := NewCalculator(e.cfg, snap)

	monthStart := startOfMonth(now, e.cfg.DayBoundary)
	windowEnd := now

	out := make([]LeaderboardEntry, 0, len(snap.Users))
	for _, u := range snap.Users {
		completed := calc.CompletedInRange(u.ID, monthStart, windowEnd)
		hours := calc.HoursInRange(u.ID, monthStart, windowEnd)
		points := float64(completed)*e.cfg.TaskPoints + hours*e.cfg.HourPoints

		out = append(out, LeaderboardEntry{
			UserID:         u.ID,
			Name:           u.Name,
			AvatarURL:      u.AvatarURL,
			TasksCompleted: completed,
			HoursLogged:    round1(hours),
			Points:         int(math.Round(points)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].TasksCompleted != out[j].TasksCompleted {
			return out[i].TasksCompleted > out[j].TasksCompleted
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].UserID < out[j].UserID
	})

	for i := range out {
		out[i].Rank = i + 1
	}

	return out
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func startOfMonth(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}
