package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig wraps all engine construction failures so callers can
// distinguish a misconfiguration from a query-time error.
var ErrInvalidConfig = errors.New("invalid analytics config")

// Config holds the scoring weights and window sizes for report computation.
// Weights are configuration, not hidden constants; DefaultConfig documents
// the defaults the service ships with.
type Config struct {
	// CompletionWeight and HoursWeight blend the two productivity score
	// components. They must be non-negative and sum to 1.0.
	CompletionWeight float64
	HoursWeight      float64

	// WeeklyHoursTarget normalizes hours-this-week into a [0,100] component.
	WeeklyHoursTarget float64

	// TaskPoints and HourPoints are the leaderboard scoring weights:
	// points = tasks_completed*TaskPoints + hours_logged*HourPoints.
	TaskPoints float64
	HourPoints float64

	// WindowDays is the rolling trend window length.
	WindowDays int

	// DayBoundary is the location whose midnight starts a calendar day.
	DayBoundary *time.Location
}

func DefaultConfig() Config {
	return Config{
		CompletionWeight:  0.70,
		HoursWeight:       0.30,
		WeeklyHoursTarget: 40,
		TaskPoints:        10,
		HourPoints:        2,
		WindowDays:        30,
		DayBoundary:       time.UTC,
	}
}

const weightSumEpsilon = 1e-9

func (c Config) validate() error {
	if c.CompletionWeight < 0 || c.HoursWeight < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidConfig)
	}
	if math.Abs(c.CompletionWeight+c.HoursWeight-1.0) > weightSumEpsilon {
		return fmt.Errorf("%w: completion and hours weights must sum to 1.0, got %g",
			ErrInvalidConfig, c.CompletionWeight+c.HoursWeight)
	}
	if c.WeeklyHoursTarget <= 0 {
		return fmt.Errorf("%w: weekly hours target must be positive", ErrInvalidConfig)
	}
	if c.TaskPoints < 0 || c.HourPoints < 0 {
		return fmt.Errorf("%w: leaderboard point weights must be non-negative", ErrInvalidConfig)
	}
	if c.WindowDays < 1 {
		return fmt.Errorf("%w: window must cover at least one day", ErrInvalidConfig)
	}
	if c.DayBoundary == nil {
		return fmt.Errorf("%w: day boundary location is required", ErrInvalidConfig)
	}
	return nil
}
