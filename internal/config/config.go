package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arurana24/The-Third-Angle/internal/analytics"
)

type Config struct {
	Addr      string    `yaml:"addr" json:"addr"`
	DataDir   string    `yaml:"data_dir" json:"data_dir"`
	Analytics Analytics `yaml:"analytics" json:"analytics"`
}

// Analytics holds the tunable scoring weights and windows. Zero values are
// replaced by the documented defaults; out-of-range values are rejected
// when the engine is constructed.
type Analytics struct {
	CompletionWeight  float64 `yaml:"completion_weight" json:"completion_weight"`
	HoursWeight       float64 `yaml:"hours_weight" json:"hours_weight"`
	WeeklyHoursTarget float64 `yaml:"weekly_hours_target" json:"weekly_hours_target"`
	TaskPoints        float64 `yaml:"task_points" json:"task_points"`
	HourPoints        float64 `yaml:"hour_points" json:"hour_points"`
	WindowDays        int     `yaml:"window_days" json:"window_days"`
	Timezone          string  `yaml:"timezone" json:"timezone"`
}

func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}

	def := analytics.DefaultConfig()
	a := &c.Analytics
	if a.CompletionWeight == 0 && a.HoursWeight == 0 {
		a.CompletionWeight = def.CompletionWeight
		a.HoursWeight = def.HoursWeight
	}
	if a.WeeklyHoursTarget == 0 {
		a.WeeklyHoursTarget = def.WeeklyHoursTarget
	}
	if a.TaskPoints == 0 && a.HourPoints == 0 {
		a.TaskPoints = def.TaskPoints
		a.HourPoints = def.HourPoints
	}
	if a.WindowDays == 0 {
		a.WindowDays = def.WindowDays
	}
	if a.Timezone == "" {
		a.Timezone = "UTC"
	}
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

// EngineConfig resolves the analytics section into an engine config,
// including the day-boundary timezone lookup.
func (a Analytics) EngineConfig() (analytics.Config, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return analytics.Config{}, err
	}
	return analytics.Config{
		CompletionWeight:  a.CompletionWeight,
		HoursWeight:       a.HoursWeight,
		WeeklyHoursTarget: a.WeeklyHoursTarget,
		TaskPoints:        a.TaskPoints,
		HourPoints:        a.HourPoints,
		WindowDays:        a.WindowDays,
		DayBoundary:       loc,
	}, nil
}
