package config

import (
	"os"
	"strconv"
)

// FromEnv applies environment overrides on top of cfg.
// Unset or unparseable variables leave the existing value alone.
func FromEnv(cfg *Config) {
	if v := os.Getenv("THIRDANGLE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("THIRDANGLE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := getEnvFloat("THIRDANGLE_COMPLETION_WEIGHT"); v != nil {
		cfg.Analytics.CompletionWeight = *v
	}
	if v := getEnvFloat("THIRDANGLE_HOURS_WEIGHT"); v != nil {
		cfg.Analytics.HoursWeight = *v
	}
	if v := getEnvFloat("THIRDANGLE_WEEKLY_HOURS_TARGET"); v != nil {
		cfg.Analytics.WeeklyHoursTarget = *v
	}
	if v := getEnvFloat("THIRDANGLE_TASK_POINTS"); v != nil {
		cfg.Analytics.TaskPoints = *v
	}
	if v := getEnvFloat("THIRDANGLE_HOUR_POINTS"); v != nil {
		cfg.Analytics.HourPoints = *v
	}
	if v := getEnvInt("THIRDANGLE_WINDOW_DAYS"); v != nil {
		cfg.Analytics.WindowDays = *v
	}
	if v := os.Getenv("THIRDANGLE_TIMEZONE"); v != "" {
		cfg.Analytics.Timezone = v
	}
}

func getEnvFloat(key string) *float64 {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &num
}

func getEnvInt(key string) *int {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &num
}
