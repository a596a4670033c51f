// Package config loads the four logical documents that configure a sprint
// planning run: setup, executors, day-offs, and dependencies. Setup layers
// SPRINTCTL_* environment variables over a YAML file over built-in
// defaults, with flags on top only when the caller passes a Viper instance
// that has them bound (the CLI commands pass none); the other three
// documents are plain on-disk data with no flag/env overlay, each parsed
// on its own (executors and day-offs with a scoped Viper instance,
// dependencies with go-toml).
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Setup holds sprint identity, window, and run-level settings, loaded from
// sprint.yaml (or SPRINTCTL_* env vars / --flag overrides).
type Setup struct {
	SprintID        string `mapstructure:"sprint_id"`
	SprintName      string `mapstructure:"sprint_name"`
	Year            int    `mapstructure:"year"`
	Quarter         int    `mapstructure:"quarter"`
	StartDate       string `mapstructure:"start_date"` // YYYY-MM-DD
	EndDate         string `mapstructure:"end_date"`   // YYYY-MM-DD
	Timezone        string `mapstructure:"timezone"`
	TeamAreaPath    string `mapstructure:"team_area_path"`
	UpstreamBaseURL string `mapstructure:"upstream_base_url"`
	UpstreamPATEnv  string `mapstructure:"upstream_pat_env"` // name of the env var holding the PAT
	OutputDir       string `mapstructure:"output_dir"`
}

// ParsedWindow returns the sprint's start and end dates as time.Time values
// in the sprint's timezone, truncated to midnight. It never compares across
// timezones internally; the timezone is carried for display purposes only,
// per the calendar-date + period model the scheduler operates on.
func (s Setup) ParsedWindow() (start, end time.Time, loc *time.Location, err error) {
	loc, err = time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidDate, s.Timezone, err)
	}
	start, err = time.ParseInLocation("2006-01-02", s.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: start_date %q: %v", ErrInvalidDate, s.StartDate, err)
	}
	end, err = time.ParseInLocation("2006-01-02", s.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: end_date %q: %v", ErrInvalidDate, s.EndDate, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalidDate, s.EndDate, s.StartDate)
	}
	return start, end, loc, nil
}

// LoadSetup reads sprint.yaml from dir, applying built-in defaults for any
// value not set by the file, a SPRINTCTL_* environment variable, or a bound
// CLI flag. v may be nil, in which case a scoped Viper instance that only
// reads the file and the environment is used (no flags).
func LoadSetup(dir string, v *viper.Viper) (Setup, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetConfigFile(filepath.Join(dir, "sprint.yaml"))
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SPRINTCTL")
	v.AutomaticEnv()

	v.SetDefault("timezone", "UTC")
	v.SetDefault("output_dir", "./out")
	v.SetDefault("quarter", 1)

	if err := v.ReadInConfig(); err != nil {
		return Setup{}, &DocumentError{Document: "setup", Err: err}
	}

	var s Setup
	if err := v.Unmarshal(&s); err != nil {
		return Setup{}, &DocumentError{Document: "setup", Err: err}
	}

	if s.SprintID == "" {
		return Setup{}, &DocumentError{Document: "setup", Field: "sprint_id", Err: ErrMissingField}
	}
	if _, _, _, err := s.ParsedWindow(); err != nil {
		return Setup{}, &DocumentError{Document: "setup", Field: "start_date/end_date", Err: err}
	}
	return s, nil
}
