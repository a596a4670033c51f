package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DayOffEntry is a single declared absence: a full day, or a morning/
// afternoon half-day.
type DayOffEntry struct {
	Date   string `mapstructure:"date"` // YYYY-MM-DD
	Period string `mapstructure:"period"`
}

// DayOffsDoc maps an executor email to the list of absences they declared.
type DayOffsDoc struct {
	DayOffs map[string][]DayOffEntry `mapstructure:"dayoffs"`
}

// DayOff is the parsed, validated form of a single DayOffEntry.
type DayOff struct {
	Email  string
	Date   time.Time
	Period string // "full", "morning", or "afternoon"
}

// LoadDayOffs reads dayoffs.yaml from dir. Unrecognized period values are a
// DocumentError; an executor email that does not match any configured
// executor is not validated here — spec §9 treats that mismatch as a
// warning for the caller to log, not a load failure.
func LoadDayOffs(dir string) ([]DayOff, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "dayoffs.yaml"))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// A day-offs document is optional: no declared absences is valid.
		if isNotFound(err) {
			return nil, nil
		}
		return nil, &DocumentError{Document: "dayoffs", Err: err}
	}

	var doc DayOffsDoc
	if err := v.Unmarshal(&doc); err != nil {
		return nil, &DocumentError{Document: "dayoffs", Err: err}
	}

	var out []DayOff
	for email, entries := range doc.DayOffs {
		for _, e := range entries {
			d, err := time.Parse("2006-01-02", e.Date)
			if err != nil {
				return nil, &DocumentError{
					Document: "dayoffs",
					Field:    fmt.Sprintf("dayoffs.%s.date", email),
					Err:      fmt.Errorf("%w: %q", ErrInvalidDate, e.Date),
				}
			}
			switch e.Period {
			case "full", "morning", "afternoon":
			default:
				return nil, &DocumentError{
					Document: "dayoffs",
					Field:    fmt.Sprintf("dayoffs.%s.period", email),
					Err:      fmt.Errorf("invalid period %q, want full, morning, or afternoon", e.Period),
				}
			}
			out = append(out, DayOff{Email: email, Date: d, Period: e.Period})
		}
	}
	return out, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return os.IsNotExist(err)
}
