package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/ewerton255/sprintctl/internal/discipline"
)

// ExecutorsDoc maps a discipline name to the emails of the executors in
// that pool. Disciplines recognized: backend, frontend, qa, devops.
type ExecutorsDoc struct {
	Executors map[string][]string `mapstructure:"executors"`
}

// Roster is the validated, typed form of an executors document: discipline
// -> sorted, deduplicated executor emails.
type Roster map[discipline.Discipline][]string

// LoadExecutors reads executors.yaml from dir and validates that every
// discipline key is recognized, rejecting the whole document at load if
// not (spec §6).
func LoadExecutors(dir string) (Roster, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "executors.yaml"))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, &DocumentError{Document: "executors", Err: err}
	}

	var doc ExecutorsDoc
	if err := v.Unmarshal(&doc); err != nil {
		return nil, &DocumentError{Document: "executors", Err: err}
	}

	roster := make(Roster, len(doc.Executors))
	for name, emails := range doc.Executors {
		d, ok := discipline.Parse(name)
		if !ok {
			return nil, &DocumentError{
				Document: "executors",
				Field:    "executors." + name,
				Err:      fmt.Errorf("%w: %q", ErrUnknownDiscipline, name),
			}
		}
		dedup := make([]string, 0, len(emails))
		seen := make(map[string]bool, len(emails))
		for _, e := range emails {
			if e == "" || seen[e] {
				continue
			}
			seen[e] = true
			dedup = append(dedup, e)
		}
		sort.Strings(dedup)
		roster[d] = dedup
	}
	return roster, nil
}

// Contains reports whether email belongs to the discipline's pool.
func (r Roster) Contains(d discipline.Discipline, email string) bool {
	for _, e := range r[d] {
		if e == email {
			return true
		}
	}
	return false
}

// DisciplineOf returns the discipline an executor email belongs to, and
// whether it was found in any pool. An executor belongs to exactly one
// discipline pool (spec §3).
func (r Roster) DisciplineOf(email string) (discipline.Discipline, bool) {
	for d, emails := range r {
		for _, e := range emails {
			if e == email {
				return d, true
			}
		}
	}
	return discipline.Unknown, false
}
