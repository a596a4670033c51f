package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// dependenciesFile is the on-disk shape of dependencies.toml: successor
// task ID -> list of prerequisite task IDs.
type dependenciesFile struct {
	Dependencies map[string][]string `toml:"dependencies"`
}

// DepEdge is a single successor-depends-on-prerequisite edge, prior to
// resolution against the known task set (spec §4.4 step 1).
type DepEdge struct {
	Successor   string
	Prerequisite string
}

// LoadDependencies reads dependencies.toml from dir directly with
// go-toml/v2 (the document is a small, self-contained map with no need for
// Viper's env/flag layering). Self-edges are rejected at load; duplicate
// prerequisite entries for the same successor are deduplicated silently,
// per spec §6.
func LoadDependencies(dir string) ([]DepEdge, error) {
	path := filepath.Join(dir, "dependencies.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &DocumentError{Document: "dependencies", Err: err}
	}

	var file dependenciesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, &DocumentError{Document: "dependencies", Err: fmt.Errorf("parsing TOML: %w", err)}
	}

	var edges []DepEdge
	for successor, prereqs := range file.Dependencies {
		seen := make(map[string]bool, len(prereqs))
		for _, p := range prereqs {
			if p == successor {
				return nil, &DocumentError{
					Document: "dependencies",
					Field:    successor,
					Err:      fmt.Errorf("%w: %q", ErrSelfDependency, successor),
				}
			}
			if seen[p] {
				continue
			}
			seen[p] = true
			edges = append(edges, DepEdge{Successor: successor, Prerequisite: p})
		}
	}
	return edges, nil
}
