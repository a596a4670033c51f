package sprint

import (
	"sort"

	"github.com/ewerton255/sprintctl/internal/config"
)

// Report is the rendering-agnostic structured result of a scheduling run
// (spec §4.7). Text, JSON, or any other presentation is shaped from this
// record externally.
type Report struct {
	SprintID   string
	SprintName string
	Stories    []StoryRow
	DayOffs    []DayOffSummary
	Edges      []Edge
	Analysis   Analysis // informational only; never drives placement order
	Rejections map[RejectReason][]string // reason -> sorted task IDs
}

// DayOffSummary is a per-executor count of declared day-off entries, full
// or half-day, surfaced in the report for operator context. Entries dated
// outside the sprint window are counted too.
type DayOffSummary struct {
	Executor string
	Days     int
}

// AssembleReport groups a scheduling Result and story aggregation into the
// single structured record the rest of the system renders. analysis is
// zero-valued if the dependency graph was empty or a BuildAnalysis error
// left it uncomputed; a report is still usable without it.
func AssembleReport(sprintID, sprintName string, stories []StoryRow, result Result, dayOffs []config.DayOff, edges []Edge, analysis Analysis) Report {
	rejections := make(map[RejectReason][]string)
	for _, r := range result.Rejections {
		rejections[r.Reason] = append(rejections[r.Reason], r.TaskID)
	}
	for reason := range rejections {
		sort.Strings(rejections[reason])
	}

	return Report{
		SprintID:   sprintID,
		SprintName: sprintName,
		Stories:    stories,
		DayOffs:    summarizeDayOffs(dayOffs),
		Edges:      sortedEdges(edges),
		Analysis:   analysis,
		Rejections: rejections,
	}
}

func summarizeDayOffs(dayOffs []config.DayOff) []DayOffSummary {
	counts := make(map[string]int)
	for _, d := range dayOffs {
		counts[d.Email]++
	}
	var out []DayOffSummary
	for email, n := range counts {
		out = append(out, DayOffSummary{Executor: email, Days: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Executor < out[j].Executor })
	return out
}

func sortedEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Successor != out[j].Successor {
			return out[i].Successor < out[j].Successor
		}
		return out[i].Prerequisite < out[j].Prerequisite
	})
	return out
}
