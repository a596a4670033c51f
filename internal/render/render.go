// Package render turns a sprint.Report into operator-facing output: a
// human-readable ANSI-colored text report for terminals, or JSON for
// machine consumption. Rendering is a pure read of the report record; it
// never re-derives or mutates scheduling decisions (spec.md §4.7).
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ewerton255/sprintctl/internal/dag"
	"github.com/ewerton255/sprintctl/internal/sprint"
)

// ANSI color codes, matched to the teacher's ui.Printer palette.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	blue   = "\033[34m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer writes a sprint report to a writer. Color escapes are emitted
// unconditionally when Color is true; callers decide based on whether the
// destination is a terminal.
type Printer struct {
	Out   io.Writer
	Color bool
}

// New returns a Printer writing to stderr with color enabled, the
// teacher's conventional default for interactive use.
func New() *Printer {
	return &Printer{Out: os.Stderr, Color: true}
}

func (p *Printer) wrap(code, s string) string {
	if !p.Color {
		return s
	}
	return code + s + reset
}

// Text renders the full multi-section report: sprint header, per-story
// table, day-off summary, dependency edges, and rejections grouped by
// reason.
func (p *Printer) Text(r sprint.Report) {
	fmt.Fprintf(p.Out, "%s\n", p.wrap(bold+cyan, fmt.Sprintf("sprint: %s (%s)", r.SprintName, r.SprintID)))
	fmt.Fprintln(p.Out)

	p.stories(r.Stories)
	p.dayOffs(r.DayOffs)
	p.edges(r.Edges)
	p.waves(r.Analysis.Waves)
	p.tracks(r.Analysis.Tracks)
	p.criticalPath(r.Analysis.CriticalPath, r.Analysis.Criticality)
	p.rejections(r.Rejections)
}

func (p *Printer) waves(waves []dag.Wave) {
	if len(waves) == 0 {
		return
	}
	fmt.Fprintf(p.Out, "%s\n", p.wrap(bold, "waves:"))
	for _, w := range waves {
		fmt.Fprintf(p.Out, "  %d: %s\n", w.Number, joinIDs(w.NodeIDs))
	}
	fmt.Fprintln(p.Out)
}

// tracks lists the independent-track partition computed over the
// prerequisite graph. Informational only: it never overrides the
// scheduler's single-threaded placement order.
func (p *Printer) tracks(tracks []dag.Track) {
	if len(tracks) == 0 {
		return
	}
	fmt.Fprintf(p.Out, "%s\n", p.wrap(bold, fmt.Sprintf("tracks (%d, could be staffed in parallel):", len(tracks))))
	for _, tr := range tracks {
		fmt.Fprintf(p.Out, "  %d: %s\n", tr.ID, joinIDs(tr.NodeIDs))
	}
	fmt.Fprintln(p.Out)
}

// criticalPath prints the longest prerequisite chain and each of its
// tasks' criticality score, labeled as a hint rather than a placement
// decision.
func (p *Printer) criticalPath(path []string, criticality map[string]float64) {
	if len(path) == 0 {
		return
	}
	fmt.Fprintf(p.Out, "%s\n", p.wrap(bold, "critical-path hints:"))
	for i, id := range path {
		arrow := ""
		if i < len(path)-1 {
			arrow = " ->"
		}
		fmt.Fprintf(p.Out, "  %s (criticality=%.3f)%s\n", id, criticality[id], arrow)
	}
	fmt.Fprintln(p.Out)
}

func (p *Printer) stories(stories []sprint.StoryRow) {
	fmt.Fprintf(p.Out, "%s\n", p.wrap(bold, fmt.Sprintf("stories placed (%d):", len(stories))))
	if len(stories) == 0 {
		fmt.Fprintf(p.Out, "  %s\n\n", p.wrap(dim, "none"))
		return
	}
	for _, s := range stories {
		fmt.Fprintf(p.Out, "  %-10s %-30s %s owner:%-20s %s -> %s  %dpt\n",
			s.ID, truncate(s.Title, 30), p.wrap(dim, s.AreaPath), s.Owner, s.Start, s.End, s.Points)
	}
	fmt.Fprintln(p.Out)
}

func (p *Printer) dayOffs(dayOffs []sprint.DayOffSummary) {
	if len(dayOffs) == 0 {
		return
	}
	fmt.Fprintf(p.Out, "%s\n", p.wrap(bold, "day-offs:"))
	for _, d := range dayOffs {
		fmt.Fprintf(p.Out, "  %-20s %d %s\n", d.Executor, d.Days, pluralS(d.Days, "day"))
	}
	fmt.Fprintln(p.Out)
}

func (p *Printer) edges(edges []sprint.Edge) {
	if len(edges) == 0 {
		return
	}
	fmt.Fprintf(p.Out, "%s\n", p.wrap(bold, "dependencies:"))
	for _, e := range edges {
		fmt.Fprintf(p.Out, "  %s -> %s\n", e.Prerequisite, e.Successor)
	}
	fmt.Fprintln(p.Out)
}

// rejectionOrder fixes a stable display order for rejection reasons
// rather than map iteration order.
var rejectionOrder = []sprint.RejectReason{
	sprint.ReasonUnknownDiscipline,
	sprint.ReasonNoExecutor,
	sprint.ReasonNoEstimate,
	sprint.ReasonMissingDependency,
	sprint.ReasonDependencyCycle,
	sprint.ReasonOutOfWindow,
	sprint.ReasonNoCapacity,
}

func (p *Printer) rejections(byReason map[sprint.RejectReason][]string) {
	total := 0
	for _, ids := range byReason {
		total += len(ids)
	}
	if total == 0 {
		fmt.Fprintf(p.Out, "%s\n", p.wrap(bold+green, "✓ no rejections"))
		return
	}
	fmt.Fprintf(p.Out, "%s\n", p.wrap(bold+red, fmt.Sprintf("✗ rejections (%d):", total)))
	for _, reason := range rejectionOrder {
		ids := byReason[reason]
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(p.Out, "  %s %s\n", p.wrap(yellow, string(reason)+":"), joinIDs(ids))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func pluralS(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func joinIDs(ids []string) string {
	out := ids[0]
	for _, id := range ids[1:] {
		out += ", " + id
	}
	return out
}

// WriteJSON marshals the report with encoding/json and writes it to path.
func WriteJSON(r sprint.Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
