package sprint

import "github.com/ewerton255/sprintctl/internal/dag"

// Analysis is the auxiliary, informational-only view of the prerequisite
// graph the Report Assembler attaches alongside the scheduler's flat
// placement and rejection lists (spec §4.4, §4.7). None of these fields
// ever feed back into placement order, which is decided solely by the
// scheduler's test-plan-first-then-ascending-id pass.
type Analysis struct {
	// Waves groups tasks into layered batches whose prerequisites all fall
	// in prior waves.
	Waves []dag.Wave

	// Tracks partitions tasks that share no transitive dependency
	// relationship, so they could in principle be staffed in parallel by
	// independent executors.
	Tracks []dag.Track

	// Criticality scores each task by the length of the longest
	// prerequisite chain it participates in, relative to the longest chain
	// in the graph, surfaced in the report as critical-path hints.
	Criticality map[string]float64

	// CriticalPath is the longest prerequisite chain, the sequence of
	// tasks that structurally bounds minimum total completion time.
	CriticalPath []string
}

// BuildAnalysis runs the dependency-graph analytics over the same edges
// the scheduler already used to diagnose cycles. Closed tasks are
// excluded; an edge that would close a cycle is silently dropped, since
// DependencyGraph.CycleMembers already surfaces cycles as
// dependency-cycle rejections, and a view over the acyclic remainder is
// still useful context for the rest of the graph.
func BuildAnalysis(tasks []Task, edges []Edge) (Analysis, error) {
	d := dag.New()
	for _, t := range tasks {
		if t.State == StateClosed {
			continue
		}
		if err := d.AddNode(t.ID, 0); err != nil {
			return Analysis{}, err
		}
	}
	for _, e := range edges {
		if d.Node(e.Successor) == nil || d.Node(e.Prerequisite) == nil {
			continue
		}
		_ = d.AddEdge(e.Successor, e.Prerequisite) // cycle edges rejected and skipped
	}

	waves, err := d.ComputeWaves()
	if err != nil {
		return Analysis{}, err
	}
	criticality, criticalPath, err := d.ComputeCriticality()
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Waves:        waves,
		Tracks:       d.ComputeTracks(),
		Criticality:  criticality,
		CriticalPath: criticalPath,
	}, nil
}
