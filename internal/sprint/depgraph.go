package sprint

import "sort"

// color marks a node's state during iterative cycle detection.
type color int

const (
	white color = iota // unvisited
	gray               // on the current DFS stack
	black              // fully explored
)

// DependencyGraph holds prerequisite edges as an adjacency mapping from a
// successor task to the set of its prerequisite task IDs. It is built
// fresh per scheduling run from the raw dependency edges plus the known
// task set, resolving dangling references and diagnosing cycles before
// the Scheduler Core consults it.
type DependencyGraph struct {
	prereqsOf map[string]map[string]bool // successor -> prerequisite set
	knownIDs  map[string]bool
}

// NewDependencyGraph resolves raw (successor, prerequisite) edges against
// the known task IDs. Edges referencing an id outside knownIDs are
// dropped and returned separately as dangling (spec §4.4 step 1); callers
// should log them as warnings.
func NewDependencyGraph(knownIDs []string, edges []Edge) (*DependencyGraph, []Edge) {
	known := make(map[string]bool, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = true
	}

	g := &DependencyGraph{
		prereqsOf: make(map[string]map[string]bool, len(known)),
		knownIDs:  known,
	}
	for id := range known {
		g.prereqsOf[id] = make(map[string]bool)
	}

	var dangling []Edge
	for _, e := range edges {
		if !known[e.Successor] || !known[e.Prerequisite] {
			dangling = append(dangling, e)
			continue
		}
		g.prereqsOf[e.Successor][e.Prerequisite] = true
	}
	return g, dangling
}

// Edge is a raw (successor depends on prerequisite) dependency edge, prior
// to resolution against the known task set.
type Edge struct {
	Successor    string
	Prerequisite string
}

// Prerequisites returns the prerequisite task IDs of id, sorted for
// deterministic iteration.
func (g *DependencyGraph) Prerequisites(id string) []string {
	set := g.prereqsOf[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// CycleMembers runs an iterative, colored-node DFS over every node and
// returns the set of task IDs that participate in a cycle, including
// self-loops (spec §4.4 step 2, §9: "iterative, with colored-node
// states" rather than recursion-driven).
func (g *DependencyGraph) CycleMembers() map[string]bool {
	colors := make(map[string]color, len(g.prereqsOf))
	inCycle := make(map[string]bool)

	ids := make([]string, 0, len(g.prereqsOf))
	for id := range g.prereqsOf {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, start := range ids {
		if colors[start] != white {
			continue
		}
		g.visit(start, colors, inCycle)
	}
	return inCycle
}

// stackFrame tracks a node's position in the iterative DFS so back-edges
// can be traced to every node on the current path, not just the two
// endpoints of the edge that closed the cycle.
type stackFrame struct {
	id      string
	prereqs []string
	nextIdx int
}

func (g *DependencyGraph) visit(start string, colors map[string]color, inCycle map[string]bool) {
	stack := []*stackFrame{{id: start, prereqs: g.Prerequisites(start)}}
	colors[start] = gray

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.nextIdx >= len(top.prereqs) {
			colors[top.id] = black
			stack = stack[:len(stack)-1]
			continue
		}
		next := top.prereqs[top.nextIdx]
		top.nextIdx++

		switch colors[next] {
		case white:
			colors[next] = gray
			stack = append(stack, &stackFrame{id: next, prereqs: g.Prerequisites(next)})
		case gray:
			// Back-edge found: every node currently on the stack from next's
			// first occurrence onward is part of the cycle.
			markCycle(stack, next, inCycle)
		case black:
			// Already fully explored via another path; not a new cycle.
		}
	}
}

func markCycle(stack []*stackFrame, from string, inCycle map[string]bool) {
	start := -1
	for i, f := range stack {
		if f.id == from {
			start = i
			break
		}
	}
	if start == -1 {
		return
	}
	for _, f := range stack[start:] {
		inCycle[f.id] = true
	}
}
