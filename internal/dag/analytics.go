package dag

import "sort"

// Track is a maximal set of tasks connected through prerequisite edges,
// direction ignored: tasks in different tracks share no dependency
// relationship at all and could in principle be staffed by independent
// executors without either blocking the other. Purely informational; it
// never feeds the scheduler's placement order.
type Track struct {
	ID      int
	NodeIDs []string // sorted alphabetically
}

// ComputeTracks partitions the DAG into independent tracks by treating
// adjacency and reverse-adjacency as one undirected graph and collecting
// connected components. Tracks are ordered by descending size, ties
// broken by the track's smallest node ID, so output is deterministic
// across calls on the same graph.
func (d *DAG) ComputeTracks() []Track {
	if len(d.nodes) == 0 {
		return nil
	}

	visited := make(map[string]bool, len(d.nodes))
	var tracks []Track

	for _, start := range d.Nodes() {
		if visited[start] {
			continue
		}
		visited[start] = true
		members := []string{start}
		queue := []string{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range []map[string]bool{d.adjacency[cur], d.reverse[cur]} {
				for id := range next {
					if !visited[id] {
						visited[id] = true
						members = append(members, id)
						queue = append(queue, id)
					}
				}
			}
		}
		sort.Strings(members)
		tracks = append(tracks, Track{NodeIDs: members})
	}

	sort.Slice(tracks, func(i, j int) bool {
		if len(tracks[i].NodeIDs) != len(tracks[j].NodeIDs) {
			return len(tracks[i].NodeIDs) > len(tracks[j].NodeIDs)
		}
		return tracks[i].NodeIDs[0] < tracks[j].NodeIDs[0]
	})
	for i := range tracks {
		tracks[i].ID = i
	}
	return tracks
}

// ComputeCriticality scores every task by the length of the longest
// prerequisite chain it participates in, normalized against the longest
// chain in the graph: a task that sits on a longest chain scores 1.0, a
// task that only sits on shorter chains scores proportionally less (an
// isolated task in a graph whose longest chain has n tasks scores 1/n). It also
// returns that single longest chain as the critical path, the sequence
// of tasks that structurally bounds the minimum time to finish every
// task. Returns ErrCycle if the graph contains a cycle.
func (d *DAG) ComputeCriticality() (map[string]float64, []string, error) {
	order, err := d.TopologicalSort()
	if err != nil {
		return nil, nil, err
	}
	if len(order) == 0 {
		return nil, nil, nil
	}

	// depth[id] is the length, in nodes, of the longest chain of
	// prerequisites ending at id, derived in topological order; down[id]
	// is the longest chain of dependents starting at id, derived in
	// reverse topological order. The longest chain through id is depth+down-1.
	depth := make(map[string]int, len(order))
	down := make(map[string]int, len(order))
	pred := make(map[string]string, len(order))
	for _, id := range order {
		depth[id], down[id] = 1, 1
	}
	for _, id := range order {
		for dependent := range d.reverse[id] {
			if candidate := depth[id] + 1; candidate > depth[dependent] {
				depth[dependent] = candidate
				pred[dependent] = id
			}
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		for prereq := range d.adjacency[order[i]] {
			if candidate := down[order[i]] + 1; candidate > down[prereq] {
				down[prereq] = candidate
			}
		}
	}

	deepest, tail := 0, ""
	for _, id := range order {
		if depth[id] > deepest {
			deepest, tail = depth[id], id
		}
	}

	path := make([]string, 0, deepest)
	for cur := tail; cur != ""; cur = pred[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	scores := make(map[string]float64, len(order))
	for _, id := range order {
		scores[id] = float64(depth[id]+down[id]-1) / float64(deepest)
	}
	return scores, path, nil
}
