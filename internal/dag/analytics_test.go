package dag

import "testing"

// buildSprintDAG wires up a small prerequisite graph from a compact edge
// list: each pair is (successor, prerequisite), successor depends on
// prerequisite. Every task gets priority 0 unless the test needs
// otherwise.
func buildSprintDAG(t *testing.T, ids []string, edges [][2]string) *DAG {
	t.Helper()
	d := New()
	for _, id := range ids {
		if err := d.AddNode(id, 0); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := d.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%q, %q): %v", e[0], e[1], err)
		}
	}
	return d
}

func TestComputeTracks_EmptyDAG(t *testing.T) {
	t.Parallel()
	d := New()
	if tracks := d.ComputeTracks(); tracks != nil {
		t.Errorf("ComputeTracks() = %v, want nil", tracks)
	}
}

func TestComputeTracks_SingleConnectedGraph(t *testing.T) {
	t.Parallel()
	// build-api -> write-tests -> deploy
	d := buildSprintDAG(t, []string{"deploy", "write-tests", "build-api"}, [][2]string{
		{"write-tests", "deploy"},
		{"build-api", "write-tests"},
	})
	tracks := d.ComputeTracks()
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1: %+v", len(tracks), tracks)
	}
	if len(tracks[0].NodeIDs) != 3 {
		t.Errorf("track has %d nodes, want 3: %v", len(tracks[0].NodeIDs), tracks[0].NodeIDs)
	}
}

func TestComputeTracks_IndependentChainsFormSeparateTracks(t *testing.T) {
	t.Parallel()
	// backend-fix -> backend-migration (one track), frontend-polish alone (another).
	d := buildSprintDAG(t,
		[]string{"backend-fix", "backend-migration", "frontend-polish"},
		[][2]string{{"backend-fix", "backend-migration"}},
	)
	tracks := d.ComputeTracks()
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2: %+v", len(tracks), tracks)
	}
	if len(tracks[0].NodeIDs) != 2 {
		t.Errorf("largest track has %d nodes, want 2 (sorted descending by size first)", len(tracks[0].NodeIDs))
	}
	if len(tracks[1].NodeIDs) != 1 || tracks[1].NodeIDs[0] != "frontend-polish" {
		t.Errorf("second track = %+v, want [frontend-polish]", tracks[1].NodeIDs)
	}
}

func TestComputeTracks_SharedPrerequisiteJoinsFanOutIntoOneTrack(t *testing.T) {
	t.Parallel()
	// Two otherwise-unrelated successors both depend on the same
	// prerequisite, so they belong to one track, not two.
	d := buildSprintDAG(t,
		[]string{"shared-schema", "checkout-ui", "receipts-ui"},
		[][2]string{
			{"checkout-ui", "shared-schema"},
			{"receipts-ui", "shared-schema"},
		},
	)
	tracks := d.ComputeTracks()
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1: %+v", len(tracks), tracks)
	}
}

func TestComputeTracks_StableIDsAndOrdering(t *testing.T) {
	t.Parallel()
	d := buildSprintDAG(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}})
	tracks := d.ComputeTracks()
	if len(tracks) != 3 {
		t.Fatalf("got %d tracks, want 3", len(tracks))
	}
	for i, tr := range tracks {
		if tr.ID != i {
			t.Errorf("tracks[%d].ID = %d, want %d", i, tr.ID, i)
		}
	}
	// Track sizes are {2, 1, 1}; among the two singletons, "c" sorts
	// before "d" alphabetically.
	if len(tracks[0].NodeIDs) != 2 {
		t.Errorf("tracks[0] = %+v, want the size-2 track first", tracks[0])
	}
	if tracks[1].NodeIDs[0] != "c" || tracks[2].NodeIDs[0] != "d" {
		t.Errorf("singleton tracks = %v, %v, want c before d", tracks[1].NodeIDs, tracks[2].NodeIDs)
	}
}

func TestComputeCriticality_EmptyDAG(t *testing.T) {
	t.Parallel()
	d := New()
	scores, path, err := d.ComputeCriticality()
	if err != nil {
		t.Fatalf("ComputeCriticality: %v", err)
	}
	if scores != nil || path != nil {
		t.Errorf("got scores=%v path=%v, want both nil", scores, path)
	}
}

func TestComputeCriticality_LinearChain(t *testing.T) {
	t.Parallel()
	// design -> build -> test -> release (release depends on test, ...).
	d := buildSprintDAG(t, []string{"design", "build", "test", "release"}, [][2]string{
		{"build", "design"},
		{"test", "build"},
		{"release", "test"},
	})
	scores, path, err := d.ComputeCriticality()
	if err != nil {
		t.Fatalf("ComputeCriticality: %v", err)
	}
	if len(path) != 4 {
		t.Fatalf("critical path length = %d, want 4: %v", len(path), path)
	}
	if path[0] != "design" || path[3] != "release" {
		t.Errorf("path = %v, want to start at design and end at release", path)
	}
	if scores["design"] != 1.0 {
		t.Errorf("design criticality = %f, want 1.0 (it sits on the only chain)", scores["design"])
	}
	if scores["release"] != 1.0 {
		t.Errorf("release criticality = %f, want 1.0", scores["release"])
	}
}

func TestComputeCriticality_SiblingPrerequisitesScoreEqually(t *testing.T) {
	t.Parallel()
	// release depends on test, which depends on both build and a short
	// detour "docs" that nothing else depends on.
	d := buildSprintDAG(t, []string{"build", "docs", "test", "release"}, [][2]string{
		{"test", "build"},
		{"test", "docs"},
		{"release", "test"},
	})
	scores, path, err := d.ComputeCriticality()
	if err != nil {
		t.Fatalf("ComputeCriticality: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("critical path length = %d, want 3: %v", len(path), path)
	}
	if scores["docs"] != scores["build"] {
		t.Errorf("docs criticality %f should equal build's %f; both feed test but neither sits on a longer chain on its own", scores["docs"], scores["build"])
	}
}

func TestComputeCriticality_DiamondTakesLongestSideOnTie(t *testing.T) {
	t.Parallel()
	d := buildSprintDAG(t, []string{"spec", "backend", "frontend", "ship"}, [][2]string{
		{"backend", "spec"},
		{"frontend", "spec"},
		{"ship", "backend"},
		{"ship", "frontend"},
	})
	scores, path, err := d.ComputeCriticality()
	if err != nil {
		t.Fatalf("ComputeCriticality: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("critical path length = %d, want 3 (spec -> one side -> ship): %v", len(path), path)
	}
	if scores["spec"] != 1.0 || scores["ship"] != 1.0 {
		t.Errorf("spec and ship both sit on the critical path, want score 1.0 each, got spec=%f ship=%f", scores["spec"], scores["ship"])
	}
}

func TestComputeCriticality_CycleReturnsErrCycle(t *testing.T) {
	t.Parallel()
	d := New()
	_ = d.AddNode("a", 0)
	_ = d.AddNode("b", 0)
	// Force a cycle, bypassing AddEdge's own check.
	d.adjacency["a"]["b"] = true
	d.reverse["b"]["a"] = true
	d.adjacency["b"]["a"] = true
	d.reverse["a"]["b"] = true

	if _, _, err := d.ComputeCriticality(); err == nil {
		t.Fatal("expected an error for a cyclic graph")
	}
}
