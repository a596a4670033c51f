package sprint

import (
	"github.com/ewerton255/sprintctl/internal/calendar"
	"github.com/ewerton255/sprintctl/internal/capacity"
	"github.com/ewerton255/sprintctl/internal/config"
)

// PipelineInput bundles everything a scheduling run needs once the four
// configuration documents are loaded and the board has been fetched.
type PipelineInput struct {
	SprintID   string
	SprintName string
	Calendar   *calendar.Calendar
	Roster     config.Roster
	DayOffs    []config.DayOff
	DepEdges   []config.DepEdge
	RawItems   []RawItem
}

// RunPipeline runs the full normalize -> dependency-graph -> schedule ->
// aggregate -> assemble sequence and returns the finished report. It
// mirrors the teacher's BuildPlan: a single function gluing together
// already-independent stages so the CLI layer stays thin.
func RunPipeline(in PipelineInput) Report {
	tasks, stories := Normalize(in.RawItems)

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	edges := make([]Edge, 0, len(in.DepEdges))
	for _, e := range in.DepEdges {
		edges = append(edges, Edge{Successor: e.Successor, Prerequisite: e.Prerequisite})
	}
	depGraph, _ := NewDependencyGraph(ids, edges)
	cycleMembers := depGraph.CycleMembers()

	ledger := capacity.NewLedger(in.Calendar, rosterEmails(in.Roster), toCapacityDayOffs(in.DayOffs))
	scheduler := NewScheduler(in.Calendar, ledger, in.Roster, depGraph)
	result := scheduler.Run(tasks, cycleMembers)

	rows := Aggregate(stories, result.Placements)
	analysis, _ := BuildAnalysis(tasks, edges) // informational only; a leftover cycle just yields a zero Analysis

	return AssembleReport(in.SprintID, in.SprintName, rows, result, in.DayOffs, edges, analysis)
}

func rosterEmails(roster config.Roster) []string {
	var out []string
	for _, emails := range roster {
		out = append(out, emails...)
	}
	return out
}

func toCapacityDayOffs(dayOffs []config.DayOff) []capacity.DayOff {
	out := make([]capacity.DayOff, 0, len(dayOffs))
	for _, d := range dayOffs {
		out = append(out, capacity.DayOff{
			Executor: d.Email,
			Date:     calendar.Slot{Date: d.Date},
			Period:   d.Period,
		})
	}
	return out
}
