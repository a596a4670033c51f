package sprint

import (
	"sort"

	"github.com/ewerton255/sprintctl/internal/calendar"
	"github.com/ewerton255/sprintctl/internal/capacity"
	"github.com/ewerton255/sprintctl/internal/config"
	"github.com/ewerton255/sprintctl/internal/discipline"
)

// Scheduler is the single-threaded scheduler core. It owns the Capacity
// Ledger exclusively for the duration of its pass; nothing else mutates
// it concurrently (spec §5).
type Scheduler struct {
	cal      *calendar.Calendar
	ledger   *capacity.Ledger
	roster   config.Roster
	depGraph *DependencyGraph

	placements map[string]Placement
	rejections map[string]Rejection
}

// NewScheduler builds a Scheduler over the given calendar, executor
// roster, and capacity ledger. The ledger is expected to already be
// initialized from the calendar and day-offs (capacity.NewLedger).
func NewScheduler(cal *calendar.Calendar, ledger *capacity.Ledger, roster config.Roster, depGraph *DependencyGraph) *Scheduler {
	return &Scheduler{
		cal:        cal,
		ledger:     ledger,
		roster:     roster,
		depGraph:   depGraph,
		placements: make(map[string]Placement),
		rejections: make(map[string]Rejection),
	}
}

// Result is the outcome of a full scheduling pass.
type Result struct {
	Placements []Placement
	Rejections []Rejection
}

// Run schedules every non-closed task in tasks. Closed tasks may still be
// present (so prerequisite lookups can see them) but are never placed or
// rejected (spec invariant 5); cycleMembers is the set of task IDs already
// diagnosed as participating in a dependency cycle, rejected up front with
// dependency-cycle before the priority list is
// built.
func (s *Scheduler) Run(tasks []Task, cycleMembers map[string]bool) Result {
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	for id := range cycleMembers {
		if _, ok := byID[id]; ok {
			s.rejections[id] = Rejection{TaskID: id, Reason: ReasonDependencyCycle}
		}
	}

	order := priorityOrder(tasks, cycleMembers)
	for _, t := range order {
		s.schedule(t, byID)
	}

	return s.result()
}

// priorityOrder builds the single deterministic priority list: test-plan
// tasks (qa, is-test-plan) first in ascending task-id, then all remaining
// non-cycle tasks in ascending task-id (spec §4.5).
func priorityOrder(tasks []Task, cycleMembers map[string]bool) []Task {
	var testPlan, rest []Task
	for _, t := range tasks {
		if cycleMembers[t.ID] || t.State == StateClosed {
			continue
		}
		if t.Discipline == discipline.QA && t.IsTestPlan {
			testPlan = append(testPlan, t)
		} else {
			rest = append(rest, t)
		}
	}
	sort.Slice(testPlan, func(i, j int) bool { return testPlan[i].ID < testPlan[j].ID })
	sort.Slice(rest, func(i, j int) bool { return rest[i].ID < rest[j].ID })
	return append(testPlan, rest...)
}

// schedule runs the §4.5 check order for a single task: the step-1
// pre-checks (executor assigned, discipline known, executor's discipline
// matches the task's, estimate present) before the step-2 prerequisite
// evaluation, so the first applicable reason wins (spec §7).
func (s *Scheduler) schedule(t Task, byID map[string]Task) {
	if t.Assignee == "" {
		s.rejections[t.ID] = Rejection{TaskID: t.ID, Reason: ReasonNoExecutor}
		return
	}
	if t.Discipline == discipline.Unknown {
		s.rejections[t.ID] = Rejection{TaskID: t.ID, Reason: ReasonUnknownDiscipline}
		return
	}
	execDisc, found := s.roster.DisciplineOf(t.Assignee)
	if !found || execDisc != t.Discipline {
		s.rejections[t.ID] = Rejection{TaskID: t.ID, Reason: ReasonNoExecutor}
		return
	}
	hours := t.EstimateHours
	if !t.HasEstimate {
		if !t.IsTestPlan {
			s.rejections[t.ID] = Rejection{TaskID: t.ID, Reason: ReasonNoEstimate}
			return
		}
		hours = 0
	}

	if reason, missing := s.unmetPrerequisite(t, byID); missing {
		s.rejections[t.ID] = Rejection{TaskID: t.ID, Reason: reason}
		return
	}

	t0, ok := s.earliestStart(t, byID)
	if !ok {
		s.rejections[t.ID] = Rejection{TaskID: t.ID, Reason: ReasonOutOfWindow}
		return
	}

	s.place(t, hours, t0)
}

// unmetPrerequisite reports whether t has a non-closed prerequisite that
// is itself rejected, or one that has not yet been decided in this pass
// (and therefore can never be satisfied within a single forward sweep).
// Either case rejects t with missing-dependency (spec §4.5 edge cases).
func (s *Scheduler) unmetPrerequisite(t Task, byID map[string]Task) (RejectReason, bool) {
	for _, pid := range s.depGraph.Prerequisites(t.ID) {
		p, ok := byID[pid]
		if !ok || p.State == StateClosed {
			continue // unknown/dangling already dropped at graph build; closed is satisfied at sprint start
		}
		if _, rejected := s.rejections[pid]; rejected {
			return ReasonMissingDependency, true
		}
		if _, placed := s.placements[pid]; !placed {
			return ReasonMissingDependency, true
		}
	}
	return "", false
}

// earliestStart returns the smallest slot at which every non-closed
// prerequisite of t is satisfied, or the sprint's first slot if t has
// none. ok is false if that slot falls outside the calendar window.
func (s *Scheduler) earliestStart(t Task, byID map[string]Task) (calendar.Slot, bool) {
	t0 := s.cal.Start()
	for _, pid := range s.depGraph.Prerequisites(t.ID) {
		p, ok := byID[pid]
		if !ok || p.State == StateClosed {
			continue
		}
		placement := s.placements[pid]
		if placement.End.After(t0) {
			t0 = placement.End
		}
	}
	if t0.After(s.cal.End()) {
		return calendar.Slot{}, false
	}
	return t0, true
}

// place runs the placement scan from t0, greedily consuming hours from
// the executor's ledger in slot order, and commits the result.
func (s *Scheduler) place(t Task, hours float64, t0 calendar.Slot) {
	if hours == 0 {
		s.placements[t.ID] = Placement{TaskID: t.ID, Executor: t.Assignee, Start: t0, End: t0, Hours: 0}
		return
	}

	// Reject before consuming anything, so a task that cannot fit leaves
	// the ledger untouched.
	var fits float64
	for sl, ok := t0, true; ok; sl, ok = s.cal.Next(sl) {
		fits += s.ledger.Remaining(t.Assignee, sl)
	}
	if fits < hours {
		s.rejections[t.ID] = Rejection{TaskID: t.ID, Reason: ReasonNoCapacity}
		return
	}

	remaining := hours
	var start *calendar.Slot
	var last calendar.Slot
	slot := t0
	for {
		avail := s.ledger.Remaining(t.Assignee, slot)
		if avail > 0 {
			take := avail
			if take > remaining {
				take = remaining
			}
			if err := s.ledger.Consume(t.Assignee, slot, take); err == nil {
				if start == nil {
					start = &slot
				}
				last = slot
				remaining -= take
			}
		}
		if remaining <= 0 {
			break
		}
		next, ok := s.cal.Next(slot)
		if !ok {
			s.rejections[t.ID] = Rejection{TaskID: t.ID, Reason: ReasonNoCapacity}
			return
		}
		slot = next
	}

	s.placements[t.ID] = Placement{TaskID: t.ID, Executor: t.Assignee, Start: *start, End: last, Hours: hours}
}

func (s *Scheduler) result() Result {
	placements := make([]Placement, 0, len(s.placements))
	for _, p := range s.placements {
		placements = append(placements, p)
	}
	sort.Slice(placements, func(i, j int) bool { return placements[i].TaskID < placements[j].TaskID })

	rejections := make([]Rejection, 0, len(s.rejections))
	for _, r := range s.rejections {
		rejections = append(rejections, r)
	}
	sort.Slice(rejections, func(i, j int) bool { return rejections[i].TaskID < rejections[j].TaskID })

	return Result{Placements: placements, Rejections: rejections}
}
