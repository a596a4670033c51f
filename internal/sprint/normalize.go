package sprint

import (
	"github.com/ewerton255/sprintctl/internal/discipline"
)

// RawItem is the upstream work-tracker record the Normalizer consumes: at
// least a stable id, title, state, original estimate, assignee, parent
// story id, and area path (spec §6). HasEstimate distinguishes "0 hours"
// from "no estimate field at all", since only the latter triggers
// no-estimate for non-test-plan tasks.
type RawItem struct {
	ID               string
	Title            string
	State            string
	EstimateHours    float64
	HasEstimate      bool
	Assignee         string
	ParentStoryID    string
	ParentStoryTitle string
	AreaPath         string
}

// Normalize converts raw upstream items into Tasks and UserStories. Items
// whose title matches no discipline tag still produce a Task (discipline
// Unknown); the scheduler later rejects those with unknown-discipline,
// since rejection reasons belong to the scheduling pass, not normalization.
func Normalize(items []RawItem) ([]Task, []UserStory) {
	tasks := make([]Task, 0, len(items))
	stories := make(map[string]*UserStory)
	var order []string

	for _, it := range items {
		disc, isTestPlan := discipline.Classify(it.Title)
		tasks = append(tasks, Task{
			ID:            it.ID,
			Title:         it.Title,
			Discipline:    disc,
			IsTestPlan:    isTestPlan,
			EstimateHours: it.EstimateHours,
			HasEstimate:   it.HasEstimate,
			Assignee:      it.Assignee,
			UserStoryID:   it.ParentStoryID,
			State:         normalizeState(it.State),
		})

		if it.ParentStoryID == "" {
			continue
		}
		s, ok := stories[it.ParentStoryID]
		if !ok {
			s = &UserStory{ID: it.ParentStoryID, Title: it.ParentStoryTitle, AreaPath: it.AreaPath}
			stories[it.ParentStoryID] = s
			order = append(order, it.ParentStoryID)
		}
		s.TaskIDs = append(s.TaskIDs, it.ID)
	}

	out := make([]UserStory, 0, len(order))
	for _, id := range order {
		out = append(out, *stories[id])
	}
	return tasks, out
}

// normalizeState maps any upstream state other than new/active/closed to
// active, per spec §6.
func normalizeState(raw string) State {
	switch State(raw) {
	case StateNew, StateActive, StateClosed:
		return State(raw)
	default:
		return StateActive
	}
}
