package sprint

import (
	"sort"

	"github.com/ewerton255/sprintctl/internal/calendar"
)

// StoryRow is the aggregated view of a single user story over its placed
// child tasks.
type StoryRow struct {
	ID       string
	Title    string
	AreaPath string
	Owner    string
	Start    calendar.Slot
	End      calendar.Slot
	Points   int
}

// pointBuckets maps an upper hour bound to its story-point value, checked
// in ascending order (spec §4.6).
var pointBuckets = []struct {
	maxHours float64
	points   int
}{
	{4, 1},
	{8, 2},
	{16, 3},
	{24, 5},
	{40, 8},
}

func pointsForHours(h float64) int {
	for _, b := range pointBuckets {
		if h <= b.maxHours {
			return b.points
		}
	}
	return 13
}

// Aggregate derives one StoryRow per user story that has at least one
// placed child task. Stories with no placed children are omitted; their
// child rejections still surface separately in the rejection list.
func Aggregate(stories []UserStory, placements []Placement) []StoryRow {
	placedByTask := make(map[string]Placement, len(placements))
	for _, p := range placements {
		placedByTask[p.TaskID] = p
	}

	var rows []StoryRow
	for _, story := range stories {
		var childPlacements []Placement
		for _, tid := range story.TaskIDs {
			if p, ok := placedByTask[tid]; ok {
				childPlacements = append(childPlacements, p)
			}
		}
		if len(childPlacements) == 0 {
			continue
		}
		rows = append(rows, aggregateOne(story, childPlacements))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func aggregateOne(story UserStory, placements []Placement) StoryRow {
	hoursByExecutor := make(map[string]float64)
	var totalHours float64
	start, end := placements[0].Start, placements[0].End

	for _, p := range placements {
		hoursByExecutor[p.Executor] += p.Hours
		totalHours += p.Hours
		if p.Start.Before(start) {
			start = p.Start
		}
		if p.End.After(end) {
			end = p.End
		}
	}

	owner := ownerOf(hoursByExecutor)
	return StoryRow{
		ID:       story.ID,
		Title:    story.Title,
		AreaPath: story.AreaPath,
		Owner:    owner,
		Start:    start,
		End:      end,
		Points:   pointsForHours(totalHours),
	}
}

// ownerOf returns the executor with the greatest summed hours, ties
// broken by lexicographic email (spec §4.6).
func ownerOf(hoursByExecutor map[string]float64) string {
	var best string
	var bestHours float64
	first := true
	for email, hours := range hoursByExecutor {
		if first || hours > bestHours || (hours == bestHours && email < best) {
			best, bestHours, first = email, hours, false
		}
	}
	return best
}
