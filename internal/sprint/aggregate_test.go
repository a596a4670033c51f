package sprint

import (
	"testing"
	"time"

	"github.com/ewerton255/sprintctl/internal/calendar"
)

// Scenario 6: story aggregation.
func TestAggregate_OwnerStartEndPoints(t *testing.T) {
	d1, _ := time.Parse("2006-01-02", "2024-03-18")
	d2, _ := time.Parse("2006-01-02", "2024-03-19")

	stories := []UserStory{{ID: "US1", Title: "story", TaskIDs: []string{"T1", "T2"}}}
	placements := []Placement{
		{TaskID: "T1", Executor: "a@x", Hours: 4, Start: calendar.Slot{Date: d1, Period: calendar.Morning}, End: calendar.Slot{Date: d1, Period: calendar.Afternoon}},
		{TaskID: "T2", Executor: "b@x", Hours: 6, Start: calendar.Slot{Date: d1, Period: calendar.Afternoon}, End: calendar.Slot{Date: d2, Period: calendar.Morning}},
	}

	rows := Aggregate(stories, placements)
	if len(rows) != 1 {
		t.Fatalf("expected 1 story row, got %d", len(rows))
	}
	row := rows[0]
	if row.Owner != "b@x" {
		t.Errorf("owner = %s, want b@x (more hours)", row.Owner)
	}
	if row.Points != 3 {
		t.Errorf("points = %d, want 3 (10h falls in 8 < H <= 16)", row.Points)
	}
	wantStart := calendar.Slot{Date: d1, Period: calendar.Morning}
	wantEnd := calendar.Slot{Date: d2, Period: calendar.Morning}
	if row.Start != wantStart || row.End != wantEnd {
		t.Errorf("start/end = %v/%v, want %v/%v", row.Start, row.End, wantStart, wantEnd)
	}
}

func TestAggregate_OwnerTieBreakByEmail(t *testing.T) {
	d1, _ := time.Parse("2006-01-02", "2024-03-18")
	stories := []UserStory{{ID: "US1", TaskIDs: []string{"T1", "T2"}}}
	slot := calendar.Slot{Date: d1, Period: calendar.Morning}
	placements := []Placement{
		{TaskID: "T1", Executor: "z@x", Hours: 3, Start: slot, End: slot},
		{TaskID: "T2", Executor: "a@x", Hours: 3, Start: slot, End: slot},
	}
	rows := Aggregate(stories, placements)
	if rows[0].Owner != "a@x" {
		t.Errorf("owner = %s, want a@x (lexicographic tie-break)", rows[0].Owner)
	}
}

func TestAggregate_OmitsStoriesWithNoPlacedChildren(t *testing.T) {
	stories := []UserStory{{ID: "US1", TaskIDs: []string{"T1"}}}
	rows := Aggregate(stories, nil)
	if len(rows) != 0 {
		t.Errorf("expected no rows for a story with no placed children, got %v", rows)
	}
}

func TestPointsForHours_Buckets(t *testing.T) {
	cases := []struct {
		hours float64
		want  int
	}{
		{0, 1}, {4, 1}, {4.01, 2}, {8, 2}, {8.01, 3}, {16, 3}, {16.01, 5}, {24, 5}, {24.01, 8}, {40, 8}, {40.01, 13},
	}
	for _, c := range cases {
		if got := pointsForHours(c.hours); got != c.want {
			t.Errorf("pointsForHours(%v) = %d, want %d", c.hours, got, c.want)
		}
	}
}
