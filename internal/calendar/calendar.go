// Package calendar enumerates the working half-day slots of a sprint
// window and provides the total order slots are placed and compared in.
// It operates on calendar dates and a period enum only, never on
// timestamps, so no timezone comparison can creep into the scheduler
// (spec §9: "never compare timestamps across timezones").
package calendar

import (
	"fmt"
	"time"
)

// Period is a half-day division of a working day.
type Period int

const (
	Morning Period = iota
	Afternoon
)

// Full is used by day-off documents to mean "both periods of a date"; it
// is not a Period a Slot can carry.
const Full = "full"

func (p Period) String() string {
	if p == Morning {
		return "morning"
	}
	return "afternoon"
}

// HoursPerSlot is the working capacity, in hours, of a single half-day slot.
const HoursPerSlot = 3

// Slot is a single half-day working interval within the sprint.
type Slot struct {
	Date   time.Time // normalized to midnight, no timezone comparisons performed
	Period Period
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s", s.Date.Format("2006-01-02"), s.Period)
}

// Before reports whether s occurs strictly earlier than other in slot
// order: by date first, then morning before afternoon.
func (s Slot) Before(other Slot) bool {
	if !s.Date.Equal(other.Date) {
		return s.Date.Before(other.Date)
	}
	return s.Period < other.Period
}

// After reports whether s occurs strictly later than other in slot order.
func (s Slot) After(other Slot) bool {
	return other.Before(s)
}

// Equal reports whether s and other denote the same date and period.
func (s Slot) Equal(other Slot) bool {
	return s.Date.Equal(other.Date) && s.Period == other.Period
}

// Compare returns -1, 0, or 1 as s is before, equal to, or after other.
func (s Slot) Compare(other Slot) int {
	switch {
	case s.Before(other):
		return -1
	case s.Equal(other):
		return 0
	default:
		return 1
	}
}

// Calendar enumerates the ordered sequence of working half-day slots in
// [start, end], excluding Saturdays and Sundays.
type Calendar struct {
	start, end time.Time
	slots      []Slot
}

// New builds a Calendar for the inclusive [start, end] window. Both dates
// are normalized to midnight UTC for date-only comparison; callers provide
// the sprint timezone only for display elsewhere (spec §9).
func New(start, end time.Time) (*Calendar, error) {
	start = normalize(start)
	end = normalize(end)
	if end.Before(start) {
		return nil, fmt.Errorf("calendar: end date %s before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	var slots []Slot
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if isWeekend(d) {
			continue
		}
		slots = append(slots, Slot{Date: d, Period: Morning}, Slot{Date: d, Period: Afternoon})
	}

	return &Calendar{start: start, end: end, slots: slots}, nil
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Slots returns the full ordered sequence of working slots in the window.
func (c *Calendar) Slots() []Slot {
	return c.slots
}

// Start returns the first working slot (sprint start, morning), or the
// start date's morning slot if the window contains no working days.
func (c *Calendar) Start() Slot {
	if len(c.slots) == 0 {
		return Slot{Date: c.start, Period: Morning}
	}
	return c.slots[0]
}

// End returns the last working slot (sprint end, or its last working day).
func (c *Calendar) End() Slot {
	if len(c.slots) == 0 {
		return Slot{Date: c.end, Period: Afternoon}
	}
	return c.slots[len(c.slots)-1]
}

// InWindow reports whether slot falls within [Start, End] and on a
// recognized working day (i.e. appears in Slots).
func (c *Calendar) InWindow(slot Slot) bool {
	for _, s := range c.slots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}

// Next returns the working slot immediately after slot, and false if slot
// is the last slot in the window.
func (c *Calendar) Next(slot Slot) (Slot, bool) {
	for i, s := range c.slots {
		if s.Equal(slot) {
			if i+1 < len(c.slots) {
				return c.slots[i+1], true
			}
			return Slot{}, false
		}
	}
	return Slot{}, false
}

// IsWorkingDay reports whether d (any time-of-day) falls on a weekday
// within the calendar's window.
func (c *Calendar) IsWorkingDay(d time.Time) bool {
	d = normalize(d)
	if d.Before(c.start) || d.After(c.end) {
		return false
	}
	return !isWeekend(d)
}
