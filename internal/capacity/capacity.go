// Package capacity tracks each executor's remaining working hours per
// half-day slot across a sprint window. The Ledger is the scheduler's only
// mutable structure: it is built once from the Calendar and the declared
// day-offs, then monotonically drained as the Scheduler Core commits
// placements (spec §4.2, §5 — no internal locking, single owner).
package capacity

import (
	"fmt"

	"github.com/ewerton255/sprintctl/internal/calendar"
)

// ErrOverdraw is returned by Consume when hours exceeds the slot's
// remaining capacity.
type ErrOverdraw struct {
	Executor string
	Slot     calendar.Slot
	Want     float64
	Have     float64
}

func (e *ErrOverdraw) Error() string {
	return fmt.Sprintf("capacity: %s has %.2fh remaining at %s, cannot consume %.2fh", e.Executor, e.Have, e.Slot, e.Want)
}

type key struct {
	executor string
	slot     calendar.Slot
}

// Ledger holds remaining hours per (executor, slot). It is not safe for
// concurrent use; the scheduler drives it sequentially.
type Ledger struct {
	cal       *calendar.Calendar
	remaining map[key]float64
}

// DayOff mirrors config.DayOff's shape without importing the config
// package, keeping capacity free of any document-loading dependency.
type DayOff struct {
	Executor string
	Date     calendar.Slot // only Date is read; the slot's Period is ignored
	Period   string        // "full", "morning", or "afternoon"
}

// NewLedger builds a Ledger covering every slot in cal for each of the
// given executor emails, at full capacity (calendar.HoursPerSlot per
// slot), then applies dayOffs. Day-offs outside the calendar window are
// silently ignored (spec §4.2).
func NewLedger(cal *calendar.Calendar, executors []string, dayOffs []DayOff) *Ledger {
	l := &Ledger{
		cal:       cal,
		remaining: make(map[key]float64, len(executors)*len(cal.Slots())),
	}
	for _, e := range executors {
		for _, s := range cal.Slots() {
			l.remaining[key{e, s}] = calendar.HoursPerSlot
		}
	}
	for _, d := range dayOffs {
		l.applyDayOff(d)
	}
	return l
}

func (l *Ledger) applyDayOff(d DayOff) {
	morning := calendar.Slot{Date: d.Date.Date, Period: calendar.Morning}
	afternoon := calendar.Slot{Date: d.Date.Date, Period: calendar.Afternoon}
	switch d.Period {
	case "full":
		l.zero(d.Executor, morning)
		l.zero(d.Executor, afternoon)
	case "morning":
		l.zero(d.Executor, morning)
	case "afternoon":
		l.zero(d.Executor, afternoon)
	}
}

func (l *Ledger) zero(executor string, slot calendar.Slot) {
	k := key{executor, slot}
	if _, ok := l.remaining[k]; ok {
		l.remaining[k] = 0
	}
}

// Remaining returns the hours left for executor at slot. An (executor,
// slot) pair never registered (unknown executor, or slot outside the
// window) reports zero.
func (l *Ledger) Remaining(executor string, slot calendar.Slot) float64 {
	return l.remaining[key{executor, slot}]
}

// Consume debits hours from executor's remaining capacity at slot,
// returning ErrOverdraw if hours exceeds what remains.
func (l *Ledger) Consume(executor string, slot calendar.Slot, hours float64) error {
	k := key{executor, slot}
	have := l.remaining[k]
	if hours > have {
		return &ErrOverdraw{Executor: executor, Slot: slot, Want: hours, Have: have}
	}
	l.remaining[k] = have - hours
	return nil
}

// TotalRemaining sums executor's remaining hours across every slot in the
// window.
func (l *Ledger) TotalRemaining(executor string) float64 {
	var total float64
	for _, s := range l.cal.Slots() {
		total += l.remaining[key{executor, s}]
	}
	return total
}
