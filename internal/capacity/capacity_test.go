package capacity

import (
	"errors"
	"testing"
	"time"

	"github.com/ewerton255/sprintctl/internal/calendar"
)

func mustCal(t *testing.T, start, end string) *calendar.Calendar {
	t.Helper()
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatalf("parsing start: %v", err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		t.Fatalf("parsing end: %v", err)
	}
	c, err := calendar.New(s, e)
	if err != nil {
		t.Fatalf("calendar.New: %v", err)
	}
	return c
}

func TestNewLedger_FullCapacityByDefault(t *testing.T) {
	cal := mustCal(t, "2024-03-18", "2024-03-18")
	l := NewLedger(cal, []string{"a@x"}, nil)

	morning := calendar.Slot{Date: cal.Start().Date, Period: calendar.Morning}
	if got := l.Remaining("a@x", morning); got != calendar.HoursPerSlot {
		t.Errorf("Remaining = %v, want %v", got, calendar.HoursPerSlot)
	}
	if got := l.TotalRemaining("a@x"); got != 2*calendar.HoursPerSlot {
		t.Errorf("TotalRemaining = %v, want %v", got, 2*calendar.HoursPerSlot)
	}
}

func TestNewLedger_FullDayOffZeroesBothSlots(t *testing.T) {
	cal := mustCal(t, "2024-03-18", "2024-03-18")
	dayOff := DayOff{Executor: "a@x", Date: calendar.Slot{Date: cal.Start().Date}, Period: "full"}
	l := NewLedger(cal, []string{"a@x"}, []DayOff{dayOff})

	if got := l.TotalRemaining("a@x"); got != 0 {
		t.Errorf("TotalRemaining after full dayoff = %v, want 0", got)
	}
}

func TestNewLedger_HalfDayOff(t *testing.T) {
	cal := mustCal(t, "2024-03-18", "2024-03-18")
	dayOff := DayOff{Executor: "a@x", Date: calendar.Slot{Date: cal.Start().Date}, Period: "morning"}
	l := NewLedger(cal, []string{"a@x"}, []DayOff{dayOff})

	morning := calendar.Slot{Date: cal.Start().Date, Period: calendar.Morning}
	afternoon := calendar.Slot{Date: cal.Start().Date, Period: calendar.Afternoon}
	if got := l.Remaining("a@x", morning); got != 0 {
		t.Errorf("morning remaining = %v, want 0", got)
	}
	if got := l.Remaining("a@x", afternoon); got != calendar.HoursPerSlot {
		t.Errorf("afternoon remaining = %v, want %v", got, calendar.HoursPerSlot)
	}
}

func TestConsume_OverdrawFails(t *testing.T) {
	cal := mustCal(t, "2024-03-18", "2024-03-18")
	l := NewLedger(cal, []string{"a@x"}, nil)
	morning := calendar.Slot{Date: cal.Start().Date, Period: calendar.Morning}

	if err := l.Consume("a@x", morning, calendar.HoursPerSlot); err != nil {
		t.Fatalf("Consume within capacity failed: %v", err)
	}
	err := l.Consume("a@x", morning, 1)
	if err == nil {
		t.Fatal("expected overdraw error")
	}
	var overdraw *ErrOverdraw
	if !errors.As(err, &overdraw) {
		t.Errorf("expected *ErrOverdraw, got %T", err)
	}
}

func TestDayOffOutsideWindowIgnored(t *testing.T) {
	cal := mustCal(t, "2024-03-18", "2024-03-18")
	outside, _ := time.Parse("2006-01-02", "2024-03-25")
	dayOff := DayOff{Executor: "a@x", Date: calendar.Slot{Date: outside}, Period: "full"}
	l := NewLedger(cal, []string{"a@x"}, []DayOff{dayOff})

	if got := l.TotalRemaining("a@x"); got != 2*calendar.HoursPerSlot {
		t.Errorf("TotalRemaining = %v, want %v (dayoff outside window should be ignored)", got, 2*calendar.HoursPerSlot)
	}
}
