package session

import (
	"testing"
	"time"
)

func newYorkClock(t *testing.T) (*Clock, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return New(loc, 9*time.Hour+30*time.Minute, 16*time.Hour), loc
}

// go test -v --run TestWeekendClosed
func TestWeekendClosed(t *testing.T) {
	clock, loc := newYorkClock(t)

	for year := 2023; year <= 2026; year++ {
		for day := 1; day <= 31; day++ {
			noon := time.Date(year, time.January, day, 12, 0, 0, 0, loc)
			wd := noon.Weekday()
			if wd != time.Saturday && wd != time.Sunday {
				continue
			}
			if clock.IsOpen(noon) {
				t.Errorf("expected closed on %s (%s)", noon.Format("2006-01-02"), wd)
			}
		}
	}
}

// go test -v --run TestOpenCloseBoundaries
func TestOpenCloseBoundaries(t *testing.T) {
	clock, loc := newYorkClock(t)

	// Tuesday 2025-03-04
	cases := []struct {
		at   time.Time
		open bool
	}{
		{time.Date(2025, 3, 4, 9, 29, 59, 0, loc), false},
		{time.Date(2025, 3, 4, 9, 30, 0, 0, loc), true}, // open is inclusive
		{time.Date(2025, 3, 4, 15, 59, 59, 0, loc), true},
		{time.Date(2025, 3, 4, 16, 0, 0, 0, loc), false}, // close is exclusive
	}

	for _, c := range cases {
		if got := clock.IsOpen(c.at); got != c.open {
			t.Errorf("IsOpen(%s) = %t, want %t", c.at.Format(time.RFC3339), got, c.open)
		}
	}
}

// go test -v --run TestCallerZoneIrrelevant
func TestCallerZoneIrrelevant(t *testing.T) {
	clock, _ := newYorkClock(t)

	// Wednesday 10:00 New York expressed in UTC (15:00 UTC during EST)
	at := time.Date(2025, 1, 8, 15, 0, 0, 0, time.UTC)
	if !clock.IsOpen(at) {
		t.Errorf("expected open at %s", at.Format(time.RFC3339))
	}

	// Same wall-clock hour in UTC is before the New York open
	early := time.Date(2025, 1, 8, 9, 45, 0, 0, time.UTC)
	if clock.IsOpen(early) {
		t.Errorf("expected closed at %s (04:45 New York)", early.Format(time.RFC3339))
	}
}

// go test -v --run TestNextBoundarySameDay
func TestNextBoundarySameDay(t *testing.T) {
	clock, loc := newYorkClock(t)

	// Before open on a Wednesday: next boundary is today's open.
	b := clock.NextBoundary(time.Date(2025, 3, 5, 8, 0, 0, 0, loc))
	if b.Kind != BoundaryOpen {
		t.Fatalf("expected open boundary, got %s", b.Kind)
	}
	if want := time.Date(2025, 3, 5, 9, 30, 0, 0, loc); !b.At.Equal(want) {
		t.Errorf("open at %s, want %s", b.At, want)
	}

	// Mid-session: next boundary is today's close.
	b = clock.NextBoundary(time.Date(2025, 3, 5, 12, 0, 0, 0, loc))
	if b.Kind != BoundaryClose {
		t.Fatalf("expected close boundary, got %s", b.Kind)
	}
	if want := time.Date(2025, 3, 5, 16, 0, 0, 0, loc); !b.At.Equal(want) {
		t.Errorf("close at %s, want %s", b.At, want)
	}
}

// go test -v --run TestNextBoundarySkipsWeekend
func TestNextBoundarySkipsWeekend(t *testing.T) {
	clock, loc := newYorkClock(t)

	wantOpen := time.Date(2025, 3, 10, 9, 30, 0, 0, loc) // Monday

	// Friday after close
	b := clock.NextBoundary(time.Date(2025, 3, 7, 16, 30, 0, 0, loc))
	if b.Kind != BoundaryOpen || !b.At.Equal(wantOpen) {
		t.Errorf("from Friday evening: got %s at %s, want open at %s", b.Kind, b.At, wantOpen)
	}

	// Saturday noon
	b = clock.NextBoundary(time.Date(2025, 3, 8, 12, 0, 0, 0, loc))
	if b.Kind != BoundaryOpen || !b.At.Equal(wantOpen) {
		t.Errorf("from Saturday: got %s at %s, want open at %s", b.Kind, b.At, wantOpen)
	}
}

// go test -v --run TestNextBoundaryAcrossDST
func TestNextBoundaryAcrossDST(t *testing.T) {
	clock, loc := newYorkClock(t)

	// US clocks spring forward on Sunday 2025-03-09. The Monday open must be
	// 09:30 civil time, which is 13:30 UTC under EDT (not 14:30 as under EST).
	b := clock.NextBoundary(time.Date(2025, 3, 7, 17, 0, 0, 0, loc))
	want := time.Date(2025, 3, 10, 9, 30, 0, 0, loc)
	if !b.At.Equal(want) {
		t.Fatalf("open at %s, want %s", b.At, want)
	}
	if got := b.At.UTC().Hour(); got != 13 {
		t.Errorf("open in UTC is %02d:30, want 13:30", got)
	}

	// And the fall-back transition on Sunday 2025-11-02: Monday open is
	// 14:30 UTC under EST.
	b = clock.NextBoundary(time.Date(2025, 10, 31, 17, 0, 0, 0, loc))
	want = time.Date(2025, 11, 3, 9, 30, 0, 0, loc)
	if !b.At.Equal(want) {
		t.Fatalf("open at %s, want %s", b.At, want)
	}
	if got := b.At.UTC().Hour(); got != 14 {
		t.Errorf("open in UTC is %02d:30, want 14:30", got)
	}
}

// go test -v --run TestParseTimeOfDay
func TestParseTimeOfDay(t *testing.T) {
	d, err := ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 9*time.Hour + 30*time.Minute; d != want {
		t.Errorf("got %v, want %v", d, want)
	}

	for _, bad := range []string{"", "nine:30", "25:00", "12:75"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
