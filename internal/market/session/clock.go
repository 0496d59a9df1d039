package session

import (
	"fmt"
	"time"

	"github.com/danielyekini/moodswing-trading/config"

	"github.com/scmhub/calendar"
)

type BoundaryKind int

const (
	BoundaryOpen BoundaryKind = iota
	BoundaryClose
)

func (k BoundaryKind) String() string {
	if k == BoundaryOpen {
		return "open"
	}
	return "close"
}

// Boundary is the next session open or close instant.
type Boundary struct {
	Kind BoundaryKind
	At   time.Time
}

// Clock decides whether the exchange session is open at a given instant and
// when the next open/close boundary falls. All weekday and time-of-day
// arithmetic happens in the exchange zone; the caller's zone never matters.
//
// Open is inclusive and close is exclusive: the session is open at exactly
// the open instant and closed at exactly the close instant.
type Clock struct {
	loc   *time.Location
	open  time.Duration // civil time-of-day offset from midnight
	close time.Duration
	cal   *calendar.Calendar // optional holiday calendar; nil means Mon-Fri
}

// New builds a clock for the given exchange zone and session window.
func New(loc *time.Location, open, close time.Duration) *Clock {
	return &Clock{loc: loc, open: open, close: close}
}

// FromConfig builds a clock from the market section of the config file.
// An unknown MIC falls back to plain Mon-Fri weekday detection.
func FromConfig(cfg config.MarketConfig) (*Clock, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load market timezone %q: %w", cfg.Timezone, err)
	}
	open, err := ParseTimeOfDay(cfg.Open)
	if err != nil {
		return nil, fmt.Errorf("parse market open: %w", err)
	}
	cl, err := ParseTimeOfDay(cfg.Close)
	if err != nil {
		return nil, fmt.Errorf("parse market close: %w", err)
	}
	if cl <= open {
		return nil, fmt.Errorf("market close %s must be after open %s", cfg.Close, cfg.Open)
	}

	c := New(loc, open, cl)
	if cfg.MIC != "" {
		c.cal = calendar.GetCalendar(cfg.MIC)
	}
	return c, nil
}

// ParseTimeOfDay parses "HH:MM" into an offset from civil midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%d:%d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute, nil
}

// IsOpen reports whether the session is open at the given instant.
func (c *Clock) IsOpen(now time.Time) bool {
	t := now.In(c.loc)
	if !c.isTradingDay(t) {
		return false
	}
	tod := timeOfDay(t)
	return tod >= c.open && tod < c.close
}

// NextBoundary returns the next open or close instant strictly after now.
// Weekends (and holidays when a calendar is configured) are skipped.
func (c *Clock) NextBoundary(now time.Time) Boundary {
	t := now.In(c.loc)

	if c.isTradingDay(t) {
		tod := timeOfDay(t)
		if tod < c.open {
			return Boundary{Kind: BoundaryOpen, At: c.civilInstant(t, c.open)}
		}
		if tod < c.close {
			return Boundary{Kind: BoundaryClose, At: c.civilInstant(t, c.close)}
		}
	}

	// After close, or a non-trading day: next trading day's open.
	day := t.AddDate(0, 0, 1)
	for i := 0; i < 366; i++ {
		if c.isTradingDay(day) {
			return Boundary{Kind: BoundaryOpen, At: c.civilInstant(day, c.open)}
		}
		day = day.AddDate(0, 0, 1)
	}
	// No trading day within a year; the calendar data is broken.
	return Boundary{Kind: BoundaryOpen, At: c.civilInstant(t.AddDate(0, 0, 1), c.open)}
}

func (c *Clock) isTradingDay(t time.Time) bool {
	if c.cal != nil {
		return c.cal.IsBusinessDay(t)
	}
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// civilInstant pins a time-of-day offset onto t's civil date. Going through
// time.Date keeps the result correct across DST transitions.
func (c *Clock) civilInstant(t time.Time, tod time.Duration) time.Time {
	y, m, d := t.Date()
	hh := int(tod / time.Hour)
	mm := int(tod % time.Hour / time.Minute)
	ss := int(tod % time.Minute / time.Second)
	ns := int(tod % time.Second)
	return time.Date(y, m, d, hh, mm, ss, ns, c.loc)
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
