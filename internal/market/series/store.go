package series

import (
	"math"
	"sync"
	"time"
)

// Candle is one completed trading session (daily bar).
type Candle struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Tick is a single timestamped price update from the live feed.
type Tick struct {
	Time  time.Time
	Price float64
}

// Quote holds the display values derived from the merged series.
type Quote struct {
	LastPrice  float64
	PriorClose float64
	Delta      float64
	Percent    float64 // rounded to 2 decimal places
	Valid      bool    // false when no prior close is available
}

// Store owns the merged historical+live series for one instrument.
//
// Live ticks collapse into a single trailing "live bar" with
// open=high=low=close=price: true intraperiod high/low is not recoverable
// from tick-only data, so the last trade stands in for the whole bucket.
type Store struct {
	mu         sync.Mutex
	candles    []Candle
	live       *Candle // zero or one live bar, always after candles
	priorClose float64
	seeded     bool
}

func NewStore() *Store {
	return &Store{}
}

// Seed replaces the series wholesale with historical candles. Any live bar
// from a previous instrument is discarded. Candles must be ordered by time.
func (s *Store) Seed(candles []Candle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.candles = make([]Candle, len(candles))
	copy(s.candles, candles)
	s.live = nil
	s.seeded = true
	s.priorClose = 0
	if len(s.candles) > 0 {
		s.priorClose = s.candles[len(s.candles)-1].Close
	}
}

// AppendTick updates or appends the trailing live bar. Ticks that are not
// strictly newer than the current live bar, or that predate the last
// historical candle, are dropped; stale deliveries across a reconnect land
// here. Reports whether the tick was applied.
func (s *Store) AppendTick(t Tick) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live != nil && !t.Time.After(s.live.Time) {
		return false
	}
	if s.live == nil && len(s.candles) > 0 && t.Time.Before(s.candles[len(s.candles)-1].Time) {
		return false
	}

	s.live = &Candle{
		Time:  t.Time,
		Open:  t.Price,
		High:  t.Price,
		Low:   t.Price,
		Close: t.Price,
	}
	return true
}

// Derived computes the display values. PriorClose is anchored to the last
// completed session, not the previous tick, so "today's change" stays stable
// however many ticks have arrived. A zero or missing prior close yields
// Valid=false instead of NaN.
func (s *Store) Derived() Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded || len(s.candles) == 0 || s.priorClose == 0 {
		return Quote{}
	}

	last := s.priorClose
	if s.live != nil {
		last = s.live.Close
	}

	delta := last - s.priorClose
	percent := math.Round(delta/s.priorClose*100*100) / 100

	return Quote{
		LastPrice:  last,
		PriorClose: s.priorClose,
		Delta:      delta,
		Percent:    percent,
		Valid:      true,
	}
}

// Candles returns a copy of the series, historical bars plus the live bar
// when one exists. Timestamps are monotonically increasing.
func (s *Store) Candles() []Candle {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Candle, len(s.candles), len(s.candles)+1)
	copy(out, s.candles)
	if s.live != nil {
		out = append(out, *s.live)
	}
	return out
}

// Len reports the number of bars including the live bar.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.candles)
	if s.live != nil {
		n++
	}
	return n
}
