package view

import (
	"sync"

	"github.com/danielyekini/moodswing-trading/internal/market/series"
	"github.com/danielyekini/moodswing-trading/internal/market/stream"
)

// Snapshot is what the presentation layer renders: last price, today's
// change against the prior session close, and the feed state.
type Snapshot struct {
	Ticker  string
	Price   float64
	Delta   float64
	Percent float64
	Valid   bool // false when no change is computable yet
	State   stream.State
}

// Model is a thin projection over the series store and connection state.
type Model struct {
	mu     sync.RWMutex
	ticker string
	store  *series.Store
	state  stream.State
}

func NewModel(ticker string, store *series.Store) *Model {
	return &Model{
		ticker: ticker,
		store:  store,
		state:  stream.StateIdle,
	}
}

// OnStateChange records the latest connection state. Wired as the stream
// client's state handler.
func (m *Model) OnStateChange(s stream.State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Snapshot returns the current display values.
func (m *Model) Snapshot() Snapshot {
	m.mu.RLock()
	ticker, state := m.ticker, m.state
	m.mu.RUnlock()

	q := m.store.Derived()
	return Snapshot{
		Ticker:  ticker,
		Price:   q.LastPrice,
		Delta:   q.Delta,
		Percent: q.Percent,
		Valid:   q.Valid,
		State:   state,
	}
}
