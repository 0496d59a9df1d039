package view

import (
	"testing"
	"time"

	"github.com/danielyekini/moodswing-trading/internal/market/series"
	"github.com/danielyekini/moodswing-trading/internal/market/stream"
)

// go test -v --run TestSnapshotProjection
func TestSnapshotProjection(t *testing.T) {
	store := series.NewStore()
	store.Seed([]series.Candle{
		{Time: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Close: 100},
	})

	m := NewModel("AAPL", store)

	snap := m.Snapshot()
	if snap.Ticker != "AAPL" || snap.State != stream.StateIdle {
		t.Errorf("unexpected initial snapshot: %+v", snap)
	}

	store.AppendTick(series.Tick{Time: time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC), Price: 102})
	m.OnStateChange(stream.StateConnected)

	snap = m.Snapshot()
	if snap.Price != 102 || snap.Delta != 2 || snap.Percent != 2.00 {
		t.Errorf("snapshot = %+v, want price 102 delta 2 percent 2.00", snap)
	}
	if !snap.Valid {
		t.Error("expected valid snapshot")
	}
	if snap.State != stream.StateConnected {
		t.Errorf("state = %s, want connected", snap.State)
	}
}

// go test -v --run TestSnapshotWithoutSeed
func TestSnapshotWithoutSeed(t *testing.T) {
	m := NewModel("AAPL", series.NewStore())

	snap := m.Snapshot()
	if snap.Valid {
		t.Error("unseeded store must not yield a valid snapshot")
	}
	if snap.Price != 0 || snap.Delta != 0 {
		t.Errorf("expected zero values, got %+v", snap)
	}
}
