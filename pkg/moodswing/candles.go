package moodswing

import (
	"time"

	"github.com/danielyekini/moodswing-trading/internal/market/series"
)

// candle timestamps arrive as bare dates from the daily history endpoint,
// occasionally as full instants.
var candleLayouts = []string{"2006-01-02", time.RFC3339}

// ParseCandles converts wire candles into series candles. Rows with an
// unparsable timestamp and rows that would break the strictly-increasing
// timestamp invariant are skipped.
func ParseCandles(wire []WireCandle) []series.Candle {
	var out []series.Candle

	for _, w := range wire {
		ts, ok := parseCandleTime(w.TS)
		if !ok {
			continue
		}
		if len(out) > 0 && !ts.After(out[len(out)-1].Time) {
			continue
		}

		out = append(out, series.Candle{
			Time:  ts,
			Open:  w.Open,
			High:  w.High,
			Low:   w.Low,
			Close: w.Close,
		})
	}
	return out
}

func parseCandleTime(s string) (time.Time, bool) {
	for _, layout := range candleLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
