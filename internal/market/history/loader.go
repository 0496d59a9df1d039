package history

import (
	"context"
	"time"

	"github.com/danielyekini/moodswing-trading/internal/market/series"
	"github.com/danielyekini/moodswing-trading/pkg/moodswing"

	"go.uber.org/zap"
)

// Loader fetches the trailing window of daily candles used to seed the
// series store, once at startup or on instrument change.
type Loader struct {
	rest   *moodswing.RESTClient
	logger *zap.Logger
}

func NewLoader(rest *moodswing.RESTClient, logger *zap.Logger) *Loader {
	return &Loader{rest: rest, logger: logger}
}

// Load fetches windowDays of daily bars ending today. Failures are returned
// to the caller, who must seed a fallback series; nothing here invents data.
func (l *Loader) Load(ctx context.Context, ticker string, windowDays int) ([]series.Candle, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)

	resp, err := l.rest.GetHistory(ctx, ticker, start, end, "1d")
	if err != nil {
		return nil, err
	}

	candles := moodswing.ParseCandles(resp.Candles)
	l.logger.Info("loaded history",
		zap.String("ticker", ticker),
		zap.Int("candles", len(candles)))
	return candles, nil
}
