package recorder

import (
	"context"
	"time"

	"github.com/danielyekini/moodswing-trading/internal/market/series"
	"github.com/danielyekini/moodswing-trading/pkg/storage/postgres"

	"go.uber.org/zap"
)

// Recorder archives applied ticks into Postgres. It sits off the live path:
// an insert failure is logged and the feed carries on.
type Recorder struct {
	client *postgres.PostgresClient
	ticker string
	logger *zap.Logger
}

func New(client *postgres.PostgresClient, ticker string, logger *zap.Logger) *Recorder {
	return &Recorder{
		client: client,
		ticker: ticker,
		logger: logger,
	}
}

// Record inserts one tick with a short timeout.
func (r *Recorder) Record(t series.Tick) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	record := postgres.ToTickRecord(r.ticker, t)
	if err := r.client.InsertTick(ctx, record); err != nil {
		r.logger.Warn("failed to insert tick record",
			zap.String("ticker", r.ticker), zap.Error(err))
	}
}
