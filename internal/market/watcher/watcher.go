package watcher

import (
	"context"
	"fmt"

	"github.com/danielyekini/moodswing-trading/config"
	"github.com/danielyekini/moodswing-trading/internal/market/history"
	"github.com/danielyekini/moodswing-trading/internal/market/news"
	"github.com/danielyekini/moodswing-trading/internal/market/recorder"
	"github.com/danielyekini/moodswing-trading/internal/market/series"
	"github.com/danielyekini/moodswing-trading/internal/market/session"
	"github.com/danielyekini/moodswing-trading/internal/market/stream"
	"github.com/danielyekini/moodswing-trading/internal/market/view"
	"github.com/danielyekini/moodswing-trading/pkg/moodswing"
	"github.com/danielyekini/moodswing-trading/pkg/storage/postgres"

	"go.uber.org/zap"
)

// Watcher wires the data pipeline for one instrument: the history snapshot
// seeds the series store, the session clock gates the live stream, and
// applied ticks update the store the view model projects.
type Watcher struct {
	Store  *series.Store
	Client *stream.Client
	View   *view.Model
	News   *news.Loader
}

// Start builds and starts the pipeline.
func Start(cfg *config.Config, logger *zap.Logger) (*Watcher, error) {
	rest := moodswing.NewRESTClient(cfg.Feed.RESTBaseURL, cfg.Feed.Timeout)
	store := series.NewStore()

	// Seed with the trailing history window. On failure the store is seeded
	// empty: derived values stay unavailable rather than fabricated.
	loader := history.NewLoader(rest, logger)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Feed.Timeout)
	candles, err := loader.Load(ctx, cfg.Feed.Ticker, cfg.Feed.HistoryDays)
	cancel()
	if err != nil {
		logger.Warn("history load failed, seeding empty series",
			zap.String("ticker", cfg.Feed.Ticker), zap.Error(err))
		candles = nil
	}
	store.Seed(candles)

	clock, err := session.FromConfig(cfg.Market)
	if err != nil {
		return nil, fmt.Errorf("build session clock: %w", err)
	}

	client := stream.NewClient(cfg.Feed.WSBaseURL, cfg.Feed.StreamInterval,
		cfg.Feed.RetryDelay, clock, logger)
	vm := view.NewModel(cfg.Feed.Ticker, store)

	// Optional tick archive
	var rec *recorder.Recorder
	if cfg.Feed.RecordTicks {
		pg, err := postgres.InitializeAndMigrateTickRecord(cfg.Postgres, true)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		rec = recorder.New(pg, cfg.Feed.Ticker, logger)
	}

	client.SetTickHandler(func(t series.Tick) {
		if !store.AppendTick(t) {
			return // stale tick from a previous connection
		}
		if rec != nil {
			rec.Record(t)
		}
	})
	client.SetStateHandler(vm.OnStateChange)

	if err := client.Start(cfg.Feed.Ticker); err != nil {
		return nil, err
	}

	return &Watcher{
		Store:  store,
		Client: client,
		View:   vm,
		News:   news.NewLoader(rest, cfg.Feed.NewsLimit, logger),
	}, nil
}

// Stop tears down the live connection and all pending timers.
func (w *Watcher) Stop() {
	w.Client.Stop()
}
