package main

import (
	"context"
	"time"

	"github.com/danielyekini/moodswing-trading/config"
	"github.com/danielyekini/moodswing-trading/internal/market/watcher"
	"github.com/danielyekini/moodswing-trading/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// run the feed pipeline
	w, err := watcher.Start(cfg, log)
	if err != nil {
		log.Fatal("watcher failed", zap.Error(err))
	}
	defer w.Stop()

	// One-shot news fetch for visibility
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Feed.Timeout)
		defer cancel()
		articles, err := w.News.Latest(ctx, cfg.Feed.Ticker)
		if err != nil {
			log.Warn("news fetch failed", zap.Error(err))
			return
		}
		for _, a := range articles {
			log.Info("headline",
				zap.String("source", a.Source),
				zap.String("headline", a.Headline),
				zap.Float64("sentiment", a.Sentiment))
		}
	}()

	// Periodically print the derived quote for visibility
	go func() {
		for {
			snap := w.View.Snapshot()
			log.Info("quote",
				zap.String("ticker", snap.Ticker),
				zap.Float64("price", snap.Price),
				zap.Float64("delta", snap.Delta),
				zap.Float64("percent", snap.Percent),
				zap.Bool("valid", snap.Valid),
				zap.String("state", snap.State.String()))

			time.Sleep(5 * time.Second)
		}
	}()

	select {}
}
