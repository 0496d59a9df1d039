package news

import (
	"context"

	"github.com/danielyekini/moodswing-trading/pkg/moodswing"

	"go.uber.org/zap"
)

// Loader is the read-only boundary to the news endpoint. The presentation
// layer consumes articles directly; nothing feeds back into the live path.
type Loader struct {
	rest   *moodswing.RESTClient
	limit  int
	logger *zap.Logger
}

func NewLoader(rest *moodswing.RESTClient, limit int, logger *zap.Logger) *Loader {
	return &Loader{rest: rest, limit: limit, logger: logger}
}

// Latest fetches the most recent scored articles for a ticker.
func (l *Loader) Latest(ctx context.Context, ticker string) ([]moodswing.Article, error) {
	articles, err := l.rest.GetNews(ctx, ticker, l.limit)
	if err != nil {
		return nil, err
	}
	l.logger.Info("loaded news",
		zap.String("ticker", ticker),
		zap.Int("articles", len(articles)))
	return articles, nil
}
