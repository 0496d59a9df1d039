package moodswing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) HTTPClient() *http.Client {
	return c.httpClient
}

// GetHistory fetches daily candles for the given date range.
// Returns a FetchError on transport or status failures and a ParseError
// when the body cannot be decoded.
func (c *RESTClient) GetHistory(ctx context.Context, ticker string,
	start, end time.Time, interval string) (*HistoryResponse, error) {
	endpoint := fmt.Sprintf(
		"%s/api/v1/stocks/%s/history?start=%s&end=%s&interval=%s",
		c.baseURL,
		ticker,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
		interval,
	)

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewFetchError("creating history request", err)
	}

	// Execute the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewFetchError("history request failed", err)
	}
	defer resp.Body.Close()

	// Check HTTP status code
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewFetchError(fmt.Sprintf("history status %d: %s", resp.StatusCode, body), nil)
	}

	var history HistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, NewParseError("decode history response", err)
	}

	return &history, nil
}

// GetNews fetches the latest scored articles for a ticker.
func (c *RESTClient) GetNews(ctx context.Context, ticker string, limit int) ([]Article, error) {
	endpoint := fmt.Sprintf("%s/api/v1/news/%s?limit=%d", c.baseURL, ticker, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewFetchError("creating news request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewFetchError("news request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewFetchError(fmt.Sprintf("news status %d: %s", resp.StatusCode, body), nil)
	}

	var news NewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&news); err != nil {
		return nil, NewParseError("decode news response", err)
	}

	return news.Articles, nil
}
