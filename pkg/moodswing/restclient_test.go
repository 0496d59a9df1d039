package moodswing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// go test -v --run TestGetHistory
func TestGetHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/stocks/AAPL/history" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("interval") != "1d" || q.Get("start") == "" || q.Get("end") == "" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ticker": "AAPL",
			"interval": "1d",
			"candles": [
				{"ts": "2025-03-03", "open": 98, "high": 101, "low": 97, "close": 99, "volume": 1000},
				{"ts": "2025-03-04", "open": 99, "high": 102, "low": 98, "close": 100, "volume": 1200}
			]
		}`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	end := time.Now()
	resp, err := client.GetHistory(ctx, "AAPL", end.AddDate(0, 0, -30), end, "1d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Candles) != 2 {
		t.Fatalf("got %d candles, want 2", len(resp.Candles))
	}
	if resp.Candles[1].Close != 100 {
		t.Errorf("close = %v, want 100", resp.Candles[1].Close)
	}
}

// go test -v --run TestGetHistoryFetchError
func TestGetHistoryFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, 5*time.Second)

	_, err := client.GetHistory(context.Background(), "AAPL", time.Now().AddDate(0, 0, -7), time.Now(), "1d")
	if err == nil {
		t.Fatal("expected error for 500 status")
	}
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("expected FetchError, got %T: %v", err, err)
	}
}

// go test -v --run TestGetHistoryParseError
func TestGetHistoryParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not json`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, 5*time.Second)

	_, err := client.GetHistory(context.Background(), "AAPL", time.Now().AddDate(0, 0, -7), time.Now(), "1d")
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected ParseError, got %T: %v", err, err)
	}
}

// go test -v --run TestGetNews
func TestGetNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/news/AAPL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("unexpected limit %s", r.URL.Query().Get("limit"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ticker": "AAPL",
			"articles": [
				{"id": "a1", "headline": "Apple up", "source": "wire", "url": "http://example.com/a1",
				 "ts_pub": "2025-03-05T09:00:00Z", "sentiment": 0.6, "weight": 0.9}
			]
		}`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, 5*time.Second)

	articles, err := client.GetNews(context.Background(), "AAPL", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].Sentiment != 0.6 {
		t.Errorf("sentiment = %v, want 0.6", articles[0].Sentiment)
	}
}

// go test -v --run TestParseCandles
func TestParseCandles(t *testing.T) {
	wire := []WireCandle{
		{TS: "2025-03-03", Open: 98, High: 101, Low: 97, Close: 99},
		{TS: "garbage", Close: 1},                // skipped: bad timestamp
		{TS: "2025-03-03", Close: 2},             // skipped: not after previous
		{TS: "2025-03-04T00:00:00Z", Close: 100}, // full instant layout
	}

	candles := ParseCandles(wire)
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2", len(candles))
	}
	if candles[0].Close != 99 || candles[1].Close != 100 {
		t.Errorf("unexpected candles: %+v", candles)
	}
	if !candles[1].Time.After(candles[0].Time) {
		t.Error("timestamps not strictly increasing")
	}
}

// go test -v --run TestPriceUnmarshal
func TestPriceUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{`{"price": 101.5, "ts": "x"}`, 101.5, true},
		{`{"price": "102.25", "ts": "x"}`, 102.25, true},
		{`{"price": "abc", "ts": "x"}`, 0, false},
	}

	for _, c := range cases {
		var tf TickFrame
		err := json.Unmarshal([]byte(c.in), &tf)
		if c.ok {
			if err != nil {
				t.Errorf("unexpected error for %s: %v", c.in, err)
				continue
			}
			if tf.Price == nil || float64(*tf.Price) != c.want {
				t.Errorf("price for %s = %v, want %v", c.in, tf.Price, c.want)
			}
		} else if err == nil {
			t.Errorf("expected error for %s", c.in)
		}
	}

	// JSON null and an absent field both leave the pointer nil, which the
	// stream handler treats as a missing price.
	for _, in := range []string{`{"price": null, "ts": "x"}`, `{"ts": "x"}`} {
		var tf TickFrame
		if err := json.Unmarshal([]byte(in), &tf); err != nil {
			t.Errorf("unexpected error for %s: %v", in, err)
			continue
		}
		if tf.Price != nil {
			t.Errorf("price for %s = %v, want nil", in, tf.Price)
		}
	}
}
