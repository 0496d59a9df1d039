package moodswing

import (
	"fmt"
	"strconv"
	"strings"
)

// HistoryResponse is the envelope returned by the history endpoint.
type HistoryResponse struct {
	Ticker   string       `json:"ticker"`
	Interval string       `json:"interval"`
	Candles  []WireCandle `json:"candles"`
}

// WireCandle is one daily bar as serialized by the backend. The timestamp is
// an ISO date ("2024-12-02") or a full RFC 3339 instant.
type WireCandle struct {
	TS     string  `json:"ts"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Frame carries only the discriminator of an inbound stream message, so
// control frames can be routed before a full parse.
type Frame struct {
	Type string `json:"type"` // "ping", "rate", or empty for a bare tick
}

// TickFrame is a bare tick pushed on the stream.
type TickFrame struct {
	TS     string `json:"ts"`
	Price  *Price `json:"price"` // nil when the field is absent
	Volume int64  `json:"volume"`
}

// Price decodes a JSON number or a numeric string. The backend has shipped
// both encodings.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return fmt.Errorf("price is null")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q", s)
	}
	*p = Price(v)
	return nil
}

// RateFrame is an advisory rate-limit notice. No reply is expected.
type RateFrame struct {
	Type      string `json:"type"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	ResetSecs int    `json:"reset_seconds"`
}

// NewsResponse is the envelope returned by the news endpoint.
type NewsResponse struct {
	Ticker   string    `json:"ticker"`
	Articles []Article `json:"articles"`
}

// Article is one scored news item.
type Article struct {
	ID        string  `json:"id"`
	Headline  string  `json:"headline"`
	Source    string  `json:"source"`
	URL       string  `json:"url"`
	Published string  `json:"ts_pub"`
	Sentiment float64 `json:"sentiment"` // -1 to 1
	Weight    float64 `json:"weight"`
	ImageURL  string  `json:"image_url,omitempty"`
}
