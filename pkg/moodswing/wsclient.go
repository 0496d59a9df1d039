package moodswing

import (
	"fmt"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StreamURL builds the tick stream address for one ticker. The interval
// parameter tells the backend how often to push updates, in seconds.
func StreamURL(wsBaseURL, ticker string, interval int) string {
	return fmt.Sprintf("%s/api/v1/stocks/%s/stream?interval=%d", wsBaseURL, ticker, interval)
}

// WSClient handles a single WebSocket session to the tick stream.
// Connection lifecycle (reconnects, session boundaries) is managed by the
// stream client that owns it; this type only dials, reads and replies.
type WSClient struct {
	url    string
	conn   *websocket.Conn
	logger *zap.Logger
}

func NewWSClient(url string, logger *zap.Logger) *WSClient {
	return &WSClient{
		url:    url,
		logger: logger,
	}
}

// Connect establishes the WebSocket connection.
func (c *WSClient) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		c.logger.Error("Failed to connect to WebSocket", zap.String("url", c.url), zap.Error(err))
		return err
	}
	c.conn = conn
	c.logger.Info("WebSocket connected", zap.String("url", c.url))
	return nil
}

// ReadFrame blocks until the next inbound frame or a connection error.
func (c *WSClient) ReadFrame() ([]byte, error) {
	_, msg, err := c.conn.ReadMessage()
	return msg, err
}

// Pong answers a liveness probe. The backend drops connections that stay
// silent after a ping.
func (c *WSClient) Pong() error {
	return c.conn.WriteJSON(map[string]string{"type": "pong"})
}

func (c *WSClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
