package stream

import (
	"encoding/json"
	"regexp"
	"sync"
	"time"

	"github.com/danielyekini/moodswing-trading/internal/market/series"
	"github.com/danielyekini/moodswing-trading/internal/market/session"
	"github.com/danielyekini/moodswing-trading/pkg/moodswing"

	"go.uber.org/zap"
)

// tickers the backend accepts: uppercase symbols up to five letters.
var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// Client manages the live tick connection for one instrument: it connects
// only inside market hours, reconnects with a fixed delay on socket errors,
// and disconnects at the session close boundary. Parsed ticks and state
// transitions are pushed to the registered handlers.
//
// All timer and reader callbacks are generation-checked: Stop and instrument
// switches bump the generation, so a late callback from a previous life can
// never mutate current state.
type Client struct {
	wsBaseURL  string
	interval   int // update-interval parameter of the stream endpoint, seconds
	retryDelay time.Duration
	clock      *session.Clock
	logger     *zap.Logger

	now func() time.Time

	mu           sync.Mutex
	ticker       string
	started      bool
	state        State
	gen          int
	conn         *moodswing.WSClient
	timers       []*time.Timer
	tickHandler  func(series.Tick)
	stateHandler func(State)
}

func NewClient(wsBaseURL string, interval int, retryDelay time.Duration,
	clock *session.Clock, logger *zap.Logger) *Client {
	return &Client{
		wsBaseURL:  wsBaseURL,
		interval:   interval,
		retryDelay: retryDelay,
		clock:      clock,
		logger:     logger,
		now:        time.Now,
		state:      StateIdle,
	}
}

// SetTickHandler registers the function receiving every valid tick.
// Must be set before Start.
func (c *Client) SetTickHandler(h func(series.Tick)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickHandler = h
}

// SetStateHandler registers the function receiving state transitions.
// Consecutive duplicate states are never emitted. The handler runs with the
// client lock held and must not call back into the client.
func (c *Client) SetStateHandler(h func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateHandler = h
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins managing a connection for one instrument. Calling Start
// again with the same ticker is a no-op; a different ticker tears down the
// previous connection and timers first. Start never blocks on the network.
func (c *Client) Start(ticker string) error {
	if !tickerPattern.MatchString(ticker) {
		return moodswing.NewConfigError("invalid ticker "+ticker, nil)
	}
	if c.interval <= 0 {
		return moodswing.NewConfigError("stream interval must be positive", nil)
	}

	c.mu.Lock()
	if c.started && c.ticker == ticker {
		c.mu.Unlock()
		return nil
	}
	c.teardownLocked()
	c.ticker = ticker
	c.started = true
	g := c.gen
	c.mu.Unlock()

	c.logger.Info("starting live feed", zap.String("ticker", ticker))
	c.beginSession(g)
	return nil
}

// Stop tears down the connection and cancels all pending timers before
// returning. Safe to call from any state, including repeatedly.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	c.started = false
}

// teardownLocked invalidates all outstanding callbacks, stops timers and
// closes any open socket. Callers hold c.mu.
func (c *Client) teardownLocked() {
	c.gen++
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// beginSession checks the session clock and either connects (arming the
// close and next-open boundary timers) or parks until the next open.
func (c *Client) beginSession(g int) {
	c.mu.Lock()
	if g != c.gen {
		c.mu.Unlock()
		return
	}

	now := c.now()
	if !c.clock.IsOpen(now) {
		next := c.clock.NextBoundary(now)
		c.logger.Info("market closed, waiting for open",
			zap.String("ticker", c.ticker), zap.Time("open_at", next.At))
		c.setStateLocked(StateSessionClosed)
		c.armLocked(next.At.Sub(now), func() { c.beginSession(g) })
		c.mu.Unlock()
		return
	}

	// In session: one timer forces disconnect at close, one starts the
	// next session at the following open.
	closeB := c.clock.NextBoundary(now)
	openB := c.clock.NextBoundary(closeB.At)
	c.armLocked(closeB.At.Sub(now), func() { c.onSessionClose(g) })
	c.armLocked(openB.At.Sub(now), func() { c.beginSession(g) })
	c.mu.Unlock()

	go c.connect(g)
}

// connect dials the stream endpoint and hands the socket to a reader.
func (c *Client) connect(g int) {
	c.mu.Lock()
	if g != c.gen {
		c.mu.Unlock()
		return
	}
	if !c.clock.IsOpen(c.now()) {
		// Session ended between scheduling and firing.
		c.setStateLocked(StateSessionClosed)
		c.mu.Unlock()
		return
	}
	c.setStateLocked(StateConnecting)
	url := moodswing.StreamURL(c.wsBaseURL, c.ticker, c.interval)
	ws := moodswing.NewWSClient(url, c.logger)
	c.mu.Unlock()

	err := ws.Connect()

	c.mu.Lock()
	defer c.mu.Unlock()
	if g != c.gen {
		if err == nil {
			ws.Close()
		}
		return
	}
	if err != nil {
		c.scheduleRetryLocked(g)
		return
	}
	c.conn = ws
	c.setStateLocked(StateConnected)
	go c.readLoop(g, ws)
}

// scheduleRetryLocked handles a socket-level failure: retry after the fixed
// delay while the session is open, otherwise park until the next open (the
// open boundary timer is already armed). Callers hold c.mu.
func (c *Client) scheduleRetryLocked(g int) {
	if c.clock.IsOpen(c.now()) {
		c.setStateLocked(StateDisconnected)
		c.armLocked(c.retryDelay, func() { c.connect(g) })
		return
	}
	c.setStateLocked(StateSessionClosed)
}

func (c *Client) readLoop(g int, ws *moodswing.WSClient) {
	for {
		msg, err := ws.ReadFrame()
		if err != nil {
			c.onReadError(g, ws, err)
			return
		}
		c.handleFrame(g, ws, msg)
	}
}

func (c *Client) onReadError(g int, ws *moodswing.WSClient, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g != c.gen || c.conn != ws {
		// Stopped, switched instrument, or closed at the session boundary.
		return
	}
	c.logger.Warn("stream read error", zap.String("ticker", c.ticker), zap.Error(err))
	c.conn = nil
	ws.Close()
	c.scheduleRetryLocked(g)
}

// onSessionClose fires at the close boundary: drop the socket and park.
func (c *Client) onSessionClose(g int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g != c.gen {
		return
	}
	c.logger.Info("session closed, disconnecting", zap.String("ticker", c.ticker))
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.setStateLocked(StateSessionClosed)
}

// handleFrame routes one inbound message. Control frames are answered or
// recorded; data frames become ticks. Malformed frames are dropped and
// logged, never fatal to the connection.
func (c *Client) handleFrame(g int, ws *moodswing.WSClient, msg []byte) {
	// Step 1: extract the type discriminator for early routing
	var frame moodswing.Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		c.logger.Warn("unparsable frame dropped", zap.Error(err))
		return
	}

	switch frame.Type {
	case "ping":
		// Liveness probe: reply immediately or the backend drops us.
		if err := ws.Pong(); err != nil {
			c.logger.Warn("pong failed", zap.Error(err))
		}
		return
	case "rate":
		var rate moodswing.RateFrame
		if err := json.Unmarshal(msg, &rate); err == nil {
			c.logger.Debug("rate notice",
				zap.Int("limit", rate.Limit),
				zap.Int("remaining", rate.Remaining),
				zap.Int("reset_seconds", rate.ResetSecs))
		}
		return
	case "":
		// Bare tick, handled below.
	default:
		c.logger.Warn("unknown frame type dropped", zap.String("type", frame.Type))
		return
	}

	// Step 2: fully parse the tick payload
	var tf moodswing.TickFrame
	if err := json.Unmarshal(msg, &tf); err != nil {
		c.logger.Warn("malformed tick dropped", zap.Error(err))
		return
	}
	if tf.Price == nil {
		c.logger.Warn("tick without price dropped")
		return
	}
	ts, err := time.Parse(time.RFC3339, tf.TS)
	if err != nil {
		c.logger.Warn("tick with unparsable timestamp dropped",
			zap.String("ts", tf.TS), zap.Error(err))
		return
	}

	tick := series.Tick{Time: ts, Price: float64(*tf.Price)}

	c.mu.Lock()
	if g != c.gen {
		c.mu.Unlock()
		return
	}
	h := c.tickHandler
	c.mu.Unlock()

	if h != nil {
		h(tick)
	}
}

// armLocked schedules a one-shot callback. Durations in the past fire
// immediately. Callers hold c.mu; the callback itself must re-check the
// generation.
func (c *Client) armLocked(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	c.timers = append(c.timers, time.AfterFunc(d, fn))
}

func (c *Client) setStateLocked(s State) {
	if s == c.state {
		return
	}
	c.state = s
	if c.stateHandler != nil {
		c.stateHandler(s)
	}
}
