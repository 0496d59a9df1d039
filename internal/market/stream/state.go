package stream

// State is the connection lifecycle of the live feed.
//
// idle -> connecting -> connected; connected -> disconnected on socket
// error or close; disconnected -> connecting on a scheduled retry while the
// session is open; any state -> session-closed when the session ends;
// session-closed -> connecting when the next open boundary fires.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateDisconnected
	StateSessionClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateSessionClosed:
		return "session-closed"
	default:
		return "unknown"
	}
}
