package realtime

// Status is reported to the subscribe callback on every connection state
// transition.
type Status string

const (
	StatusConnecting   Status = "CONNECTING"
	StatusSubscribed   Status = "SUBSCRIBED"
	StatusChannelError Status = "CHANNEL_ERROR"
	StatusReconnecting Status = "RECONNECTING"
	StatusClosed       Status = "CLOSED"
	StatusUnsubscribed Status = "UNSUBSCRIBED"
)

// StatusCallback receives connection status transitions for a channel.
// err is non-nil only for CHANNEL_ERROR.
type StatusCallback func(status Status, err error)

// State is the internal connection state of a channel.
type State string

const (
	// StateIdle is the initial state, before Subscribe or after Unsubscribe.
	StateIdle State = "idle"
	// StateConnecting means a stream open is in flight.
	StateConnecting State = "connecting"
	// StateSubscribed means the stream is open and events are flowing.
	StateSubscribed State = "subscribed"
	// StateReconnecting means a backoff delay is pending before the next attempt.
	StateReconnecting State = "reconnecting"
	// StateClosed is terminal after reconnection attempts are exhausted;
	// only an explicit Subscribe leaves it.
	StateClosed State = "closed"
)
