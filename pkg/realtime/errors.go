package realtime

import "errors"

var (
	// ErrStreamEnded indicates the push connection ended, whether by server
	// close or transport failure; the channel treats both as a reconnect
	// trigger
	ErrStreamEnded = errors.New("realtime.stream_ended")
)
