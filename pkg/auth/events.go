package auth

// Event identifies a session state transition delivered to listeners.
type Event string

const (
	// EventInitialSession is emitted once when a persisted session is
	// restored at startup.
	EventInitialSession Event = "INITIAL_SESSION"

	// EventSignedIn is emitted when sign-up or sign-in installs a session.
	EventSignedIn Event = "SIGNED_IN"

	// EventSignedOut is emitted when the session is cleared, whether by an
	// explicit sign-out or a failed token refresh.
	EventSignedOut Event = "SIGNED_OUT"

	// EventTokenRefreshed is emitted when a silent refresh replaces the
	// session's tokens.
	EventTokenRefreshed Event = "TOKEN_REFRESHED"

	// EventUserUpdated is emitted when the current user record is patched.
	EventUserUpdated Event = "USER_UPDATED"

	// EventPasswordRecovery is part of the notification contract but is not
	// emitted by any transition in this SDK yet.
	EventPasswordRecovery Event = "PASSWORD_RECOVERY"
)
