package auth

import "errors"

var (
	// ErrNoAPI indicates the manager was constructed without a backend API implementation
	ErrNoAPI = errors.New("auth.no_api")

	// ErrNoSession indicates an operation requiring an active session found none
	ErrNoSession = errors.New("auth.no_session")

	// ErrNoRefreshToken indicates the current session cannot be refreshed
	ErrNoRefreshToken = errors.New("auth.no_refresh_token")

	// ErrSignOut indicates removing the persisted session record failed during sign-out
	ErrSignOut = errors.New("auth.signout_error")

	// ErrInvalidResponse indicates the backend returned neither a session nor a token+user pair
	ErrInvalidResponse = errors.New("auth.invalid_response")
)
