package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the identity record attached to a session. Beyond the identity
// fields the backend may attach arbitrary metadata, kept opaque here.
type User struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
}

// Session is the authenticated credential bundle currently considered
// active. A valid session always carries a non-nil User.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	User         *User  `json:"user"`
}

// Valid reports whether the session carries the minimum required state.
// A session restored from storage that fails this check is treated as absent.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && s.User != nil && s.User.ID != ""
}

// TimeToExpiry returns the remaining lifetime of the access token. It
// prefers the explicit expires_in field and falls back to the token's JWT
// exp claim when the backend omits it. The second return value is false when
// neither source yields an expiry.
func (s *Session) TimeToExpiry(now time.Time) (time.Duration, bool) {
	if s == nil {
		return 0, false
	}
	if s.ExpiresIn > 0 {
		return time.Duration(s.ExpiresIn) * time.Second, true
	}

	// The claim is read without signature verification: the client has no
	// signing key and only needs the expiry hint for scheduling.
	token, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, jwt.MapClaims{})
	if err != nil {
		return 0, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	return exp.Time.Sub(now), true
}

// Credentials are the inputs for password-based sign-up and sign-in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserAttributes is the patch payload for updating the current user.
// Zero-valued fields are omitted from the request.
type UserAttributes struct {
	Email    string         `json:"email,omitempty"`
	Password string         `json:"password,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
