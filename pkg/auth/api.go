package auth

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/basekit/pkg/transport"
)

// API is the backend collaborator for authentication operations. The manager
// talks to the backend only through this interface; tests substitute fakes.
type API interface {
	SignUp(ctx context.Context, creds Credentials) (*Session, error)
	SignIn(ctx context.Context, creds Credentials) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	UpdateUser(ctx context.Context, attrs UserAttributes) (*User, error)
}

// authResponse tolerates the two response shapes the backend emits: a full
// session object or a bare token+user pair.
type authResponse struct {
	Session
	Token string `json:"token,omitempty"`
}

// session normalizes the response into a Session, filling in defaults for
// the bare token+user shape.
func (r *authResponse) session() (*Session, error) {
	s := r.Session
	if s.AccessToken == "" && r.Token != "" {
		s.AccessToken = r.Token
	}
	if s.TokenType == "" {
		s.TokenType = "bearer"
	}
	if !s.Valid() {
		return nil, ErrInvalidResponse
	}
	return &s, nil
}

type restAPI struct {
	client *transport.Client
}

// NewRESTAPI implements API over the standard backend auth endpoints.
func NewRESTAPI(client *transport.Client) API {
	return &restAPI{client: client}
}

func (a *restAPI) SignUp(ctx context.Context, creds Credentials) (*Session, error) {
	var resp authResponse
	if err := a.client.Do(ctx, http.MethodPost, "/api/auth/signup", creds, &resp); err != nil {
		return nil, err
	}
	return resp.session()
}

func (a *restAPI) SignIn(ctx context.Context, creds Credentials) (*Session, error) {
	var resp authResponse
	if err := a.client.Do(ctx, http.MethodPost, "/api/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return resp.session()
}

func (a *restAPI) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var resp authResponse
	if err := a.client.Do(ctx, http.MethodPost, "/api/auth/refresh", body, &resp); err != nil {
		return nil, err
	}
	return resp.session()
}

func (a *restAPI) UpdateUser(ctx context.Context, attrs UserAttributes) (*User, error) {
	var user User
	if err := a.client.Do(ctx, http.MethodPatch, "/api/auth/user", attrs, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
