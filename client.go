package basekit

import (
	"context"

	"github.com/dmitrymomot/basekit/pkg/auth"
	"github.com/dmitrymomot/basekit/pkg/logger"
	"github.com/dmitrymomot/basekit/pkg/query"
	"github.com/dmitrymomot/basekit/pkg/realtime"
	"github.com/dmitrymomot/basekit/pkg/storage"
	"github.com/dmitrymomot/basekit/pkg/transport"
)

// Client is the composed SDK entry point. Auth and Realtime are exposed
// directly; table queries go through From.
type Client struct {
	Auth     *auth.Manager
	Realtime *realtime.Client

	transport *transport.Client
}

// New creates a client for the backend at baseURL. A previously persisted
// session is restored silently; use Auth.OnAuthStateChange to observe the
// INITIAL_SESSION event.
func New(baseURL string, opts ...Option) (*Client, error) {
	s := &settings{
		store:       storage.NewMemoryStore(),
		headers:     make(map[string]string),
		autoRefresh: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.NewDiscard()
	}

	c := &Client{}

	transportOpts := []transport.Option{
		transport.WithLogger(s.logger),
		transport.WithTokenFunc(func() string { return c.Auth.AccessToken() }),
	}
	if s.httpClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(s.httpClient))
	}
	for key, value := range s.headers {
		transportOpts = append(transportOpts, transport.WithHeader(key, value))
	}

	tc, err := transport.New(baseURL, transportOpts...)
	if err != nil {
		return nil, err
	}
	c.transport = tc

	authOpts := []auth.Option{
		auth.WithAPI(auth.NewRESTAPI(tc)),
		auth.WithStore(s.store),
		auth.WithLogger(s.logger),
		auth.WithAutoRefresh(s.autoRefresh),
	}
	if s.storageKey != "" {
		authOpts = append(authOpts, auth.WithStorageKey(s.storageKey))
	}
	c.Auth = auth.New(authOpts...)

	c.Realtime = realtime.New(tc.BaseURL(), realtime.NewTransportOpener(tc),
		realtime.WithTokenFunc(c.Auth.AccessToken),
		realtime.WithLogger(s.logger),
	)

	c.Auth.Restore(context.Background())

	return c, nil
}

// From starts a query against the given table, authenticated with the
// current session's access token.
func (c *Client) From(table string) *query.Builder {
	return query.New(c.transport, table)
}

// Transport exposes the underlying HTTP client for custom API calls.
func (c *Client) Transport() *transport.Client {
	return c.transport
}
