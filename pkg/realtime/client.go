package realtime

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrymomot/basekit/pkg/retry"
	"github.com/dmitrymomot/basekit/pkg/transport"
)

// Wildcard is the channel name subscribing to changes across all tables.
const Wildcard = "*"

// Stream is the minimal surface the channel needs from an open push
// connection. *transport.EventStream satisfies it.
type Stream interface {
	Events() <-chan transport.Event
	Close()
}

// StreamOpener opens push connections. Tests substitute fakes; production
// use wraps *transport.Client via NewTransportOpener.
type StreamOpener interface {
	OpenEventStream(ctx context.Context, url string) (Stream, error)
}

type transportOpener struct {
	client *transport.Client
}

func (o transportOpener) OpenEventStream(ctx context.Context, url string) (Stream, error) {
	return o.client.OpenEventStream(ctx, url)
}

// NewTransportOpener adapts a transport client to the StreamOpener interface.
func NewTransportOpener(client *transport.Client) StreamOpener {
	return transportOpener{client: client}
}

// Client is the registry of realtime channels. It holds at most one channel
// per name: requesting a known name returns the same instance.
type Client struct {
	baseURL       string
	opener        StreamOpener
	tokenFn       transport.TokenFunc
	logger        *slog.Logger
	backoff       retry.Strategy
	maxReconnects int

	mu       sync.Mutex
	channels map[string]*Channel
}

// New creates a channel registry for the given base URL.
func New(baseURL string, opener StreamOpener, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		opener:  opener,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		backoff: retry.Exponential{
			InitialInterval: defaultReconnectBase,
			Multiplier:      2,
		},
		maxReconnects: defaultMaxReconnects,
		channels:      make(map[string]*Channel),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Channel returns the channel registered under name, creating it on first
// reference. Use Wildcard to receive changes for all tables.
func (c *Client) Channel(name string) *Channel {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ch, exists := c.channels[name]; exists {
		return ch
	}
	ch := newChannel(name, c)
	c.channels[name] = ch
	return ch
}

// RemoveChannel unsubscribes and removes the channel registered under name.
// Removing an unknown name is a no-op.
func (c *Client) RemoveChannel(name string) {
	c.mu.Lock()
	ch, exists := c.channels[name]
	delete(c.channels, name)
	c.mu.Unlock()

	if exists {
		ch.Unsubscribe()
	}
}

// RemoveAllChannels unsubscribes and removes every registered channel.
func (c *Client) RemoveAllChannels() {
	c.mu.Lock()
	channels := make([]*Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		channels = append(channels, ch)
	}
	c.channels = make(map[string]*Channel)
	c.mu.Unlock()

	for _, ch := range channels {
		ch.Unsubscribe()
	}
}

// streamURL builds the push endpoint URL for a channel: the table parameter
// is omitted for the wildcard channel, the token parameter when no token is
// available.
func (c *Client) streamURL(ch *Channel) string {
	endpoint := c.baseURL + "/api/realtime"

	query := url.Values{}
	if ch.name != Wildcard {
		query.Set("table", ch.name)
	}
	if c.tokenFn != nil {
		if token := c.tokenFn(); token != "" {
			query.Set("token", token)
		}
	}
	for _, filter := range ch.filterParams() {
		query.Add("filter", filter)
	}

	if len(query) == 0 {
		return endpoint
	}
	return endpoint + "?" + query.Encode()
}
