package realtime

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/basekit/pkg/retry"
	"github.com/dmitrymomot/basekit/pkg/transport"
)

const (
	defaultReconnectBase = time.Second
	defaultMaxReconnects = 10
)

// Option is a functional option for configuring the Client
type Option func(*Client)

// WithTokenFunc sets the bearer token source for stream URLs.
func WithTokenFunc(fn transport.TokenFunc) Option {
	return func(c *Client) {
		c.tokenFn = fn
	}
}

// WithLogger sets the logger used for channel diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBackoff sets the reconnection backoff strategy.
func WithBackoff(strategy retry.Strategy) Option {
	return func(c *Client) {
		if strategy != nil {
			c.backoff = strategy
		}
	}
}

// WithMaxReconnects sets how many consecutive reconnection attempts are made
// before a channel transitions to the terminal CLOSED state.
func WithMaxReconnects(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxReconnects = n
		}
	}
}
