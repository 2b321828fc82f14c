package basekit

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/basekit/pkg/storage"
)

type settings struct {
	httpClient  *http.Client
	logger      *slog.Logger
	store       storage.Store
	storageKey  string
	headers     map[string]string
	autoRefresh bool
}

// Option is a functional option for configuring the Client
type Option func(*settings)

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// WithLogger sets the logger shared by all subsystems, overriding the
// discard default and any environment-derived logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore sets the session persistence store. Defaults to an in-memory
// store, meaning sessions do not survive process restarts.
func WithStore(store storage.Store) Option {
	return func(s *settings) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStorageKey sets the key the persisted session record is stored under.
func WithStorageKey(key string) Option {
	return func(s *settings) {
		if key != "" {
			s.storageKey = key
		}
	}
}

// WithHeader adds a static header to every outgoing API request.
func WithHeader(key, value string) Option {
	return func(s *settings) {
		s.headers[key] = value
	}
}

// WithAutoRefresh toggles silent token renewal.
func WithAutoRefresh(enabled bool) Option {
	return func(s *settings) {
		s.autoRefresh = enabled
	}
}
