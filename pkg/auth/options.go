package auth

import (
	"log/slog"

	"github.com/dmitrymomot/basekit/pkg/storage"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithAPI sets the backend API implementation.
func WithAPI(api API) Option {
	return func(m *Manager) {
		m.api = api
	}
}

// WithStore sets a custom persistence store.
func WithStore(store storage.Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithStorageKey sets the key the persisted session record is stored under.
func WithStorageKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.config.StorageKey = key
		}
	}
}

// WithAutoRefresh toggles the silent token renewal timer.
func WithAutoRefresh(enabled bool) Option {
	return func(m *Manager) {
		m.config.AutoRefresh = enabled
	}
}

// WithLogger sets the logger used for manager diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}
