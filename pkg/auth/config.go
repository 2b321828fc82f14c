package auth

import "time"

// Config holds manager settings loadable from the environment.
type Config struct {
	StorageKey    string        `env:"BASEKIT_AUTH_STORAGE_KEY" envDefault:"basekit.session"` // StorageKey is the key the persisted session record is stored under.
	AutoRefresh   bool          `env:"BASEKIT_AUTH_AUTO_REFRESH" envDefault:"true"`           // AutoRefresh enables the silent token renewal timer.
	RefreshMargin time.Duration `env:"BASEKIT_AUTH_REFRESH_MARGIN" envDefault:"60s"`          // RefreshMargin is how long before expiry the refresh fires.
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		StorageKey:    "basekit.session",
		AutoRefresh:   true,
		RefreshMargin: 60 * time.Second,
	}
}
