package basekit

import (
	"github.com/dmitrymomot/basekit/pkg/config"
	"github.com/dmitrymomot/basekit/pkg/logger"
)

// Config holds client settings loadable from the environment.
type Config struct {
	URL string        `env:"BASEKIT_URL,required"` // URL is the backend base URL.
	Key string        `env:"BASEKIT_KEY"`          // Key is the project API key sent with every request.
	Log logger.Config // Log configures SDK diagnostics via LOG_* variables.
}

// apiKeyHeader carries the project API key alongside the user bearer token.
const apiKeyHeader = "X-API-Key"

// NewFromEnv builds a client from BASEKIT_* environment variables. SDK
// diagnostics are logged per the LOG_* variables. Explicit options are
// applied after the environment and take precedence.
func NewFromEnv(opts ...Option) (*Client, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	envOpts := []Option{WithLogger(logger.NewFromConfig(cfg.Log))}
	if cfg.Key != "" {
		envOpts = append(envOpts, WithHeader(apiKeyHeader, cfg.Key))
	}
	return New(cfg.URL, append(envOpts, opts...)...)
}
