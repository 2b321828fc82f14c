// Package config loads typed configuration structs from environment
// variables using `env:` field tags, with optional .env file support for
// local development.
//
// Usage:
//
//	type Config struct {
//		BaseURL string `env:"BASEKIT_URL,required"`
//		Debug   bool   `env:"BASEKIT_DEBUG" envDefault:"false"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package config
