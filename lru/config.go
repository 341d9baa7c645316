package lru

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config describes a cache in terms of environment variables.
type Config struct {
	Capacity int `env:"CAPACITY,required"`
}

// LoadConfig reads the config from the environment, with every variable name
// prefixed by prefix, e.g. "SESSIONS_" reads SESSIONS_CAPACITY.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: prefix}); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	return cfg, nil
}

// NewFromConfig returns an empty cache sized by cfg.
func NewFromConfig[K comparable, V any](cfg Config, options ...Option[K, V]) (*Cache[K, V], error) {
	return New[K, V](cfg.Capacity, options...)
}
