package lru

import (
	"context"

	"github.com/rs/zerolog"
)

type Option[K comparable, V any] func(*Cache[K, V])

// OnEvict is called with an entry evicted to make room for a new one.
type OnEvict[K comparable, V any] func(key K, value V)

// WithOnEvict sets a function to be called after evicting a value from the cache.
// It is not called for Remove or Clear.
func WithOnEvict[K comparable, V any](onEvict OnEvict[K, V]) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvict = onEvict
	}
}

type Getter[K comparable, V any] func(ctx context.Context, key K) (V, error)

// WithGetter sets a function to be used by Load to populate the cache.
func WithGetter[K comparable, V any](getter Getter[K, V]) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.getter = getter
	}
}

// WithLogger sets the logger for cache events. Events are logged at debug level,
// failures at warn and error.
func WithLogger[K comparable, V any](log zerolog.Logger) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.log = log
	}
}
