package lru

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/rs/zerolog"

	"go.expect.digital/lrucache/internal/list"
)

// maxPrealloc bounds the up-front allocation for very large capacities.
const maxPrealloc = 4096

var (
	ErrInvalidCapacity = errors.New("invalid capacity")
	ErrNotFound        = errors.New("not found")
)

// zeroValue returns the zero value of the type.
func zeroValue[T any]() (zero T) { //nolint:ireturn
	return
}

type getterResult[V any] struct {
	err   error
	value V
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a fixed-capacity least recently used cache.
//
// The index and the recency list are guarded by one mutex. Get reorders the list,
// so every operation except Cap takes it exclusively.
type Cache[K comparable, V any] struct {
	n       int
	getter  Getter[K, V]
	onEvict OnEvict[K, V]
	log     zerolog.Logger
	stats   Stats
	cache   *list.List[entry[K, V]]
	lookup  map[K]list.Handle
	pending map[K][]chan getterResult[V]
	mu      sync.Mutex
}

// New returns an empty cache holding at most capacity entries.
func New[K comparable, V any](capacity int, options ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("new cache with capacity %d: %w", capacity, ErrInvalidCapacity)
	}

	c := &Cache[K, V]{n: capacity, log: zerolog.Nop()}

	for _, f := range options {
		f(c)
	}

	// one extra slot for the entry inserted before the tail is evicted
	hint := min(capacity+1, maxPrealloc)

	c.cache = list.New[entry[K, V]](hint)
	c.lookup = make(map[K]list.Handle, hint)
	c.pending = make(map[K][]chan getterResult[V])
	c.log = c.log.With().Str("component", "lru").Int("capacity", capacity).Logger()

	return c, nil
}

// Cap returns the max number of entries.
func (c *Cache[K, V]) Cap() int {
	return c.n
}

// Len returns the number of entries stored in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cache.Len()
}

// Get returns the value associated with the key and marks it most recently used.
// The second result is false on a miss.
func (c *Cache[K, V]) Get(key K) (V, bool) { //nolint:ireturn
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.lookup[key]
	if !ok {
		c.stats.Misses++

		return zeroValue[V](), false
	}

	c.cache.MoveToFront(h)
	c.stats.Hits++

	e, _ := c.cache.Value(h)

	return e.value, true
}

// Peek returns the value associated with the key without changing its recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) { //nolint:ireturn
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.lookup[key]
	if !ok {
		return zeroValue[V](), false
	}

	e, _ := c.cache.Value(h)

	return e.value, true
}

// Contains reports whether the key is cached, without changing its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.lookup[key]

	return ok
}

// Oldest returns the least recently used entry.
func (c *Cache[K, V]) Oldest() (K, V, bool) { //nolint:ireturn
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.cache.Back()
	if !ok {
		return zeroValue[K](), zeroValue[V](), false
	}

	e, _ := c.cache.Value(h)

	return e.key, e.value, true
}

// Put sets the value for the key and marks it most recently used. When the cache
// grows past its capacity the least recently used entry is evicted before Put returns.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	evicted, ok := c.put(key, value)
	c.mu.Unlock()

	if ok {
		c.afterEvict(evicted)
	}
}

// put must be called with the lock held.
func (c *Cache[K, V]) put(key K, value V) (entry[K, V], bool) {
	if h, ok := c.lookup[key]; ok {
		c.cache.Set(h, entry[K, V]{key: key, value: value})
		c.cache.MoveToFront(h)

		return entry[K, V]{}, false
	}

	c.lookup[key] = c.cache.PushFront(entry[K, V]{key: key, value: value})

	if c.cache.Len() <= c.n {
		return entry[K, V]{}, false
	}

	return c.evictOldest()
}

// evictOldest unlinks the tail entry and drops it from the index.
// Must be called with the lock held.
func (c *Cache[K, V]) evictOldest() (entry[K, V], bool) {
	h, ok := c.cache.Back()
	if !ok {
		return entry[K, V]{}, false
	}

	e, _ := c.cache.Remove(h)
	delete(c.lookup, e.key)
	c.stats.Evictions++

	return e, true
}

// afterEvict runs outside the lock so the callback may use the cache.
func (c *Cache[K, V]) afterEvict(e entry[K, V]) {
	c.log.Debug().Interface("key", e.key).Msg("evicted")

	if c.onEvict == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("key", e.key).Interface("panic", r).Msg("evict callback panicked")
		}
	}()

	c.onEvict(e.key, e.value)
}

// Remove deletes the entry for the key and reports whether it was present.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.lookup[key]
	if !ok {
		return false
	}

	c.cache.Remove(h)
	delete(c.lookup, key)
	c.log.Debug().Interface("key", key).Msg("removed")

	return true
}

// Clear removes all entries. The evict callback is not called.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Reset()
	clear(c.lookup)
}

// Snapshot returns the entries ordered from most to least recently used, as they
// were when Snapshot was called. The sequence may be iterated any number of times.
func (c *Cache[K, V]) Snapshot() iter.Seq2[K, V] {
	c.mu.Lock()

	entries := make([]entry[K, V], 0, c.cache.Len())
	for e := range c.cache.All() {
		entries = append(entries, e)
	}

	c.mu.Unlock()

	return func(yield func(K, V) bool) {
		for _, e := range entries {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Stats returns a copy of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

// Load returns the value associated with the key. On a miss the value is
// populated by the getter; concurrent loads of one key share a single getter call.
func (c *Cache[K, V]) Load(ctx context.Context, key K) (V, error) { //nolint:ireturn
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	return c.populateByGetter(ctx, key)
}

func (c *Cache[K, V]) populateByGetter(ctx context.Context, key K) (V, error) { //nolint:ireturn
	if c.getter == nil {
		return zeroValue[V](), fmt.Errorf("value not found for key: %v: %w", key, ErrNotFound)
	}

	c.mu.Lock()

	// Check again in case a getter finished after the miss.
	if h, ok := c.lookup[key]; ok {
		c.cache.MoveToFront(h)
		c.stats.Hits++
		e, _ := c.cache.Value(h)
		c.mu.Unlock()

		return e.value, nil
	}

	ch := make(chan getterResult[V], 1)

	c.pending[key] = append(c.pending[key], ch)
	n := len(c.pending[key])

	c.mu.Unlock()

	if n == 1 {
		go c.execGetter(context.WithoutCancel(ctx), key)
	}

	select {
	case <-ctx.Done():
		return zeroValue[V](), fmt.Errorf("wait value for key: %v: %w", key, ctx.Err())
	case msg := <-ch:
		if msg.err != nil {
			return zeroValue[V](), msg.err
		}

		return msg.value, nil
	}
}

func (c *Cache[K, V]) execGetter(ctx context.Context, key K) {
	var (
		v   V
		err error
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("exec getter for key: %v: %v", key, r) //nolint:goerr113
		}

		var (
			evicted entry[K, V]
			ok      bool
		)

		c.mu.Lock()

		switch h, cached := c.lookup[key]; {
		case err == nil && cached:
			// a Put during the load is newer than the loaded value
			c.cache.MoveToFront(h)
			e, _ := c.cache.Value(h)
			v = e.value
			c.stats.Loads++
		case err == nil:
			evicted, ok = c.put(key, v)
			c.stats.Loads++
		default:
			c.stats.LoadErrors++
		}

		waiting := c.pending[key]
		delete(c.pending, key)

		c.mu.Unlock()

		// channels are buffered, waiters that gave up do not block the send
		for _, ch := range waiting {
			ch <- getterResult[V]{value: v, err: err}
		}

		if err != nil {
			c.log.Warn().Err(err).Interface("key", key).Msg("load failed")
		} else {
			c.log.Debug().Interface("key", key).Int("waiters", len(waiting)).Msg("loaded")
		}

		if ok {
			c.afterEvict(evicted)
		}
	}()

	v, err = c.getter(ctx, key)
	if err != nil {
		err = fmt.Errorf("get value by getter for key: %v: %w", key, err)
	}
}
