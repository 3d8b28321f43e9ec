package ttlcache

import (
	"time"

	c "github.com/unkn0wn-root/ttlcache/codec"
)

// OverwritePolicy decides which expiry instant governs eviction order when
// Set overwrites a key that already has a live entry. The stored value is
// replaced either way.
type OverwritePolicy int

const (
	// OverwriteAlways files the key under the new expiry, even when it is
	// sooner than the old one. Default.
	OverwriteAlways OverwritePolicy = iota

	// OverwriteExtendOnly keeps the later of the old and new expiry, so a
	// refresh with a shorter TTL cannot move the key forward in the
	// eviction order.
	OverwriteExtendOnly
)

const defaultGranularity = 10 * time.Millisecond

// Options tune the behavior of the cache.
// The zero value is valid: unbounded, 10ms granularity, OverwriteAlways,
// values returned as stored, no logging.
type Options[V any] struct {
	// Capacity is a soft bound on resident entries; <= 0 means unbounded.
	// When inserting a new key at capacity, the soonest-expiring entry is
	// evicted first. Overwrites never evict.
	Capacity int

	// Granularity truncates expiry instants so near-simultaneous writes
	// share an index bucket. 0 => 10ms. Use time.Nanosecond to disable
	// rounding in all but name.
	Granularity time.Duration

	Overwrite OverwritePolicy // default OverwriteAlways

	// CopyOnRead, when set, detaches values on Get by an encode/decode
	// roundtrip. Without it Get returns the value as stored: fine for
	// pointer-free values, shared memory otherwise — an entry may be
	// evicted the instant the lock is released.
	CopyOnRead c.Codec[V]

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// New returns an unbounded concurrent cache with default options.
func New[K comparable, V any]() *Cache[K, V] {
	return NewWithOptions[K](Options[V]{})
}

// WithCapacity returns a concurrent cache bounded to n resident entries.
func WithCapacity[K comparable, V any](n int) *Cache[K, V] {
	return NewWithOptions[K](Options[V]{Capacity: n})
}

// NewWithOptions returns a concurrent cache configured by opts.
func NewWithOptions[K comparable, V any](opts Options[V]) *Cache[K, V] {
	return newCache[K](opts)
}
