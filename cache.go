package ttlcache

import (
	"sync"
	"time"

	c "github.com/unkn0wn-root/ttlcache/codec"
)

// Cache wraps a Map behind a reader/writer lock. Safe for use from many
// goroutines; readers run concurrently, writers serialize.
//
// Freshness is best-effort: once a lookup's expiry check has run under a
// lock, no expired value is returned, but a value observed as present may
// expire the instant the lock is released. TTLs are not a transaction
// boundary.
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	m     *Map[K, V]
	log   Logger
	hooks Hooks
	copy  c.Codec[V]
}

func newCache[K comparable, V any](opts Options[V]) *Cache[K, V] {
	return &Cache[K, V]{
		m:     newMap[K](opts),
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
		copy:  opts.CopyOnRead,
	}
}

// Get returns the value for key if it is resident and unexpired.
//
// Fast path: shared lock only, taken when no resident entry has expired.
// Otherwise the reader escalates to the write lock and purges before the
// lookup. Between the two locks another caller may have purged (or written
// new data) already; the purge is idempotent and safe to run redundantly.
// Every reader observing expired entries escalates even though one purge
// would do — accepted contention, surfaced via Hooks.Escalated.
func (cc *Cache[K, V]) Get(key K) (V, bool) {
	cc.mu.RLock()
	if !cc.m.HasExpiredItems() {
		v, ok := cc.m.Get(key)
		cc.mu.RUnlock()
		if !ok {
			var zero V
			return zero, false
		}
		return cc.copyOut(v)
	}
	cc.mu.RUnlock()

	cc.hooks.Escalated()
	cc.mu.Lock()
	if cc.m.RemoveExpiredItems() {
		cc.log.Debug("purged expired entries on read", Fields{"len": cc.m.Len()})
	}
	v, ok := cc.m.Get(key)
	cc.mu.Unlock()
	if !ok {
		var zero V
		return zero, false
	}
	return cc.copyOut(v)
}

// Set stores value under key for ttl and reports whether the key was
// already present.
func (cc *Cache[K, V]) Set(key K, value V, ttl time.Duration) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.m.Set(key, value, ttl)
}

// Remove deletes key, reporting whether it was present.
func (cc *Cache[K, V]) Remove(key K) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.m.Remove(key)
}

// Clear drops all entries.
func (cc *Cache[K, V]) Clear() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.m.Clear()
}

// RemoveExpiredItems purges expired entries now instead of waiting for the
// next read to trip over them. Reports whether anything was removed.
func (cc *Cache[K, V]) RemoveExpiredItems() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.m.RemoveExpiredItems()
}

// Len counts resident entries, including expired ones not yet purged.
func (cc *Cache[K, V]) Len() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.m.Len()
}

func (cc *Cache[K, V]) IsEmpty() bool {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.m.IsEmpty()
}

// Capacity returns the configured bound; <= 0 means unbounded.
func (cc *Cache[K, V]) Capacity() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.m.Capacity()
}

// HasExpiredItems reports whether a purge would remove anything right now.
func (cc *Cache[K, V]) HasExpiredItems() bool {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.m.HasExpiredItems()
}

// copyOut detaches v through the copy-on-read codec when one is configured.
// A codec failure degrades the hit to a miss: handing out the shared value
// after a failed detach would break the aliasing contract silently.
func (cc *Cache[K, V]) copyOut(v V) (V, bool) {
	if cc.copy == nil {
		return v, true
	}
	b, err := cc.copy.Encode(v)
	if err == nil {
		out, derr := cc.copy.Decode(b)
		if derr == nil {
			return out, true
		}
		err = derr
	}
	cc.hooks.CopyError(err)
	cc.log.Error("copy-on-read failed; degrading hit to miss", Fields{"err": err})
	var zero V
	return zero, false
}
