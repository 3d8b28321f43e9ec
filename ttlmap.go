package ttlcache

import (
	"time"

	"github.com/unkn0wn-root/ttlcache/internal/expheap"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Map is the single-threaded cache engine: a value map and an expiry index
// kept consistent under insert, overwrite, lookup and eviction. Not safe for
// concurrent use — that is Cache's job.
//
// Map does not purge on Get. It may hand back a value whose expiry already
// passed; callers wanting expiry-safe reads must consult HasExpiredItems
// (and purge) first, which is exactly the protocol Cache implements.
type Map[K comparable, V any] struct {
	entries     map[K]entry[V]
	index       *expheap.Index[K]
	capacity    int
	granularity time.Duration
	policy      OverwritePolicy
	hooks       Hooks
}

// NewMap returns an unbounded engine with default options.
func NewMap[K comparable, V any]() *Map[K, V] {
	return newMap[K](Options[V]{})
}

// NewMapWithCapacity returns an engine bounded to n resident entries.
func NewMapWithCapacity[K comparable, V any](n int) *Map[K, V] {
	return newMap[K](Options[V]{Capacity: n})
}

func newMap[K comparable, V any](opts Options[V]) *Map[K, V] {
	return &Map[K, V]{
		entries:     make(map[K]entry[V]),
		index:       expheap.New[K](),
		capacity:    opts.Capacity,
		granularity: coalesce[time.Duration](opts.Granularity, defaultGranularity),
		policy:      opts.Overwrite,
		hooks:       coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

// Get returns the value stored for key, expired or not. See the type comment.
func (m *Map[K, V]) Get(key K) (V, bool) {
	e, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with expiry now+ttl, truncated to the
// configured granularity, and reports whether the key was already present.
//
// Inserting a new key at capacity evicts the soonest-expiring entry first.
// Overwrites never evict; they re-file the key's old index record under the
// new expiry (or keep the later of the two under OverwriteExtendOnly).
func (m *Map[K, V]) Set(key K, value V, ttl time.Duration) bool {
	expiry := time.Now().Add(ttl).Truncate(m.granularity)

	old, had := m.entries[key]
	if !had && m.capacity > 0 && len(m.entries) >= m.capacity {
		m.evict()
	}
	if had && m.policy == OverwriteExtendOnly && old.expiresAt.After(expiry) {
		expiry = old.expiresAt
	}

	m.entries[key] = entry[V]{value: value, expiresAt: expiry}
	m.index.Insert(expiry, key)
	return had
}

// Remove deletes key from the value map and the expiry index.
func (m *Map[K, V]) Remove(key K) bool {
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	m.index.Remove(key)
	return true
}

// HasExpiredItems reports whether the soonest expiry is at or before now.
func (m *Map[K, V]) HasExpiredItems() bool {
	min, ok := m.index.PeekMin()
	return ok && !min.After(time.Now())
}

// RemoveExpiredItems pops expired index minima and deletes the matching
// entries until the minimum is in the future or the index drains, reporting
// whether anything was removed. A popped key with no resident entry is
// skipped, so the loop also tolerates index records pointing at superseded
// values (a pending-count overwrite scheme would produce those; the eager
// re-filing in Set does not).
func (m *Map[K, V]) RemoveExpiredItems() bool {
	removed := 0
	for m.HasExpiredItems() {
		key, _ := m.index.PopMin()
		if _, ok := m.entries[key]; ok {
			delete(m.entries, key)
			removed++
		}
	}
	if removed > 0 {
		m.hooks.Purged(removed)
	}
	return removed > 0
}

// Clear drops all entries.
func (m *Map[K, V]) Clear() {
	clear(m.entries)
	m.index.Clear()
}

// Len counts resident entries, including expired ones not yet purged.
func (m *Map[K, V]) Len() int { return len(m.entries) }

func (m *Map[K, V]) IsEmpty() bool { return len(m.entries) == 0 }

// Capacity returns the configured bound; <= 0 means unbounded.
func (m *Map[K, V]) Capacity() int { return m.capacity }

// evict removes one entry with the minimum expiry. Among ties, one arbitrary
// member of the earliest bucket per call. On an empty index this is a no-op
// and the pending insert proceeds without bound enforcement.
func (m *Map[K, V]) evict() {
	key, ok := m.index.PopMin()
	if !ok {
		return
	}
	delete(m.entries, key)
	m.hooks.Evicted()
}
