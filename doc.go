// Package ttlcache implements an in-memory key/value cache where every entry
// carries an absolute expiry instant and the capacity bound, when set, is
// enforced by evicting the entry expiring soonest. Expired entries are purged
// lazily: no timers, no background goroutines — cleanup happens on the next
// operation that observes an expired minimum.
//
// Components:
//   - Map[K, V]: the single-threaded engine. A value map plus an expiry index
//     (internal/expheap) kept consistent under set/overwrite/remove/evict.
//   - Cache[K, V]: Map behind a sync.RWMutex, safe for concurrent use.
//     Reads stay on the shared lock unless expired entries are resident, in
//     which case the reader escalates to the write lock and purges first.
//   - CacheFunc: memoizes a Producer (key -> value, TTL, error) through the
//     cache. Errors pass through uncached. No single-flight: concurrent
//     misses on one key may each invoke the producer; last writer wins.
//
// Expiry instants are truncated to a coarse granularity (10ms by default) so
// entries written close together share an index bucket and tie handling is a
// routinely exercised path.
//
// Typical use:
//
//	cache := ttlcache.WithCapacity[string, User](10_000)
//	cache.Set("u:1", u, 5*time.Minute)
//	u, ok := cache.Get("u:1")
//
//	lookup := cache.CacheFunc(func(ctx context.Context, id string) (User, time.Duration, error) {
//	    return fetchUser(ctx, id) // (User, ttl, error)
//	})
//	u, err := lookup(ctx, "u:1")
package ttlcache
