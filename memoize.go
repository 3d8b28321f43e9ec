package ttlcache

import (
	"context"
	"time"
)

// Producer computes the value for a key and the TTL its cached copy should
// live for. The TTL is a duration interpreted relative to the moment the
// value is stored, not the moment it was produced.
type Producer[K comparable, V any] func(ctx context.Context, key K) (V, time.Duration, error)

// CacheFunc returns a version of producer that caches successful results,
// keyed by the argument. A hit returns the cached value without invoking
// producer. On a miss, producer runs with no cache lock held; a success is
// stored under its returned TTL, an error is returned to the caller
// unchanged and nothing is stored (the next call for that key invokes
// producer again).
//
// Concurrent misses on the same key are not deduplicated: each may invoke
// producer and each overwrites the cache in turn, last writer wins. Callers
// needing single-flight semantics must layer it on top.
func (cc *Cache[K, V]) CacheFunc(producer Producer[K, V]) func(context.Context, K) (V, error) {
	return func(ctx context.Context, key K) (V, error) {
		if v, ok := cc.Get(key); ok {
			return v, nil
		}
		v, ttl, err := producer(ctx, key)
		if err != nil {
			var zero V
			return zero, err
		}
		cc.Set(key, v, ttl)
		return v, nil
	}
}
