// Package source provides ready-made producers for ttlcache.CacheFunc:
// functions that fetch a value for a key from a backing system together
// with the TTL its cached copy should live for.
//
// A producer must be a pure function of the key. TTLs returned here are
// durations relative to the moment the cache stores the value.
package source

import "errors"

// ErrNotFound is returned when the backing system has no value for the key.
// CacheFunc propagates it uncached, so the next call asks the backend again.
var ErrNotFound = errors.New("source: key not found")
