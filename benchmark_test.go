package ttlcache

import (
	"strconv"
	"testing"
	"time"

	bc "github.com/allegro/bigcache/v3"
	rc "github.com/dgraph-io/ristretto"
)

// Baselines against the byte-store caches this package would otherwise sit
// on top of. Not apples to apples — ristretto is admission-based, bigcache
// has no per-entry TTL — but useful to keep the engine honest.

const benchEntries = 1 << 14

func benchKeys() []string {
	keys := make([]string, benchEntries)
	for i := range keys {
		keys[i] = "k" + strconv.Itoa(i)
	}
	return keys
}

func BenchmarkCacheSet(b *testing.B) {
	cache := WithCapacity[string, []byte](benchEntries)
	keys := benchKeys()
	val := []byte("0123456789abcdef")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(keys[i%benchEntries], val, time.Hour)
	}
}

func BenchmarkCacheGet(b *testing.B) {
	cache := WithCapacity[string, []byte](benchEntries)
	keys := benchKeys()
	val := []byte("0123456789abcdef")
	for _, k := range keys {
		cache.Set(k, val, time.Hour)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			cache.Get(keys[i%benchEntries])
			i++
		}
	})
}

func BenchmarkRistrettoSet(b *testing.B) {
	cache, err := rc.NewCache(&rc.Config{
		NumCounters: benchEntries * 10,
		MaxCost:     benchEntries,
		BufferItems: 64,
	})
	if err != nil {
		b.Fatal(err)
	}
	defer cache.Close()
	keys := benchKeys()
	val := []byte("0123456789abcdef")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.SetWithTTL(keys[i%benchEntries], val, 1, time.Hour)
	}
}

func BenchmarkRistrettoGet(b *testing.B) {
	cache, err := rc.NewCache(&rc.Config{
		NumCounters: benchEntries * 10,
		MaxCost:     benchEntries,
		BufferItems: 64,
	})
	if err != nil {
		b.Fatal(err)
	}
	defer cache.Close()
	keys := benchKeys()
	val := []byte("0123456789abcdef")
	for _, k := range keys {
		cache.SetWithTTL(k, val, 1, time.Hour)
	}
	cache.Wait()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			cache.Get(keys[i%benchEntries])
			i++
		}
	})
}

func BenchmarkBigCacheSet(b *testing.B) {
	cache, err := bc.NewBigCache(bc.DefaultConfig(time.Hour))
	if err != nil {
		b.Fatal(err)
	}
	defer cache.Close()
	keys := benchKeys()
	val := []byte("0123456789abcdef")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cache.Set(keys[i%benchEntries], val)
	}
}

func BenchmarkBigCacheGet(b *testing.B) {
	cache, err := bc.NewBigCache(bc.DefaultConfig(time.Hour))
	if err != nil {
		b.Fatal(err)
	}
	defer cache.Close()
	keys := benchKeys()
	val := []byte("0123456789abcdef")
	for _, k := range keys {
		_ = cache.Set(k, val)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = cache.Get(keys[i%benchEntries])
			i++
		}
	})
}
