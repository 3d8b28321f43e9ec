package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	c "github.com/unkn0wn-root/ttlcache/codec"
)

var ErrNilClient = errors.New("source: nil redis client")

const defaultRedisTTL = 10 * time.Minute

// Redis produces values from a Redis tier, turning the key's remaining
// PTTL into the in-process TTL so the memoized copy never outlives the
// Redis entry. Keys without a Redis expiry get DefaultTTL.
type Redis[V any] struct {
	rdb         goredis.UniversalClient
	codec       c.Codec[V]
	defaultTTL  time.Duration
	closeClient bool
}

type RedisConfig[V any] struct {
	Client      goredis.UniversalClient
	Codec       c.Codec[V]
	DefaultTTL  time.Duration // TTL for keys Redis does not expire; 0 => 10m
	CloseClient bool          // set true only if this source exclusively owns the client
}

func NewRedis[V any](cfg RedisConfig[V]) (*Redis[V], error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	if cfg.Codec == nil {
		return nil, errors.New("source: codec is required")
	}
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	return &Redis[V]{
		rdb:         cfg.Client,
		codec:       cfg.Codec,
		defaultTTL:  ttl,
		closeClient: cfg.CloseClient,
	}, nil
}

// Produce fetches key's value and remaining TTL in one round trip.
// A missing key returns ErrNotFound.
func (s *Redis[V]) Produce(ctx context.Context, key string) (V, time.Duration, error) {
	var zero V

	pipe := s.rdb.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && err != goredis.Nil {
		return zero, 0, fmt.Errorf("source: redis fetch %q: %w", key, err)
	}
	if getCmd.Err() == goredis.Nil {
		return zero, 0, ErrNotFound
	}

	raw, err := getCmd.Bytes()
	if err != nil {
		return zero, 0, fmt.Errorf("source: redis fetch %q: %w", key, err)
	}
	v, err := s.codec.Decode(raw)
	if err != nil {
		return zero, 0, fmt.Errorf("source: decode %q: %w", key, err)
	}

	// PTTL reports a negative duration for keys without an expiry.
	ttl := ttlCmd.Val()
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	return v, ttl, nil
}

// Close releases the underlying redis client only when this source owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis[V]) Close() error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
