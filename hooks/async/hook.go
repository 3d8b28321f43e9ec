// Package asynchook decouples hook handling from the cache's hot paths.
// Events are queued to a bounded channel and replayed by worker goroutines;
// when the queue is full the event is dropped rather than blocking a caller
// that holds the cache lock.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    EscalatedEvery: 100, // sample: ~every 100th escalation
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache := ttlcache.NewWithOptions[string](ttlcache.Options[User]{
//	    Capacity: 10_000,
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/ttlcache"
)

type Hooks struct {
	inner ttlcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ ttlcache.Hooks = (*Hooks)(nil)

func New(inner ttlcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Evicted()            { h.try(func() { h.inner.Evicted() }) }
func (h *Hooks) Purged(n int)        { h.try(func() { h.inner.Purged(n) }) }
func (h *Hooks) Escalated()          { h.try(func() { h.inner.Escalated() }) }
func (h *Hooks) CopyError(err error) { h.try(func() { h.inner.CopyError(err) }) }
