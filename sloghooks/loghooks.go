// Package sloghooks logs ttlcache hook events through log/slog, with
// sampling for the events that fire on every contended read.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/ttlcache"
)

type Options struct {
	// Sampling to avoid floods on hot events; 0/1 = log all.
	EvictedEvery   uint64
	EscalatedEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	evictedCtr   atomic.Uint64
	escalatedCtr atomic.Uint64
}

var _ ttlcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n <= 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Evicted() {
	if sample(h.opts.EvictedEvery, &h.evictedCtr) {
		h.l.Debug("ttlcache: evicted soonest-expiring entry")
	}
}

func (h *Hooks) Purged(n int) {
	h.l.Debug("ttlcache: purged expired entries", slog.Int("removed", n))
}

func (h *Hooks) Escalated() {
	if sample(h.opts.EscalatedEvery, &h.escalatedCtr) {
		h.l.Debug("ttlcache: reader escalated to write lock")
	}
}

func (h *Hooks) CopyError(err error) {
	h.l.Error("ttlcache: copy-on-read failed", slog.Any("err", err))
}
