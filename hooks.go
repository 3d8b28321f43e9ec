package ttlcache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths, some with the cache lock held.
type Hooks interface {
	// An entry was evicted to keep the cache under its capacity bound.
	Evicted()

	// A purge pass removed n expired entries (n > 0).
	Purged(n int)

	// A reader observed expired entries and escalated to the write lock.
	// Under contention many readers escalate for one structurally
	// necessary purge; watch this to decide if that matters to you.
	Escalated()

	// The copy-on-read codec failed and the lookup was degraded to a miss.
	CopyError(err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Evicted()        {}
func (NopHooks) Purged(int)      {}
func (NopHooks) Escalated()      {}
func (NopHooks) CopyError(error) {}
