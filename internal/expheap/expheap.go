// Package expheap orders cache keys by expiry instant, soonest first.
//
// Keys sharing an instant are grouped in one bucket; the heap carries exactly
// one entry per live bucket, tracked by a position map so removing an
// arbitrary key (and with it, possibly its bucket) repairs the heap in
// O(log n) without scanning. Minimum queries never mutate, so callers may
// serve PeekMin under a shared lock.
package expheap

import (
	"container/heap"
	"time"
)

// Index is an ordered multimap from expiry instant to the keys filed under
// it. Not safe for concurrent use.
type Index[K comparable] struct {
	instants instantHeap
	buckets  map[int64][]K // unix nanos -> keys expiring at that instant
	at       map[K]int64   // where each key is filed
}

func New[K comparable]() *Index[K] {
	return &Index[K]{
		instants: instantHeap{pos: make(map[int64]int)},
		buckets:  make(map[int64][]K),
		at:       make(map[K]int64),
	}
}

// Len returns the number of keys filed in the index.
func (x *Index[K]) Len() int { return len(x.at) }

// Insert files key under instant. A key already present is re-filed: its old
// record is removed first, so a key occupies at most one bucket at a time.
func (x *Index[K]) Insert(instant time.Time, key K) {
	if _, ok := x.at[key]; ok {
		x.Remove(key)
	}
	nanos := instant.UnixNano()
	b, live := x.buckets[nanos]
	if !live {
		heap.Push(&x.instants, nanos)
	}
	x.buckets[nanos] = append(b, key)
	x.at[key] = nanos
}

// Remove unfiles key, wherever it is filed. An emptied bucket is deleted
// together with its heap entry, so minimum queries never see dead groups.
func (x *Index[K]) Remove(key K) bool {
	nanos, ok := x.at[key]
	if !ok {
		return false
	}
	delete(x.at, key)

	b := x.buckets[nanos]
	for i, k := range b {
		if k == key {
			b[i] = b[len(b)-1]
			b = b[:len(b)-1]
			break
		}
	}
	if len(b) == 0 {
		delete(x.buckets, nanos)
		heap.Remove(&x.instants, x.instants.pos[nanos])
	} else {
		x.buckets[nanos] = b
	}
	return true
}

// PeekMin returns the earliest instant with at least one key filed under it.
// Read-only.
func (x *Index[K]) PeekMin() (time.Time, bool) {
	if len(x.instants.items) == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, x.instants.items[0]), true
}

// PopMin unfiles and returns one key from the earliest bucket. Ties are
// broken arbitrarily, one key per call; the bucket survives until its last
// member is popped.
func (x *Index[K]) PopMin() (K, bool) {
	var zero K
	if len(x.instants.items) == 0 {
		return zero, false
	}
	nanos := x.instants.items[0]
	b := x.buckets[nanos]
	key := b[len(b)-1]
	if len(b) == 1 {
		delete(x.buckets, nanos)
		heap.Pop(&x.instants)
	} else {
		x.buckets[nanos] = b[:len(b)-1]
	}
	delete(x.at, key)
	return key, true
}

// Clear drops everything.
func (x *Index[K]) Clear() {
	x.instants.items = x.instants.items[:0]
	clear(x.instants.pos)
	clear(x.buckets)
	clear(x.at)
}

// instantHeap is a min-heap of bucket instants with a position map, the
// container/heap indexed-item pattern, so a bucket emptied by Remove can be
// cut out of the middle of the heap.
type instantHeap struct {
	items []int64
	pos   map[int64]int
}

func (h instantHeap) Len() int           { return len(h.items) }
func (h instantHeap) Less(i, j int) bool { return h.items[i] < h.items[j] }

func (h instantHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i]] = i
	h.pos[h.items[j]] = j
}

func (h *instantHeap) Push(v any) {
	n := v.(int64)
	h.pos[n] = len(h.items)
	h.items = append(h.items, n)
}

func (h *instantHeap) Pop() any {
	old := h.items
	n := len(old)
	v := old[n-1]
	h.items = old[:n-1]
	delete(h.pos, v)
	return v
}
