package search

import (
	"container/list"
	"fmt"

	"github.com/morlock-shogi/structa/pkg/shogi"
)

// perEntryOverhead is the implementation's estimate of bytes consumed per stored
// entry under an ordered-map representation (hash, remaining-ply count and the
// list/map bookkeeping around them).
const perEntryOverhead = 200

// UnreachabilityTable caches "this position could not reach the target in R
// remaining plies", LRU-evicted against a byte budget. It is not safe for concurrent
// use: the engine is single-threaded and owns exactly one table per search call.
type UnreachabilityTable interface {
	// Lookup reports a hit iff an entry exists whose failed_remain d satisfies
	// d-remain == 0 or d-remain > margin.
	Lookup(hash shogi.ZobristHash, remain, margin int) bool
	// Store inserts an entry for hash, or tightens it to failed_remain = remain if
	// remain is strictly larger than what is already cached.
	Store(hash shogi.ZobristHash, remain int)

	Stats() TableStats
}

// TableStats mirrors the bookkeeping the search engine reports alongside node counts.
type TableStats struct {
	Lookups, Hits             int
	Stores, Updates           int
	Evictions, Size, Capacity int
}

type entry struct {
	hash         shogi.ZobristHash
	failedRemain int
}

// lruTable is an ordered-map-backed unreachability cache: a map from hash to its
// list element for O(1) lookup, and a doubly-linked list ordered by recency for O(1)
// eviction of the least-recently-used entry.
type lruTable struct {
	capacity int
	order    *list.List
	index    map[shogi.ZobristHash]*list.Element
	stats    TableStats
}

// NewUnreachabilityTable derives capacity from a memory budget: memoryBytes /
// perEntryOverhead, floored at 1 so a tiny budget still caches something.
func NewUnreachabilityTable(memoryBytes int64) UnreachabilityTable {
	capacity := int(memoryBytes / perEntryOverhead)
	if capacity < 1 {
		capacity = 1
	}
	return &lruTable{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[shogi.ZobristHash]*list.Element),
		stats:    TableStats{Capacity: capacity},
	}
}

func (t *lruTable) Lookup(hash shogi.ZobristHash, remain, margin int) bool {
	t.stats.Lookups++

	el, ok := t.index[hash]
	if !ok {
		return false
	}
	e := el.Value.(*entry)

	delta := e.failedRemain - remain
	if delta != 0 && delta <= margin {
		return false
	}

	t.order.MoveToFront(el)
	t.stats.Hits++
	return true
}

func (t *lruTable) Store(hash shogi.ZobristHash, remain int) {
	if el, ok := t.index[hash]; ok {
		e := el.Value.(*entry)
		// A larger failed_remain subsumes smaller ones by monotonicity (failing with
		// R plies available also fails with fewer), so only a strictly larger value
		// tightens the cached bound. A no-op restore of an already-subsumed value
		// must not bump recency, or a flood of stale re-stores could keep cold
		// entries artificially "recent" and evict genuinely fresher ones first.
		if remain > e.failedRemain {
			e.failedRemain = remain
			t.order.MoveToFront(el)
			t.stats.Updates++
		}
		return
	}

	el := t.order.PushFront(&entry{hash: hash, failedRemain: remain})
	t.index[hash] = el
	t.stats.Stores++
	t.stats.Size++

	if t.order.Len() > t.capacity {
		lru := t.order.Back()
		t.order.Remove(lru)
		delete(t.index, lru.Value.(*entry).hash)
		t.stats.Evictions++
		t.stats.Size--
	}
}

func (t *lruTable) Stats() TableStats {
	return t.stats
}

func (t *lruTable) String() string {
	return fmt.Sprintf("UnreachabilityTable[%v/%v entries]", t.stats.Size, t.stats.Capacity)
}
