package heuristic

import "github.com/morlock-shogi/structa/pkg/shogi"

// Cache memoizes NeedMovesCount by (current, target) position hash. It mirrors the
// second, smaller "cost_tt" the original prover reports alongside the unreachability
// table's own lookup/hit counters: since the target is fixed for a whole search but
// its own per-square cost computation re-scans all 81 squares on every node,
// memoizing it by the pair of Zobrist hashes removes repeated work whenever the DFS
// revisits a position through a different move order (a common occurrence once
// search.UnreachabilityTable starts pruning siblings). No eviction: a single search's
// live node count bounds the number of distinct (current, target) pairs that can
// ever be queried, since target never changes within one call.
type Cache struct {
	m       map[cacheKey]result
	lookups int
	hits    int
}

type cacheKey struct {
	current, target shogi.ZobristHash
}

type result struct {
	needBlack, needWhite int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{m: make(map[cacheKey]result)}
}

// NeedMovesCount returns NeedMovesCount(current, target), computing and memoizing it
// on a cache miss.
func (c *Cache) NeedMovesCount(current, target *shogi.Board) (int, int) {
	c.lookups++
	key := cacheKey{current.Hash(), target.Hash()}
	if r, ok := c.m[key]; ok {
		c.hits++
		return r.needBlack, r.needWhite
	}

	nb, nw := NeedMovesCount(current, target)
	c.m[key] = result{needBlack: nb, needWhite: nw}
	return nb, nw
}

// CacheStats mirrors the search engine's reported cost-cache counters.
type CacheStats struct {
	Lookups, Hits, Size int
}

// Stats returns the cache's lookup/hit/size counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{Lookups: c.lookups, Hits: c.hits, Size: len(c.m)}
}
