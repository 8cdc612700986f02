package search_test

import (
	"testing"

	"github.com/morlock-shogi/structa/pkg/search"
	"github.com/morlock-shogi/structa/pkg/shogi"
	"github.com/stretchr/testify/assert"
)

func TestLookupMissOnEmptyTable(t *testing.T) {
	tt := search.NewUnreachabilityTable(1 << 20)
	assert.False(t, tt.Lookup(shogi.ZobristHash(1), 5, 0))
}

func TestStoreThenExactRehit(t *testing.T) {
	tt := search.NewUnreachabilityTable(1 << 20)
	tt.Store(shogi.ZobristHash(42), 5)
	assert.True(t, tt.Lookup(shogi.ZobristHash(42), 5, 0))
}

func TestMarginSuppressesWeakRehit(t *testing.T) {
	tt := search.NewUnreachabilityTable(1 << 20)
	tt.Store(shogi.ZobristHash(42), 5)

	// delta = 5-3 = 2, margin = 3: 2 is neither 0 nor > 3, so no hit.
	assert.False(t, tt.Lookup(shogi.ZobristHash(42), 3, 3))
	// delta = 2 > margin 1: hit.
	assert.True(t, tt.Lookup(shogi.ZobristHash(42), 3, 1))
}

func TestStoreKeepsLargerFailedRemain(t *testing.T) {
	tt := search.NewUnreachabilityTable(1 << 20)
	tt.Store(shogi.ZobristHash(7), 4)
	tt.Store(shogi.ZobristHash(7), 10)

	assert.True(t, tt.Lookup(shogi.ZobristHash(7), 10, 0))
	stats := tt.Stats()
	assert.Equal(t, 1, stats.Updates)
}

func TestStoreIgnoresSmallerFailedRemain(t *testing.T) {
	tt := search.NewUnreachabilityTable(1 << 20)
	tt.Store(shogi.ZobristHash(7), 10)
	tt.Store(shogi.ZobristHash(7), 4)

	stats := tt.Stats()
	assert.Equal(t, 0, stats.Updates)
}

func TestNoOpStoreDoesNotBumpRecency(t *testing.T) {
	tt := search.NewUnreachabilityTable(3 * 200) // capacity 3

	tt.Store(shogi.ZobristHash(1), 5)
	tt.Store(shogi.ZobristHash(2), 5)
	tt.Store(shogi.ZobristHash(3), 5) // LRU order back-to-front: 1, 2, 3

	tt.Store(shogi.ZobristHash(1), 3) // no-op: 3 is not > the cached 5, must not reorder
	tt.Store(shogi.ZobristHash(4), 5) // must evict 1, the true LRU, not 2

	assert.False(t, tt.Lookup(shogi.ZobristHash(1), 5, 0))
	assert.True(t, tt.Lookup(shogi.ZobristHash(2), 5, 0))
	assert.True(t, tt.Lookup(shogi.ZobristHash(3), 5, 0))
	assert.True(t, tt.Lookup(shogi.ZobristHash(4), 5, 0))

	stats := tt.Stats()
	assert.Equal(t, 1, stats.Evictions)
	assert.Equal(t, 0, stats.Updates)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	tt := search.NewUnreachabilityTable(3 * 200) // capacity 3

	tt.Store(shogi.ZobristHash(1), 5)
	tt.Store(shogi.ZobristHash(2), 5)
	tt.Store(shogi.ZobristHash(3), 5)
	tt.Lookup(shogi.ZobristHash(1), 5, 0) // touch 1, making 2 the LRU entry
	tt.Store(shogi.ZobristHash(4), 5)     // evicts 2

	assert.False(t, tt.Lookup(shogi.ZobristHash(2), 5, 0))
	assert.True(t, tt.Lookup(shogi.ZobristHash(1), 5, 0))
	assert.True(t, tt.Lookup(shogi.ZobristHash(4), 5, 0))

	stats := tt.Stats()
	assert.Equal(t, 1, stats.Evictions)
}
