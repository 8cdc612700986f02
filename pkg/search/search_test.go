package search_test

import (
	"testing"

	"github.com/morlock-shogi/structa/pkg/search"
	"github.com/morlock-shogi/structa/pkg/shogi"
	"github.com/morlock-shogi/structa/pkg/shogi/sfen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, s string) *shogi.Board {
	t.Helper()
	squares, hands, turn, _, err := sfen.Decode(s)
	require.NoError(t, err)
	b, err := shogi.NewBoard(shogi.NewZobristTable(11), squares, hands, turn)
	require.NoError(t, err)
	return b
}

func TestZeroDepthIdenticalPositionsOneEmptySolution(t *testing.T) {
	start := newBoard(t, sfen.Initial)
	target := newBoard(t, sfen.Initial)

	solutions, _, err := search.FindAllPathsToTarget(search.Params{
		Start: start, Target: target, MaxDepth: 0, Limit: 10, TTMemoryBytes: 1 << 20,
	})
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Empty(t, solutions[0])
}

func TestOnePlyPawnPush(t *testing.T) {
	start := newBoard(t, sfen.Initial)
	target := newBoard(t, "lnsgkgsnl/1r5b1/ppppppppp/9/9/2P6/PP1PPPPPP/1B5R1/LNSGKGSNL w - 2")

	solutions, _, err := search.FindAllPathsToTarget(search.Params{
		Start: start, Target: target, MaxDepth: 1, Limit: 10, TTMemoryBytes: 1 << 20,
	})
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Len(t, solutions[0], 1)
}

func TestNoReachableSolutionRecordsTTFailure(t *testing.T) {
	start := newBoard(t, "9/9/9/9/4k4/4K4/9/9/9 b - 1")
	target := newBoard(t, "9/9/9/9/4k4/4K4/9/9/9 b - 1")

	solutions, stats, err := search.FindAllPathsToTarget(search.Params{
		Start: start, Target: target, MaxDepth: 1, Limit: 10, TTMemoryBytes: 1 << 20,
	})
	require.NoError(t, err)
	assert.Empty(t, solutions)
	assert.Greater(t, stats.TT.Stores, 0)
}

func TestCostCacheReportsLookups(t *testing.T) {
	start := newBoard(t, sfen.Initial)
	target := newBoard(t, "lnsgkgsnl/1r5b1/ppppppppp/9/9/2P6/PP1PPPPPP/1B5R1/LNSGKGSNL w - 2")

	_, stats, err := search.FindAllPathsToTarget(search.Params{
		Start: start, Target: target, MaxDepth: 1, Limit: 10, TTMemoryBytes: 1 << 20,
	})
	require.NoError(t, err)
	assert.Greater(t, stats.CostCache.Lookups, 0)
}

func TestDebugPathTracesPruneOfExpectedMove(t *testing.T) {
	start := newBoard(t, "9/9/9/9/4k4/4K4/9/9/9 b - 1")
	target := newBoard(t, "9/9/9/9/3k5/4K4/9/9/9 w - 2")

	solutions, stats, err := search.FindAllPathsToTarget(search.Params{
		Start: start, Target: target, MaxDepth: 1, Limit: 10, TTMemoryBytes: 1 << 20,
		DebugPath: []shogi.DebugStep{{From: shogi.NewSquare(5, 6), To: shogi.NewSquare(5, 7)}},
	})
	require.NoError(t, err)
	assert.Empty(t, solutions)
	require.Len(t, stats.DebugTrace, 1)
	assert.Equal(t, "need", stats.DebugTrace[0].Reason)
}

func TestFixedSquareExcludesOnlyPath(t *testing.T) {
	start := newBoard(t, "4k4/9/9/9/9/9/9/9/4K2R1 b - 1")
	target := newBoard(t, "4k4/9/9/9/9/9/9/4K4/7R1 b - 1")

	fixed := map[shogi.Square]bool{shogi.NewSquare(5, 9): true}

	solutions, _, err := search.FindAllPathsToTarget(search.Params{
		Start: start, Target: target, MaxDepth: 1, Limit: 10,
		FixedSquares: fixed, TTMemoryBytes: 1 << 20,
	})
	require.NoError(t, err)
	assert.Empty(t, solutions)
}
