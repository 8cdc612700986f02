package console_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/morlock-shogi/structa/pkg/console"
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
	b, err := shogi.NewBoard(shogi.NewZobristTable(5), squares, hands, turn)
	require.NoError(t, err)
	return b
}

func TestReporterGatesByLevel(t *testing.T) {
	var buf bytes.Buffer
	r := &console.Reporter{Level: 1, File: &buf}

	r.Out("suppressed", 2, false)
	r.Out("shown", 1, false)

	assert.Equal(t, "shown\n", buf.String())
}

func TestSideBySidePositionsModeZeroIsSingleBoard(t *testing.T) {
	b := newBoard(t, sfen.Initial)
	lines := console.SideBySidePositions(b, b, 0, sfen.Initial, sfen.Initial)
	require.Len(t, lines, 14)
	assert.Contains(t, lines[0], "後手の持駒")
	assert.NotContains(t, lines[0], "        ")
}

func TestSideBySidePositionsModeOneFallsBackToSingleBoardAtInitialStart(t *testing.T) {
	b := newBoard(t, sfen.Initial)
	lines := console.SideBySidePositions(b, b, 1, sfen.Initial, sfen.Initial)
	require.Len(t, lines, 14)
	assert.NotContains(t, lines[0], "        ")
}

func TestSideBySidePositionsModeOneGoesSideBySideWhenStartIsNotInitial(t *testing.T) {
	start := newBoard(t, "4k4/9/9/9/9/9/9/9/4K4 b - 1")
	target := newBoard(t, sfen.Initial)
	lines := console.SideBySidePositions(start, target, 1, "4k4/9/9/9/9/9/9/9/4K4 b - 1", sfen.Initial)
	require.Len(t, lines, 14)
	assert.Contains(t, lines[0], "        ")
}

func TestSideBySidePositionsModeTwoAlwaysGoesSideBySide(t *testing.T) {
	b := newBoard(t, sfen.Initial)
	lines := console.SideBySidePositions(b, b, 2, sfen.Initial, sfen.Initial)
	require.Len(t, lines, 14)
	assert.Contains(t, lines[0], "        ")
}

func TestSolutionHeaderFormat(t *testing.T) {
	assert.Equal(t, "=== 解 #1 ===", console.SolutionHeader(1))
}

func TestReportWritesSolutionToFile(t *testing.T) {
	var buf bytes.Buffer
	r := &console.Reporter{Level: 1, File: &buf}
	b := newBoard(t, sfen.Initial)

	solutions := [][]shogi.Move{
		{{From: shogi.NewSquare(7, 7), To: shogi.NewSquare(7, 6), Piece: shogi.NewPiece(shogi.Black, shogi.Pawn, false)}},
	}
	console.Report(context.Background(), r, b, b, sfen.Initial, sfen.Initial, 1, nil, solutions, search.Stats{})

	assert.Contains(t, buf.String(), "解 #1")
}

func TestFixedPieceNames(t *testing.T) {
	b := newBoard(t, sfen.Initial)
	fixed := map[shogi.Square]bool{shogi.NewSquare(2, 8): true}

	names := console.FixedPieceNames(b, fixed)
	require.Len(t, names, 1)
	assert.Equal(t, "先手飛@28", names[0])
}

func TestDebugTraceLinesEmptyIsNil(t *testing.T) {
	assert.Nil(t, console.DebugTraceLines(nil))
}

func TestDebugTraceLinesRendersReason(t *testing.T) {
	trace := []search.DebugTraceEntry{{Depth: 2, Reason: "need", NeedBlack: 3, NeedWhite: 1, AvailBlack: 2, AvailWhite: 1}}
	lines := console.DebugTraceLines(trace)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "need")
}
