package validate_test

import (
	"testing"

	"github.com/morlock-shogi/structa/pkg/shogi"
	"github.com/morlock-shogi/structa/pkg/shogi/sfen"
	"github.com/morlock-shogi/structa/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, s string) *shogi.Board {
	t.Helper()
	squares, hands, turn, _, err := sfen.Decode(s)
	require.NoError(t, err)
	b, err := shogi.NewBoard(shogi.NewZobristTable(3), squares, hands, turn)
	require.NoError(t, err)
	return b
}

func TestAdjustTargetTurnEvenDepthKeepsStartTurn(t *testing.T) {
	start := newBoard(t, "4k4/9/9/9/9/9/9/9/4K4 b - 1")
	target := newBoard(t, "4k4/9/9/9/9/9/9/9/4K4 w - 1")

	changed := validate.AdjustTargetTurn(start, target, 2)
	assert.True(t, changed)
	assert.Equal(t, shogi.Black, target.Turn())
}

func TestAdjustTargetTurnOddDepthFlips(t *testing.T) {
	start := newBoard(t, "4k4/9/9/9/9/9/9/9/4K4 b - 1")
	target := newBoard(t, "4k4/9/9/9/9/9/9/9/4K4 b - 1")

	changed := validate.AdjustTargetTurn(start, target, 3)
	assert.True(t, changed)
	assert.Equal(t, shogi.White, target.Turn())
}

func TestValidatePieceCountsMismatch(t *testing.T) {
	start := newBoard(t, sfen.Initial)
	target := newBoard(t, "4k4/9/9/9/9/9/9/9/4K4 b - 1")

	assert.Error(t, validate.ValidatePieceCounts(start, target))
}

func TestValidateSFENHasKing(t *testing.T) {
	assert.NoError(t, validate.ValidateSFENHasKing(sfen.Initial))
	assert.Error(t, validate.ValidateSFENHasKing("9/9/9/9/9/9/9/9/9 b - 1"))
}

func TestValidateTwoDigits(t *testing.T) {
	a, b, err := validate.ValidateTwoDigits(77)
	require.NoError(t, err)
	assert.Equal(t, 7, a)
	assert.Equal(t, 7, b)

	_, _, err = validate.ValidateTwoDigits(90)
	assert.Error(t, err)
}

func TestIsMoveTouchingFixedPiece(t *testing.T) {
	fixed := map[shogi.Square]bool{shogi.NewSquare(7, 7): true}

	touching := shogi.Move{From: shogi.NewSquare(7, 7), To: shogi.NewSquare(7, 6)}
	assert.True(t, validate.IsMoveTouchingFixedPiece(touching, fixed))

	notTouching := shogi.Move{From: shogi.NewSquare(3, 3), To: shogi.NewSquare(3, 4)}
	assert.False(t, validate.IsMoveTouchingFixedPiece(notTouching, fixed))

	drop := shogi.Move{From: shogi.DropSquare, To: shogi.NewSquare(7, 7)}
	assert.True(t, validate.IsMoveTouchingFixedPiece(drop, fixed))
}

func TestParseDebugSol(t *testing.T) {
	steps, err := validate.ParseDebugSol("7776,0043+")
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, shogi.NewSquare(7, 7), steps[0].From)
	assert.Equal(t, shogi.NewSquare(7, 6), steps[0].To)
	assert.False(t, steps[0].Drop)
	assert.False(t, steps[0].Promote)

	assert.True(t, steps[1].Drop)
	assert.Equal(t, shogi.NewSquare(4, 3), steps[1].To)
	assert.True(t, steps[1].Promote)
}

func TestParseDebugSolEmpty(t *testing.T) {
	steps, err := validate.ParseDebugSol("")
	require.NoError(t, err)
	assert.Nil(t, steps)
}

func TestParseDebugSolInvalid(t *testing.T) {
	_, err := validate.ParseDebugSol("7")
	assert.Error(t, err)
}
