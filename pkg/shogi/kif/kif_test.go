package kif_test

import (
	"testing"

	"github.com/morlock-shogi/structa/pkg/shogi"
	"github.com/morlock-shogi/structa/pkg/shogi/kif"
	"github.com/morlock-shogi/structa/pkg/shogi/sfen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveMark(t *testing.T) {
	m := shogi.Move{
		From:  shogi.NewSquare(7, 7),
		To:    shogi.NewSquare(7, 6),
		Piece: shogi.NewPiece(shogi.Black, shogi.Pawn, false),
	}
	assert.Equal(t, "７六歩(77)", kif.MoveMark(m, nil))
}

func TestMoveMarkDrop(t *testing.T) {
	m := shogi.Move{
		From:     shogi.DropSquare,
		To:       shogi.NewSquare(5, 5),
		DropKind: shogi.HandRook,
		Piece:    shogi.NewPiece(shogi.Black, shogi.Rook, false),
	}
	assert.Equal(t, "５五飛打", kif.MoveMark(m, nil))
}

func TestMoveMarkSameSquare(t *testing.T) {
	prev := shogi.Move{To: shogi.NewSquare(3, 3)}
	m := shogi.Move{
		From:  shogi.NewSquare(2, 2),
		To:    shogi.NewSquare(3, 3),
		Piece: shogi.NewPiece(shogi.Black, shogi.Bishop, false),
	}
	assert.Equal(t, "同　角(22)", kif.MoveMark(m, &prev))
}

func TestBODHasFourteenLines(t *testing.T) {
	squares, hands, turn, _, err := sfen.Decode(sfen.Initial)
	require.NoError(t, err)

	zt := shogi.NewZobristTable(1)
	b, err := shogi.NewBoard(zt, squares, hands, turn)
	require.NoError(t, err)

	lines := kif.BOD(b)
	assert.Len(t, lines, 14)
}
