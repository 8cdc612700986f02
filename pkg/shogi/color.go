// Package shogi implements the board, piece and move model that the proof-game
// core treats as a conforming shogi rule engine: legal move generation, apply/undo,
// Zobrist hashing and hand (mochigoma) bookkeeping.
package shogi

// Color represents the playing side. Black moves toward lower ranks. 1 bit.
type Color uint8

const (
	Black Color = iota
	White
)

const (
	ZeroColor Color = 0
	NumColors Color = 2
)

func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) String() string {
	switch c {
	case Black:
		return "b"
	case White:
		return "w"
	default:
		return "?"
	}
}
