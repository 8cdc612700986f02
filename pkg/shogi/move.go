package shogi

import "fmt"

// Move represents a not-necessarily-legal move along with contextual metadata needed
// to apply and undo it. A drop has From == DropSquare and DropKind set; a board move
// has From/To set and Piece identifying the moving piece.
type Move struct {
	From, To Square
	DropKind HandKind // valid iff From == DropSquare
	Piece    Piece    // moving piece (pre-promotion), valid for board moves
	Promote  bool     // whether the move promotes the piece on arrival
	Capture  Piece    // captured piece, if any (zero otherwise)
}

func (m Move) IsDrop() bool {
	return m.From == DropSquare
}

// Equals compares the squares, drop kind and promotion flag -- the parts that
// distinguish two otherwise-identical candidate moves.
func (m Move) Equals(o Move) bool {
	if m.IsDrop() != o.IsDrop() {
		return false
	}
	if m.IsDrop() {
		return m.DropKind == o.DropKind && m.To == o.To
	}
	return m.From == o.From && m.To == o.To && m.Promote == o.Promote
}

func (m Move) String() string {
	if m.IsDrop() {
		return fmt.Sprintf("%v*%v", m.DropKind, m.To)
	}
	if m.Promote {
		return fmt.Sprintf("%v%v+", m.From, m.To)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// TouchesSquare reports whether the move's source or destination is sq. A drop has
// no source square, so it only ever touches its destination.
func (m Move) TouchesSquare(sq Square) bool {
	if m.To == sq {
		return true
	}
	return !m.IsDrop() && m.From == sq
}

// DebugStep is a lightweight move descriptor used to match a user-supplied replay
// path (the problem file's DEBUG_SOL key) against moves the live search considers.
// Unlike Move it carries no Piece/Capture context, since the replay path is parsed
// from bare square digits before any board is available to resolve them against.
type DebugStep struct {
	From, To Square
	Drop     bool
	Promote  bool
}

// Matches reports whether m is the move this step describes. A drop step matches
// any drop onto To regardless of hand kind, since the two-digit replay format
// doesn't distinguish which piece kind was dropped.
func (s DebugStep) Matches(m Move) bool {
	if s.Drop != m.IsDrop() {
		return false
	}
	if s.Drop {
		return s.To == m.To
	}
	return s.From == m.From && s.To == m.To && s.Promote == m.Promote
}
