package shogi

import "fmt"

// Board represents a full shogi position: the 81-square board, both hands, the side
// to move and a running Zobrist hash. It supports apply/undo of a legal move so a
// single mutable Board can be threaded down a search stack instead of copied per node.
type Board struct {
	squares [NumSquares]Piece
	hands   [NumColors]Hand
	turn    Color
	kingSq  [NumColors]Square

	zt   *ZobristTable
	hash ZobristHash

	undo []undoFrame
}

// undoFrame captures everything PopMove needs to restore the prior state.
type undoFrame struct {
	move       Move
	fromPiece  Piece // piece that was on From before the move (pre-promotion)
	prevHash   ZobristHash
	prevKingSq [NumColors]Square
}

// NewBoard constructs a board from bulk piece placement and hands. Returns an error
// unless each side has exactly one king on the board (invariant I3).
func NewBoard(zt *ZobristTable, squares [NumSquares]Piece, hands [NumColors]Hand, turn Color) (*Board, error) {
	b := &Board{zt: zt}
	if err := b.SetPieces(squares, hands, turn); err != nil {
		return nil, err
	}
	return b, nil
}

// SetPieces bulk-mutates the board to the given placement, hands and turn, recomputing
// the king squares and hash. Clears any undo history: it is meant for (re)initialization,
// not for use mid-search.
func (b *Board) SetPieces(squares [NumSquares]Piece, hands [NumColors]Hand, turn Color) error {
	var kingSq [NumColors]Square
	var kingCount [NumColors]int
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		p := squares[sq]
		if p.IsEmpty() || p.Kind != King {
			continue
		}
		kingSq[p.Owner] = sq
		kingCount[p.Owner]++
	}
	if kingCount[Black] != 1 || kingCount[White] != 1 {
		return fmt.Errorf("invalid number of kings: black=%v white=%v", kingCount[Black], kingCount[White])
	}

	b.squares = squares
	b.hands = hands
	b.turn = turn
	b.kingSq = kingSq
	b.undo = nil
	b.hash = b.zt.Hash(&b.squares, &b.hands, b.turn)
	return nil
}

// Fork returns an independent deep copy of the board, sharing the immutable Zobrist table.
func (b *Board) Fork() *Board {
	cp := &Board{
		squares: b.squares,
		hands:   b.hands,
		turn:    b.turn,
		kingSq:  b.kingSq,
		zt:      b.zt,
		hash:    b.hash,
	}
	return cp
}

func (b *Board) Turn() Color {
	return b.turn
}

// OverrideTurn forcibly sets the side to move and recomputes the hash, without
// touching placement or hands. Used by the turn-parity fixup applied to the target
// position before search begins.
func (b *Board) OverrideTurn(c Color) {
	b.turn = c
	b.hash = b.zt.Hash(&b.squares, &b.hands, b.turn)
}

func (b *Board) Hash() ZobristHash {
	return b.hash
}

// Square returns the piece at sq and whether it is occupied.
func (b *Board) Square(sq Square) (Piece, bool) {
	p := b.squares[sq]
	return p, !p.IsEmpty()
}

func (b *Board) KingSquare(c Color) Square {
	return b.kingSq[c]
}

func (b *Board) Hand(c Color) Hand {
	return b.hands[c]
}

func (b *Board) Ply() int {
	return len(b.undo)
}

// PushMove applies a pseudo-legal move. It returns false without mutating the board
// if the move is not legal (I4: would leave the mover's own king in check, would place
// kings adjacent, or the destination is a dead-end square for a non-promoting piece).
func (b *Board) PushMove(m Move) bool {
	if !b.isPseudoLegal(m) {
		return false
	}

	frame := undoFrame{move: m, prevHash: b.hash, prevKingSq: b.kingSq}

	mover := b.turn
	var moved Piece

	if m.IsDrop() {
		if b.hands[mover].Count(m.DropKind) <= 0 {
			return false
		}
		moved = NewPiece(mover, m.DropKind.Kind(), false)
		b.hands[mover].Add(m.DropKind, -1)
		b.squares[m.To] = moved
	} else {
		src, ok := b.Square(m.From)
		if !ok || src.Owner != mover {
			return false
		}
		frame.fromPiece = src

		if cap, ok := b.Square(m.To); ok {
			if cap.Owner == mover {
				return false
			}
			frame.move.Capture = cap
			raw := cap.Unpromote()
			if hk, ok := KindToHand(raw.Kind); ok {
				b.hands[mover].Add(hk, 1)
			}
		}

		moved = src
		if m.Promote {
			promoted, ok := moved.Promote()
			if !ok {
				return false
			}
			moved = promoted
		}

		b.squares[m.From] = Empty
		b.squares[m.To] = moved
		if src.Kind == King {
			b.kingSq[mover] = m.To
		}
	}

	if isDeadEndSquare(moved, m.To) {
		// Undo the in-progress mutation; this candidate was illegal.
		b.restoreFrame(frame)
		return false
	}

	b.turn = mover.Opponent()
	b.hash = b.zt.Hash(&b.squares, &b.hands, b.turn)

	if IsAttacked(b, mover, b.kingSq[mover]) || areKingsAdjacent(b.kingSq[Black], b.kingSq[White]) {
		b.turn = mover
		b.restoreFrame(frame)
		return false
	}

	b.undo = append(b.undo, frame)
	return true
}

// restoreFrame undoes an in-progress (not-yet-committed) mutation using the frame's
// pre-move snapshot. Used when a pseudo-legal move turns out to be illegal.
func (b *Board) restoreFrame(f undoFrame) {
	m := f.move
	mover := f.fromPiece.Owner
	if m.IsDrop() {
		mover = b.turn
	}

	if m.IsDrop() {
		b.squares[m.To] = Empty
		b.hands[mover].Add(m.DropKind, 1)
	} else {
		b.squares[m.From] = f.fromPiece
		b.squares[m.To] = m.Capture
		if !m.Capture.IsEmpty() {
			raw := m.Capture.Unpromote()
			if hk, ok := KindToHand(raw.Kind); ok {
				b.hands[mover].Add(hk, -1)
			}
		}
	}
	b.kingSq = f.prevKingSq
	b.hash = f.prevHash
}

// PopMove undoes the most recently applied move.
func (b *Board) PopMove() (Move, bool) {
	if len(b.undo) == 0 {
		return Move{}, false
	}
	f := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]

	opponent := b.turn
	mover := opponent.Opponent()
	b.turn = mover

	m := f.move
	if m.IsDrop() {
		b.squares[m.To] = Empty
		b.hands[mover].Add(m.DropKind, 1)
	} else {
		b.squares[m.From] = f.fromPiece
		b.squares[m.To] = m.Capture
		if !m.Capture.IsEmpty() {
			raw := m.Capture.Unpromote()
			if hk, ok := KindToHand(raw.Kind); ok {
				b.hands[mover].Add(hk, -1)
			}
		}
		if f.fromPiece.Kind == King {
			b.kingSq[mover] = m.From
		}
	}
	b.kingSq = f.prevKingSq
	b.hash = f.prevHash
	return m, true
}

func isDeadEndSquare(p Piece, to Square) bool {
	if p.Promoted {
		return false
	}
	_, rank := to.FileRank()
	last, secondLast := 1, 2
	if p.Owner == White {
		last, secondLast = 9, 8
	}
	switch p.Kind {
	case Pawn, Lance:
		return rank == last
	case Knight:
		return rank == last || rank == secondLast
	default:
		return false
	}
}

func areKingsAdjacent(a, b Square) bool {
	af, ar := a.FileRank()
	bf, br := b.FileRank()
	df, dr := af-bf, ar-br
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	return df <= 1 && dr <= 1
}

func (b *Board) String() string {
	return fmt.Sprintf("Board[turn=%v hash=0x%x ply=%v]", b.turn, uint64(b.hash), b.Ply())
}
