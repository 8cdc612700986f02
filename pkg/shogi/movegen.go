package shogi

// This file is the real legal-move generator: the concrete behavior the proof-game
// core's Board/engine contract (see spec section on external collaborators) requires.
// It intentionally does not reuse pkg/movement's geometric predicates, which encode an
// admissible *approximation* used only by the cost heuristic (see pkg/movement's doc
// comment) and are not a full legality oracle.

var goldOffsets = [][2]int{{0, -1}, {1, -1}, {-1, -1}, {1, 0}, {-1, 0}, {0, 1}}   // Black-relative
var silverOffsets = [][2]int{{0, -1}, {1, -1}, {-1, -1}, {1, 1}, {-1, 1}}        // Black-relative
var kingOffsets = [][2]int{{0, -1}, {1, -1}, {-1, -1}, {1, 0}, {-1, 0}, {0, 1}, {1, 1}, {-1, 1}}
var orthoDirs = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func flip(owner Color, offs [][2]int) [][2]int {
	if owner == Black {
		return offs
	}
	out := make([][2]int, len(offs))
	for i, o := range offs {
		out[i] = [2]int{o[0], -o[1]}
	}
	return out
}

// stepOffsets returns the single-step destinations (relative to the piece's square)
// for non-sliding pieces, including a promoted piece's gold-like minor movement and
// the king-step addendum promoted majors gain.
func stepOffsets(p Piece) [][2]int {
	if p.Promoted {
		switch p.Kind {
		case Pawn, Lance, Knight, Silver:
			return flip(p.Owner, goldOffsets)
		case Bishop:
			return flip(p.Owner, orthoDirs)
		case Rook:
			return flip(p.Owner, diagDirs)
		}
	}
	switch p.Kind {
	case Pawn:
		return flip(p.Owner, [][2]int{{0, -1}})
	case Knight:
		return flip(p.Owner, [][2]int{{1, -2}, {-1, -2}})
	case Silver:
		return flip(p.Owner, silverOffsets)
	case Gold:
		return flip(p.Owner, goldOffsets)
	case King:
		return flip(p.Owner, kingOffsets)
	default:
		return nil
	}
}

// slideDirs returns the sliding directions for sliders: raw lance/bishop/rook, and
// the retained slide component of a promoted bishop/rook.
func slideDirs(p Piece) [][2]int {
	switch p.Kind {
	case Lance:
		if p.Promoted {
			return nil
		}
		return flip(p.Owner, [][2]int{{0, -1}})
	case Bishop:
		return diagDirs
	case Rook:
		return orthoDirs
	default:
		return nil
	}
}

func inZone(owner Color, rank int) bool {
	if owner == Black {
		return rank <= 3
	}
	return rank >= 7
}

// PseudoLegalMoves returns every candidate move for side, including drops, without
// filtering for king safety or king adjacency (see LegalMoves).
func (b *Board) PseudoLegalMoves(side Color) []Move {
	var moves []Move
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		p := b.squares[sq]
		if p.IsEmpty() || p.Owner != side {
			continue
		}
		moves = append(moves, b.movesFrom(sq, p)...)
	}
	moves = append(moves, b.dropMoves(side)...)
	return moves
}

func (b *Board) movesFrom(sq Square, p Piece) []Move {
	var moves []Move
	f, r := sq.FileRank()

	for _, d := range slideDirs(p) {
		nf, nr := f+d[0], r+d[1]
		for nf >= 1 && nf <= 9 && nr >= 1 && nr <= 9 {
			to := NewSquare(nf, nr)
			moves = append(moves, b.candidateMoves(sq, to, p)...)
			if occ, ok := b.Square(to); ok {
				_ = occ
				break
			}
			nf += d[0]
			nr += d[1]
		}
	}
	for _, d := range stepOffsets(p) {
		nf, nr := f+d[0], r+d[1]
		if nf < 1 || nf > 9 || nr < 1 || nr > 9 {
			continue
		}
		to := NewSquare(nf, nr)
		moves = append(moves, b.candidateMoves(sq, to, p)...)
	}
	return moves
}

// candidateMoves returns zero, one or two Move values (non-promote and/or promote)
// for moving p from src to dst, after the own-piece-capture and dead-end-square checks.
func (b *Board) candidateMoves(src, to Square, p Piece) []Move {
	if occ, ok := b.Square(to); ok {
		if occ.Owner == p.Owner {
			return nil
		}
	}
	cap, _ := b.Square(to)

	_, srcRank := src.FileRank()
	_, dstRank := to.FileRank()

	var out []Move
	canPromoteHere := !p.Promoted && p.Kind.CanPromote() && (inZone(p.Owner, srcRank) || inZone(p.Owner, dstRank))
	mustPromote := !p.Promoted && isDeadEndSquare(p, to)

	if !mustPromote {
		out = append(out, Move{From: src, To: to, Piece: p, Capture: cap})
	}
	if canPromoteHere {
		out = append(out, Move{From: src, To: to, Piece: p, Promote: true, Capture: cap})
	}
	return out
}

func (b *Board) dropMoves(side Color) []Move {
	var moves []Move
	for hk := range HandKinds {
		hkk := HandKinds[hk]
		if b.hands[side].Count(hkk) <= 0 {
			continue
		}
		k := hkk.Kind()
		for sq := ZeroSquare; sq < NumSquares; sq++ {
			if occ, ok := b.Square(sq); ok {
				_ = occ
				continue
			}
			candidate := NewPiece(side, k, false)
			if isDeadEndSquare(candidate, sq) {
				continue
			}
			if k == Pawn && b.hasRawPawnOnFile(side, sq.File()) {
				continue // nifu
			}
			moves = append(moves, Move{From: DropSquare, To: sq, DropKind: hkk, Piece: candidate})
		}
	}
	return moves
}

func (b *Board) hasRawPawnOnFile(side Color, file int) bool {
	for rank := 1; rank <= 9; rank++ {
		sq := NewSquare(file, rank)
		p, ok := b.Square(sq)
		if ok && p.Owner == side && p.Kind == Pawn && !p.Promoted {
			return true
		}
	}
	return false
}

// isPseudoLegal reports whether m is a member of PseudoLegalMoves(b.turn). PushMove
// uses this as the first legality gate before testing king safety.
func (b *Board) isPseudoLegal(m Move) bool {
	for _, c := range b.PseudoLegalMoves(b.turn) {
		if c.Equals(m) {
			return true
		}
	}
	return false
}

// LegalMoves returns the fully legal moves for side: pseudo-legal moves that, after
// being applied, do not leave side's own king in check and do not place the kings
// adjacent (invariant I4).
func (b *Board) LegalMoves(side Color) []Move {
	var legal []Move
	for _, m := range b.PseudoLegalMoves(side) {
		if b.PushMove(m) {
			b.PopMove()
			legal = append(legal, m)
		}
	}
	return legal
}

// IsAttacked reports whether sq is attacked by the opponent of c.
func IsAttacked(b *Board, c Color, sq Square) bool {
	opp := c.Opponent()
	for from := ZeroSquare; from < NumSquares; from++ {
		p, ok := b.Square(from)
		if !ok || p.Owner != opp {
			continue
		}
		for _, m := range b.movesFrom(from, p) {
			if m.To == sq {
				return true
			}
		}
	}
	return false
}
