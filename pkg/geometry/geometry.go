// Package geometry provides the pure, stateless square arithmetic the cost and
// heuristic layers build on: file/rank conversion, distance metrics, promotion-zone
// membership and the Black-relative normalization every cost routine assumes.
package geometry

import "github.com/morlock-shogi/structa/pkg/shogi"

// FileRank returns the (file, rank) pair for sq, both in 1..9.
func FileRank(sq shogi.Square) (int, int) {
	return sq.FileRank()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Chebyshev returns max(|Δfile|, |Δrank|) between two squares: the number of king
// moves separating them.
func Chebyshev(a, b shogi.Square) int {
	af, ar := a.FileRank()
	bf, br := b.FileRank()
	df, dr := abs(af-bf), abs(ar-br)
	if df > dr {
		return df
	}
	return dr
}

// Manhattan returns |Δfile| + |Δrank| between two squares.
func Manhattan(a, b shogi.Square) int {
	af, ar := a.FileRank()
	bf, br := b.FileRank()
	return abs(af-bf) + abs(ar-br)
}

// InPromotionZone reports whether rank lies in side's promotion zone: ranks 1-3 for
// Black, 7-9 for White.
func InPromotionZone(side shogi.Color, rank int) bool {
	if side == shogi.Black {
		return rank <= 3
	}
	return rank >= 7
}

// Normalize rotates a White-owned piece and square 180 degrees so that downstream
// cost reasoning can always assume it is reasoning "as Black". It returns the
// piece with its owner flipped to Black (kind and promotion preserved) alongside the
// rotated file and rank; a Black-owned input passes through unchanged.
func Normalize(owner shogi.Color, p shogi.Piece, sq shogi.Square) (shogi.Piece, int, int) {
	f, r := NormalizeSquare(owner, sq)
	if owner == shogi.Black {
		return p, f, r
	}
	return p.ChangeOwner(), f, r
}

// NormalizeSquare rotates a square 180 degrees for a White-owned reference, leaving
// a Black-owned reference unchanged.
func NormalizeSquare(owner shogi.Color, sq shogi.Square) (int, int) {
	f, r := sq.FileRank()
	if owner == shogi.Black {
		return f, r
	}
	return 10 - f, 10 - r
}

// DenormalizeSquare is NormalizeSquare's inverse: it turns a Black-relative (file,
// rank) pair back into the real square for the given owner.
func DenormalizeSquare(owner shogi.Color, file, rank int) shogi.Square {
	if owner == shogi.Black {
		return shogi.NewSquare(file, rank)
	}
	return shogi.NewSquare(10-file, 10-rank)
}
