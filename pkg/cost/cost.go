// Package cost computes minimum-ply travel costs for a single piece between two
// squares, with or without a required promotion. Every routine normalizes its inputs
// to Black's perspective (see pkg/geometry.Normalize) before applying a closed-form
// formula per piece kind, falling back to a small ray/waypoint expansion for the
// promoted-piece routines.
package cost

import (
	"github.com/morlock-shogi/structa/pkg/geometry"
	"github.com/morlock-shogi/structa/pkg/movement"
	"github.com/morlock-shogi/structa/pkg/shogi"
)

// Sentinel stands in for "no finite move sequence reaches this under our budgets".
const Sentinel = 100

// IsUnreachable reports whether a cost value should be treated as infeasible.
func IsUnreachable(c int) bool {
	return c >= Sentinel
}

func absI(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func normalizedPair(owner shogi.Color, src, dst shogi.Square) (sf, sr, tf, tr int) {
	sf, sr = geometry.NormalizeSquare(owner, src)
	tf, tr = geometry.NormalizeSquare(owner, dst)
	return
}

// minorPDistance is the travel distance for a gold-like (promoted minor) mover:
// Chebyshev when moving toward own camp (Δrank > 0, i.e. backward for Black),
// Manhattan otherwise.
func minorPDistance(df, dr int) int {
	if dr > 0 {
		return maxI(absI(df), absI(dr))
	}
	return absI(df) + absI(dr)
}

func silverDeltaCost(df, dr int) int {
	if dr > 0 && absI(dr) >= absI(df) {
		return minorPDistance(df, dr)
	}
	if (df+dr)%2 == 0 {
		return maxI(absI(dr), absI(df))
	}
	return maxI(absI(dr)+1, absI(df)) + 1
}

func knightDeltaCost(df, dr int) int {
	switch {
	case absI(df) == 1 && dr == -2:
		return 1
	case (absI(df) == 0 || absI(df) == 2) && dr == -4:
		return 2
	case (absI(df) == 1 || absI(df) == 3) && dr == -6:
		return 3
	default:
		return Sentinel
	}
}

// deltaCost is the raw (unpromoted), Black-relative cost formula per kind, shared by
// UnpromotedMoveCost and the waypoint legs of MinorPromotedCost.
func deltaCost(k shogi.Kind, df, dr int) int {
	switch k {
	case shogi.Rook:
		if movement.Rook(df, dr) {
			return 1
		}
		return 2
	case shogi.Bishop:
		if movement.Bishop(df, dr) {
			return 1
		}
		if (df+dr)%2 == 0 {
			return 2
		}
		return Sentinel
	case shogi.Gold:
		return minorPDistance(df, dr)
	case shogi.Silver:
		return silverDeltaCost(df, dr)
	case shogi.Knight:
		return knightDeltaCost(df, dr)
	case shogi.Lance:
		if df == 0 && dr < 0 {
			return 1
		}
		return Sentinel
	case shogi.Pawn:
		if df == 0 && dr < 0 {
			return -dr
		}
		return Sentinel
	case shogi.King:
		return maxI(absI(df), absI(dr))
	default:
		return Sentinel
	}
}

// UnpromotedMoveCost returns the minimum plies for piece (assumed raw) to travel
// from src to dst without promoting.
func UnpromotedMoveCost(piece shogi.Piece, src, dst shogi.Square) int {
	sf, sr, tf, tr := normalizedPair(piece.Owner, src, dst)
	return deltaCost(piece.Kind, tf-sf, tr-sr)
}

// knightWaypointCost computes a knight's travel cost to a specific waypoint by
// walking two ranks at a time, each step choosing the adjacent file closer to the
// waypoint's file -- the closed-form deltaCost only covers a few canonical offsets.
func knightWaypointCost(srcFile, srcRank, dstFile, dstRank int) int {
	if dstRank >= srcRank || (srcRank-dstRank)%2 != 0 {
		return Sentinel
	}
	file, rank, moves := srcFile, srcRank, 0
	for rank > dstRank {
		switch {
		case file < dstFile:
			file++
		case file > dstFile:
			file--
		}
		rank -= 2
		moves++
	}
	if file != dstFile {
		return Sentinel
	}
	return moves
}

// minorWaypoint returns the Black-relative (file, rank) of the intermediate square a
// raw minor piece passes through on its way to ending at (tf, tr) as its promoted
// form: rank 3 for pawn/lance/knight, a piece-specific rank for silver, and file tf
// (sf for a pawn, which pins the waypoint to its own file rather than the
// destination's).
func minorWaypoint(k shogi.Kind, sf, tf, tr int) (int, int) {
	waypointFile := tf
	if k == shogi.Pawn {
		// Preserves the source's pawn-waypoint behavior: the waypoint is pinned to
		// the piece's own file, not the destination file, over-counting the second
		// leg when they differ. Still admissible -- only ever overestimates.
		waypointFile = sf
	}

	waypointRank := 3
	if k == shogi.Silver {
		if tr <= 3 {
			waypointRank = tr
		} else {
			waypointRank = 4
		}
	}
	return waypointFile, waypointRank
}

// MinorPromotedWaypoint returns the real-board square a raw minor piece (pawn,
// lance, knight or silver) passes through en route to ending at dst as its promoted
// form -- the same waypoint MinorPromotedCost derives its two-leg cost from.
func MinorPromotedWaypoint(piece shogi.Piece, src, dst shogi.Square) shogi.Square {
	sf, _, tf, tr := normalizedPair(piece.Owner, src, dst)
	wf, wr := minorWaypoint(piece.Kind, sf, tf, tr)
	return geometry.DenormalizeSquare(piece.Owner, wf, wr)
}

// MinorPromotedCost returns the minimum plies for a minor piece (pawn, lance, knight
// or silver), raw or already promoted, to end at dst as its promoted form.
func MinorPromotedCost(piece shogi.Piece, src, dst shogi.Square) int {
	sf, sr, tf, tr := normalizedPair(piece.Owner, src, dst)

	if piece.Promoted {
		return minorPDistance(tf-sf, tr-sr)
	}

	waypointFile, waypointRank := minorWaypoint(piece.Kind, sf, tf, tr)

	var firstLeg int
	if piece.Kind == shogi.Knight {
		firstLeg = knightWaypointCost(sf, sr, waypointFile, waypointRank)
	} else {
		firstLeg = deltaCost(piece.Kind, waypointFile-sf, waypointRank-sr)
	}
	secondLeg := minorPDistance(tf-waypointFile, tr-waypointRank)

	if IsUnreachable(firstLeg) || IsUnreachable(secondLeg) {
		return Sentinel
	}
	return firstLeg + secondLeg
}

var diagDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func bishopDiagonalSquares(f, r int) [][2]int {
	var out [][2]int
	for _, d := range diagDirs {
		nf, nr := f+d[0], r+d[1]
		for nf >= 1 && nf <= 9 && nr >= 1 && nr <= 9 {
			out = append(out, [2]int{nf, nr})
			nf += d[0]
			nr += d[1]
		}
	}
	return out
}

func promotedBishopCascade(df, dr int) int {
	if movement.PromotedBishop(df, dr) {
		return 1
	}
	if (df+dr)%2 == 0 {
		return 2
	}
	if movement.Bishop(df, dr-1) || movement.Bishop(df, dr+1) {
		return 2
	}
	return 3
}

// bishopZoneCascade handles a raw bishop whose src and dst both lie outside the
// promotion zone: it must first reach a zone square via one (or, failing that, two)
// bishop moves, then finish as a promoted bishop from there.
func bishopZoneCascade(sf, sr, tf, tr int) int {
	best := Sentinel
	firstOrder := bishopDiagonalSquares(sf, sr)

	found := false
	for _, c := range firstOrder {
		if c[1] > 3 {
			continue
		}
		found = true
		if cand := 1 + promotedBishopCascade(tf-c[0], tr-c[1]); cand < best {
			best = cand
		}
	}
	if found {
		return best
	}

	for _, c1 := range firstOrder {
		for _, c2 := range bishopDiagonalSquares(c1[0], c1[1]) {
			if c2[1] > 3 {
				continue
			}
			if cand := 2 + promotedBishopCascade(tf-c2[0], tr-c2[1]); cand < best {
				best = cand
			}
		}
	}
	return best
}

// MajorPromotedCost returns the minimum plies for a major piece (bishop or rook),
// raw or promoted, to end at dst as its promoted form.
func MajorPromotedCost(piece shogi.Piece, src, dst shogi.Square) int {
	sf, sr, tf, tr := normalizedPair(piece.Owner, src, dst)
	df, dr := tf-sf, tr-sr

	if piece.Kind == shogi.Rook {
		if piece.Promoted {
			if movement.PromotedRook(df, dr) {
				return 1
			}
			return 2
		}
		if sr <= 3 || tr <= 3 {
			if movement.Rook(df, dr) {
				return 1
			}
			return 2
		}
		switch {
		case absI(df) == 1 && tr == 4:
			return 2
		case df == 0:
			return 2
		default:
			return 3
		}
	}

	// Bishop.
	if piece.Promoted || sr <= 3 || tr <= 3 {
		return promotedBishopCascade(df, dr)
	}
	return bishopZoneCascade(sf, sr, tf, tr)
}
