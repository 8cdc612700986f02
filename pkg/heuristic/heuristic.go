// Package heuristic aggregates per-piece reach costs into the per-side "need-moves"
// lower bound the search engine uses as its dominant pruning signal.
package heuristic

import (
	"github.com/morlock-shogi/structa/pkg/cost"
	"github.com/morlock-shogi/structa/pkg/geometry"
	"github.com/morlock-shogi/structa/pkg/shogi"
)

// PieceCost is the transient per-square record the estimator produces wherever the
// current board disagrees with the target: the minimum plies to create the target
// piece by dropping and promoting (MakeCost), and the minimum plies to move an
// existing board piece into that role (MoveCost).
type PieceCost struct {
	Piece    shogi.Piece
	Square   shogi.Square
	MakeCost int
	MoveCost int
}

// Min returns the cheaper of MakeCost and MoveCost, the square's actual contribution
// to its owner's need-moves total.
func (c PieceCost) Min() int {
	if c.MakeCost < c.MoveCost {
		return c.MakeCost
	}
	return c.MoveCost
}

// makeCostBase returns the optimistic drop-and-promote cost for a promoted target
// piece of kind k at the given (Black-relative) normalized rank, before the
// already-on-board discount.
func makeCostBase(k shogi.Kind, normRank int) int {
	switch k {
	case shogi.Pawn, shogi.Lance, shogi.Knight:
		if v := normRank - 1; v > 2 {
			return v
		}
		return 2
	case shogi.Silver:
		if v := normRank - 2; v > 2 {
			return v
		}
		return 2
	case shogi.Bishop, shogi.Rook:
		return 2
	default:
		return cost.Sentinel
	}
}

// NeedMovesCount computes (need_black, need_white): for every square where current
// disagrees with target and target holds a piece, the owning side accrues
// min(make_cost, move_cost) -- an admissible lower bound on that side's remaining
// plies, since each discrepancy requires at least one move by its owner.
func NeedMovesCount(current, target *shogi.Board) (int, int) {
	var needBlack, needWhite int

	for sq := shogi.ZeroSquare; sq < shogi.NumSquares; sq++ {
		tp, tok := target.Square(sq)
		if !tok {
			continue
		}
		cp, cok := current.Square(sq)
		if cok && cp == tp {
			continue
		}

		contribution := squareCost(current, tp, sq)

		if tp.Owner == shogi.Black {
			needBlack += contribution
		} else {
			needWhite += contribution
		}
	}
	return needBlack, needWhite
}

func squareCost(current *shogi.Board, target shogi.Piece, sq shogi.Square) int {
	if target.Kind == shogi.King {
		return geometry.Chebyshev(current.KingSquare(target.Owner), sq)
	}

	if target.Promoted {
		return promotedSquareCost(current, target, sq)
	}
	return rawSquareCost(current, target, sq)
}

func rawSquareCost(current *shogi.Board, target shogi.Piece, sq shogi.Square) int {
	makeCost := 1 // drop

	moveCost := cost.Sentinel
	for _, p := range boardPiecesOfKind(current, target.Owner, target.Kind, false) {
		if c := cost.UnpromotedMoveCost(p.Piece, p.Square, sq); c < moveCost {
			moveCost = c
		}
	}

	if moveCost < makeCost {
		return moveCost
	}
	return makeCost
}

func promotedSquareCost(current *shogi.Board, target shogi.Piece, sq shogi.Square) int {
	_, normRank := geometry.NormalizeSquare(target.Owner, sq)
	makeCost := makeCostBase(target.Kind, normRank)

	// The make_cost discount only applies to raw minor pieces already one move from
	// the promoted-form waypoint MinorPromotedCost routes them through; majors
	// (Bishop/Rook) short-circuit via direct one-move reachability instead and never
	// touch make_cost.
	if !target.Kind.IsMajor() {
		for _, p := range boardPiecesOfKind(current, target.Owner, target.Kind, false) {
			waypoint := cost.MinorPromotedWaypoint(p.Piece, p.Square, sq)
			if cost.UnpromotedMoveCost(p.Piece, p.Square, waypoint) <= 1 {
				makeCost--
				break
			}
		}
	}

	moveCost := cost.Sentinel
	candidates := append(
		boardPiecesOfKind(current, target.Owner, target.Kind, false),
		boardPiecesOfKind(current, target.Owner, target.Kind, true)...,
	)
	for _, p := range candidates {
		var c int
		if target.Kind.IsMajor() {
			c = cost.MajorPromotedCost(p.Piece, p.Square, sq)
		} else {
			c = cost.MinorPromotedCost(p.Piece, p.Square, sq)
		}
		if c < moveCost {
			moveCost = c
		}
	}

	if moveCost < makeCost {
		return moveCost
	}
	return makeCost
}

type placedPiece struct {
	Piece  shogi.Piece
	Square shogi.Square
}

func boardPiecesOfKind(b *shogi.Board, owner shogi.Color, k shogi.Kind, promoted bool) []placedPiece {
	var out []placedPiece
	for sq := shogi.ZeroSquare; sq < shogi.NumSquares; sq++ {
		p, ok := b.Square(sq)
		if !ok || p.Owner != owner || p.Kind != k || p.Promoted != promoted {
			continue
		}
		out = append(out, placedPiece{Piece: p, Square: sq})
	}
	return out
}
