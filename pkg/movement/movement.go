// Package movement implements the purely geometric "can piece kind X move by
// (Δfile, Δrank)" predicates the cost estimator uses. These are evaluated in
// Black-relative coordinates (see pkg/geometry.Normalize) and are a deliberately
// loose approximation suited to an admissible lower bound, not a legality oracle --
// the real move generator lives in pkg/shogi.
package movement

import "github.com/morlock-shogi/structa/pkg/shogi"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Pawn reports Black-relative pawn movement: one step forward.
func Pawn(df, dr int) bool {
	return df == 0 && dr == -1
}

// Lance reports Black-relative lance movement: any distance forward.
func Lance(df, dr int) bool {
	return df == 0 && dr < 0
}

// Knight reports Black-relative knight movement.
func Knight(df, dr int) bool {
	return abs(df) == 1 && dr == -2
}

// Silver reports Black-relative silver movement.
func Silver(df, dr int) bool {
	if dr == -1 && abs(df) <= 1 {
		return true
	}
	return dr == 1 && abs(df) == 1
}

// Gold reports Black-relative gold movement, shared by the promoted minors
// (pawn, lance, knight, silver).
func Gold(df, dr int) bool {
	if dr == -1 && abs(df) <= 1 {
		return true
	}
	if dr == 0 && abs(df) == 1 {
		return true
	}
	return dr == 1 && df == 0
}

// Bishop reports diagonal movement of any distance.
func Bishop(df, dr int) bool {
	return df != 0 && abs(df) == abs(dr)
}

// Rook reports orthogonal movement of any distance.
func Rook(df, dr int) bool {
	return (df == 0) != (dr == 0)
}

// PromotedBishop reports promoted-bishop movement: bishop rays plus a Black-relative
// gold step.
func PromotedBishop(df, dr int) bool {
	return Bishop(df, dr) || Gold(df, dr)
}

// PromotedRook reports promoted-rook movement: rook rays plus a Black-relative
// silver step.
func PromotedRook(df, dr int) bool {
	return Rook(df, dr) || Silver(df, dr)
}

// King reports king movement: any gold or silver step.
func King(df, dr int) bool {
	return Gold(df, dr) || Silver(df, dr)
}

// CanMoveAs dispatches to the predicate for kind (Black-relative Δfile/Δrank),
// honoring promoted for the kinds whose movement changes on promotion.
func CanMoveAs(k shogi.Kind, promoted bool, df, dr int) bool {
	if promoted {
		switch k {
		case shogi.Pawn, shogi.Lance, shogi.Knight, shogi.Silver:
			return Gold(df, dr)
		case shogi.Bishop:
			return PromotedBishop(df, dr)
		case shogi.Rook:
			return PromotedRook(df, dr)
		}
	}
	switch k {
	case shogi.Pawn:
		return Pawn(df, dr)
	case shogi.Lance:
		return Lance(df, dr)
	case shogi.Knight:
		return Knight(df, dr)
	case shogi.Silver:
		return Silver(df, dr)
	case shogi.Gold:
		return Gold(df, dr)
	case shogi.Bishop:
		return Bishop(df, dr)
	case shogi.Rook:
		return Rook(df, dr)
	case shogi.King:
		return King(df, dr)
	}
	return false
}

// CanPromoteMove reports whether a move from srcRank to dstRank (Black-relative,
// owner already normalized to Black) may promote.
func CanPromoteMove(srcRank, dstRank int) bool {
	return srcRank <= 3 || dstRank <= 3
}
