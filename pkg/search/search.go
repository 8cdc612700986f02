// Package search implements the proof-game DFS engine: depth-limited enumeration of
// move sequences from a start position to a target position, pruned by the
// need-moves heuristic, hand-distance bounds and the unreachability table.
package search

import (
	"context"

	"github.com/morlock-shogi/structa/pkg/heuristic"
	"github.com/morlock-shogi/structa/pkg/shogi"
	"github.com/morlock-shogi/structa/pkg/validate"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Stats is the bookkeeping the engine accumulates over a search call.
type Stats struct {
	TotalNodes        int
	PrunedByNeed      int
	PrunedByHandBlack int
	PrunedByHandWhite int
	PrunedByDepth     []int
	Interrupted       bool
	TT                TableStats
	CostCache         heuristic.CacheStats
	DebugTrace        []DebugTraceEntry
}

// Params bundles find_all_paths_to_target's arguments. Ctx is optional: when it
// carries a quit signal (see cmd/structa's signal handling), the engine polls it
// between nodes and unwinds cooperatively, the way morlock's searchctl harness
// checks contextx.IsCancelled inside alphabeta/quiescence. A nil Ctx runs to
// completion like any other search.
type Params struct {
	Ctx           context.Context
	Start         *shogi.Board
	Target        *shogi.Board
	MaxDepth      int
	Limit         int
	FixedSquares  map[shogi.Square]bool
	TTMemoryBytes int64
	Margin        int
	DebugPath     []shogi.DebugStep
}

// cancelPollInterval bounds how often the DFS loop pays for a context check: once
// the signal fires, a partial solution set is still useful to the caller, so we
// don't need to check every node.
const cancelPollInterval = 2048

// frame is the explicit DFS stack element: the depth it represents, the legal moves
// enumerated for that node, a cursor into them, and whether any child below it has
// already produced a solution.
type frame struct {
	depth      int
	moves      []shogi.Move
	idx        int
	childFound bool
}

// splitRemaining distributes remain plies between the two sides: the side to move
// gets ceil(remain/2), the other gets floor(remain/2).
func splitRemaining(remain int, sideToMove shogi.Color) (availBlack, availWhite int) {
	mover := (remain + 1) / 2
	other := remain / 2
	if sideToMove == shogi.Black {
		return mover, other
	}
	return other, mover
}

// FindAllPathsToTarget enumerates up to p.Limit legal move sequences of exactly
// p.MaxDepth plies that transform p.Start into p.Target, via an iterative DFS over
// an explicit frame stack (search depth can exceed any comfortable native recursion
// limit). p.Start is mutated in place via apply/undo and is restored to its original
// state on return.
func FindAllPathsToTarget(p Params) ([][]shogi.Move, Stats, error) {
	if err := validate.ValidatePieceCounts(p.Start, p.Target); err != nil {
		return nil, Stats{}, err
	}
	validate.AdjustTargetTurn(p.Start, p.Target, p.MaxDepth)

	if p.FixedSquares == nil {
		p.FixedSquares = map[shogi.Square]bool{}
	}
	if p.Ctx == nil {
		p.Ctx = context.Background()
	}

	tt := NewUnreachabilityTable(p.TTMemoryBytes)
	costCache := heuristic.NewCache()
	tracer := newDebugTracer(p.DebugPath)
	targetHash := p.Target.Hash()

	board := p.Start
	var path []shogi.Move
	var solutions [][]shogi.Move

	stats := Stats{PrunedByDepth: make([]int, p.MaxDepth+1)}

	stack := []*frame{{depth: 0, moves: board.LegalMoves(board.Turn())}}

	for len(stack) > 0 {
		if stats.TotalNodes%cancelPollInterval == 0 && contextx.IsCancelled(p.Ctx) {
			stats.Interrupted = true
			break
		}

		top := stack[len(stack)-1]
		remain := p.MaxDepth - top.depth
		h := board.Hash()

		if tt.Lookup(h, remain, p.Margin) {
			stack = stack[:len(stack)-1]
			if len(path) > 0 {
				board.PopMove()
				path = path[:len(path)-1]
			}
			continue
		}

		if top.depth == p.MaxDepth {
			if h == targetHash {
				sol := make([]shogi.Move, len(path))
				copy(sol, path)
				solutions = append(solutions, sol)
				top.childFound = true
				if len(solutions) >= p.Limit {
					break
				}
			} else {
				tt.Store(h, 0)
			}

			stack = stack[:len(stack)-1]
			if len(path) > 0 {
				board.PopMove()
				path = path[:len(path)-1]
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.childFound = parent.childFound || top.childFound
			}
			continue
		}

		if top.idx >= len(top.moves) {
			if !top.childFound {
				tt.Store(h, remain)
			}
			stack = stack[:len(stack)-1]
			if len(path) > 0 {
				board.PopMove()
				path = path[:len(path)-1]
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.childFound = parent.childFound || top.childFound
			}
			continue
		}

		m := top.moves[top.idx]
		top.idx++

		onDebugPath := tracer.onPath(path, top.depth, m)

		if validate.IsMoveTouchingFixedPiece(m, p.FixedSquares) {
			continue
		}
		if !board.PushMove(m) {
			continue
		}
		path = append(path, m)
		stats.TotalNodes++

		remainChild := p.MaxDepth - (top.depth + 1)
		availBlack, availWhite := splitRemaining(remainChild, board.Turn())
		needBlack, needWhite := costCache.NeedMovesCount(board, p.Target)

		if needBlack > availBlack || needWhite > availWhite {
			stats.PrunedByNeed++
			stats.PrunedByDepth[top.depth]++
			if onDebugPath {
				tracer.record(top.depth, "need", needBlack, needWhite, availBlack, availWhite)
			}
			board.PopMove()
			path = path[:len(path)-1]
			continue
		}

		handDistBlack := shogi.ManhattanDistance(board.Hand(shogi.Black), p.Target.Hand(shogi.Black))
		handDistWhite := shogi.ManhattanDistance(board.Hand(shogi.White), p.Target.Hand(shogi.White))
		if handDistBlack > availBlack {
			stats.PrunedByHandBlack++
			stats.PrunedByDepth[top.depth]++
			if onDebugPath {
				tracer.record(top.depth, "hand_black", needBlack, needWhite, availBlack, availWhite)
			}
			board.PopMove()
			path = path[:len(path)-1]
			continue
		}
		if handDistWhite > availWhite {
			stats.PrunedByHandWhite++
			stats.PrunedByDepth[top.depth]++
			if onDebugPath {
				tracer.record(top.depth, "hand_white", needBlack, needWhite, availBlack, availWhite)
			}
			board.PopMove()
			path = path[:len(path)-1]
			continue
		}

		stack = append(stack, &frame{depth: top.depth + 1, moves: board.LegalMoves(board.Turn())})
	}

	for range path {
		board.PopMove()
	}

	stats.TT = tt.Stats()
	stats.CostCache = costCache.Stats()
	if tracer != nil {
		stats.DebugTrace = tracer.entries
	}
	return solutions, stats, nil
}
