package search

import "github.com/morlock-shogi/structa/pkg/shogi"

// DebugTraceEntry records why a node on the user-supplied DEBUG_SOL replay path was
// pruned, the Go analogue of the original prover's debug replay diagnostic
// (original_source/io_utils.py: load_debug_sol) -- composers use it to find out
// exactly which prune rejected a move sequence they expected to survive.
type DebugTraceEntry struct {
	Depth                  int
	Reason                 string
	NeedBlack, NeedWhite   int
	AvailBlack, AvailWhite int
}

// debugTracer matches the live DFS path against a fixed reference path (Params.
// DebugPath) and records a trace entry whenever a node on that exact path is about
// to be cut by the need-moves or hand-distance prune; unreachability-table hits and
// fixed-square skips are not recorded. A nil tracer (no DEBUG_SOL configured) is inert.
type debugTracer struct {
	path    []shogi.DebugStep
	entries []DebugTraceEntry
}

func newDebugTracer(path []shogi.DebugStep) *debugTracer {
	if len(path) == 0 {
		return nil
	}
	return &debugTracer{path: path}
}

// onPath reports whether applied (the path taken so far) followed by mv matches the
// reference path's corresponding prefix, i.e. whether mv is the step the user
// expects the search to take at this depth.
func (d *debugTracer) onPath(applied []shogi.Move, depth int, mv shogi.Move) bool {
	if d == nil || depth >= len(d.path) {
		return false
	}
	for i, m := range applied {
		if i >= len(d.path) || !d.path[i].Matches(m) {
			return false
		}
	}
	return d.path[depth].Matches(mv)
}

func (d *debugTracer) record(depth int, reason string, needBlack, needWhite, availBlack, availWhite int) {
	if d == nil {
		return
	}
	d.entries = append(d.entries, DebugTraceEntry{
		Depth: depth, Reason: reason,
		NeedBlack: needBlack, NeedWhite: needWhite,
		AvailBlack: availBlack, AvailWhite: availWhite,
	})
}
