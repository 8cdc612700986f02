// Package console renders search progress and results the way the CLI reports them:
// a leveled log that goes to the output file (and, above a threshold, to stdout), a
// system-info banner, and the side-by-side start/target boards and solution listings
// printed in KIF notation.
package console

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"github.com/morlock-shogi/structa/pkg/search"
	"github.com/morlock-shogi/structa/pkg/shogi"
	"github.com/morlock-shogi/structa/pkg/shogi/kif"
	"github.com/morlock-shogi/structa/pkg/shogi/sfen"
	"github.com/seekerror/logw"
)

// Reporter gates output by OUTPUT_LEVEL/ST_POS_OUTPUT_MODE and writes to the run's
// output file, mirroring the append-only, UTF-8 output contract.
type Reporter struct {
	Level int
	File  io.Writer
}

// Out writes msg to the output file if level is within the reporter's verbosity, and
// additionally to stdout when console is true.
func (r *Reporter) Out(msg string, level int, console bool) {
	if r.Level < level {
		return
	}
	fmt.Fprintln(r.File, msg)
	if console {
		fmt.Println(msg)
	}
}

// SystemInfo reports the logical CPU count and the process's current and peak
// (system-reserved) memory, at verbosity level 3 as a diagnostic banner.
func SystemInfo() []string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return []string{
		"実行環境情報",
		fmt.Sprintf("CPU論理コア数：%d", runtime.NumCPU()),
		fmt.Sprintf("使用中メモリ：%s MB", commas(ms.Alloc/(1<<20))),
		fmt.Sprintf("予約済みメモリ：%s MB", commas(ms.Sys/(1<<20))),
		"--------------------",
	}
}

func commas(n uint64) string {
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

// SideBySidePositions renders the board diagram(s) ST_POS_OUTPUT_MODE calls for:
// mode 0 always prints only the target's standalone diagram; mode 1 prints start
// and target side by side only when start isn't the standard opening position
// (otherwise it falls back to the mode-0 single-board diagram, since echoing the
// unchanging initial position alongside every target is redundant); mode 2 always
// prints both side by side regardless of start.
func SideBySidePositions(start, target *shogi.Board, mode int, startSFEN, targetSFEN string) []string {
	if mode == 2 || (mode == 1 && startSFEN != sfen.Initial) {
		return kif.SideBySide(start, target, "        ")
	}
	return kif.BOD(target)
}

// sideName renders a color the way the original prover's fixed-piece echo names a
// side: 先手 (Sente) for Black, 後手 (Gote) for White.
func sideName(c shogi.Color) string {
	if c == shogi.Black {
		return "先手"
	}
	return "後手"
}

// FixedPieceNames renders each fixed square as "<side><kind>@<square>" (e.g.
// "先手飛@77"), the way the original prover's display_fixed_rfs construction names
// the pieces it echoes back to the user instead of bare square codes. Squares with
// no piece present are skipped; FIXED_PIECES emptiness is validated earlier.
func FixedPieceNames(board *shogi.Board, fixed map[shogi.Square]bool) []string {
	squares := make([]shogi.Square, 0, len(fixed))
	for sq := range fixed {
		squares = append(squares, sq)
	}
	sort.Slice(squares, func(i, j int) bool { return squares[i] < squares[j] })

	names := make([]string, 0, len(squares))
	for _, sq := range squares {
		p, ok := board.Square(sq)
		if !ok {
			continue
		}
		names = append(names, fmt.Sprintf("%s%s@%s", sideName(p.Owner), kif.PieceName(p.Kind, p.Promoted), sq))
	}
	return names
}

// DebugTraceLines renders the search's DEBUG_SOL replay trace: one line per pruned
// node on the user-supplied reference path, naming the prune reason and the
// need/avail values that caused it.
func DebugTraceLines(trace []search.DebugTraceEntry) []string {
	if len(trace) == 0 {
		return nil
	}
	lines := []string{"デバッグ手順トレース："}
	for _, e := range trace {
		lines = append(lines, fmt.Sprintf(
			"  深さ%d：%s枝刈り need=(%d,%d) avail=(%d,%d)",
			e.Depth, e.Reason, e.NeedBlack, e.NeedWhite, e.AvailBlack, e.AvailWhite))
	}
	return lines
}

// SolutionHeader formats the "=== 解 #k ===" banner preceding a solution's move list.
func SolutionHeader(k int) string {
	return fmt.Sprintf("=== 解 #%d ===", k)
}

// SolutionMoveLines renders moves as numbered KIF lines with previous-move context.
func SolutionMoveLines(moves []shogi.Move) []string {
	return kif.MoveList(moves)
}

// StatsSummary renders the search's pruning, TT and cost-cache counters for a
// diagnostics footer at OUTPUT_LEVEL 2 and above.
func StatsSummary(s search.Stats) []string {
	return []string{
		fmt.Sprintf("探索ノード数：%d", s.TotalNodes),
		fmt.Sprintf("need枝刈り：%d　手駒枝刈り(先手)：%d　手駒枝刈り(後手)：%d", s.PrunedByNeed, s.PrunedByHandBlack, s.PrunedByHandWhite),
		fmt.Sprintf("置換表：size=%d capacity=%d hits=%d stores=%d evictions=%d", s.TT.Size, s.TT.Capacity, s.TT.Hits, s.TT.Stores, s.TT.Evictions),
		fmt.Sprintf("コストキャッシュ：size=%d lookups=%d hits=%d", s.CostCache.Size, s.CostCache.Lookups, s.CostCache.Hits),
	}
}

// Report prints start/target boards, the fixed-piece echo, every solution, any
// DEBUG_SOL replay trace and the closing stats footer through r, the way the batch
// CLI assembles its single run's output.
func Report(ctx context.Context, r *Reporter, start, target *shogi.Board, startSFEN, targetSFEN string, mode int, fixedSquares map[shogi.Square]bool, solutions [][]shogi.Move, stats search.Stats) {
	logw.Infof(ctx, "Reporting %d solution(s), %d node(s) explored", len(solutions), stats.TotalNodes)

	for _, line := range SystemInfo() {
		r.Out(line, 3, false)
	}
	for _, line := range SideBySidePositions(start, target, mode, startSFEN, targetSFEN) {
		r.Out(line, 1, false)
	}
	if names := FixedPieceNames(start, fixedSquares); len(names) > 0 {
		r.Out("固定された駒："+strings.Join(names, "、"), 1, false)
	}
	if len(solutions) == 0 {
		r.Out("解は見つかりませんでした。", 0, true)
	}
	for i, sol := range solutions {
		r.Out(SolutionHeader(i+1), 0, true)
		for _, line := range SolutionMoveLines(sol) {
			r.Out(line, 0, true)
		}
	}
	for _, line := range DebugTraceLines(stats.DebugTrace) {
		r.Out(line, 1, false)
	}
	for _, line := range StatsSummary(stats) {
		r.Out(line, 2, false)
	}
}

