// Command structa is the Structa shogi proof-game prover: given a problem file naming
// a start and target position and a ply budget, it enumerates legal move sequences
// that transform one into the other and appends them, in KIF notation, to an output
// file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/morlock-shogi/structa/pkg/config"
	"github.com/morlock-shogi/structa/pkg/console"
	"github.com/morlock-shogi/structa/pkg/search"
	"github.com/morlock-shogi/structa/pkg/shogi"
	"github.com/morlock-shogi/structa/pkg/shogi/sfen"
	"github.com/morlock-shogi/structa/pkg/validate"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

var version = build.NewVersion(1, 0, 0)

var (
	input  = flag.String("i", "", "problem file path (overrides config.txt's INPUT_FILE)")
	output = flag.String("o", "", "output file path (overrides config.txt's OUTPUT_FILE)")
	wait   = flag.Bool("wait", false, "wait for Enter before exiting")
	nowait = flag.Bool("nowait", false, "do not wait for Enter before exiting")

	depthFlag  = flag.Int("depth", -1, "override MAX_DEPTH from the problem file (-1: use problem file)")
	limitFlag  = flag.Int("limit", -1, "override LIMIT from the problem file (-1: use problem file)")
	marginFlag = flag.Int("margin", -1, "override MARGIN from the problem file (-1: use problem file)")
)

// intOverride turns a "-1 means unset" CLI flag into a lang.Optional[int], the same
// optional-override shape morlock's console driver uses for a console-supplied
// per-game depth (pkg/engine/console/console.go: opt.DepthLimit = lang.Some(...)).
func intOverride(v int) lang.Optional[int] {
	if v < 0 {
		return lang.Optional[int]{}
	}
	return lang.Some(v)
}

func init() {
	flag.StringVar(input, "input", "", "alias of -i")
	flag.StringVar(output, "output", "", "alias of -o")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: structa [options]

Structa enumerates shogi proof games: legal move sequences of a fixed length
that transform a start position into a target position.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "Structa %v starting", version)

	if err := run(ctx); err != nil {
		logw.Errorf(ctx, "%v", err)
		maybeWait()
		os.Exit(1)
	}
	maybeWait()
}

func run(ctx context.Context) error {
	baseDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	cfg, err := config.LoadConfig(filepath.Join(baseDir, "config.txt"))
	if err != nil {
		return fmt.Errorf("load config.txt: %w", err)
	}

	inputFile := resolvePath(baseDir, *input, cfg.InputFile)
	outputFile := resolvePath(baseDir, *output, cfg.OutputFile)
	if inputFile == "" {
		return fmt.Errorf("no input file specified (use -i or config.txt's INPUT_FILE)")
	}
	if outputFile == "" {
		return fmt.Errorf("no output file specified (use -o or config.txt's OUTPUT_FILE)")
	}

	prob, err := config.LoadProblem(inputFile)
	if err != nil {
		return fmt.Errorf("load problem file %v: %w", inputFile, err)
	}
	if err := applyOverrides(&prob, intOverride(*depthFlag), intOverride(*limitFlag), intOverride(*marginFlag)); err != nil {
		return err
	}

	out, err := os.OpenFile(outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file %v: %w", outputFile, err)
	}
	defer out.Close()

	reporter := &console.Reporter{Level: cfg.OutputLevel, File: out}

	startSquares, startHands, startTurn, _, err := sfen.Decode(prob.StartSFEN)
	if err != nil {
		return fmt.Errorf("START_SFEN: %w", err)
	}
	targetSquares, targetHands, targetTurn, _, err := sfen.Decode(prob.TargetSFEN)
	if err != nil {
		return fmt.Errorf("TARGET_SFEN: %w", err)
	}

	zt := shogi.NewZobristTable(0xC0FFEE)
	start, err := shogi.NewBoard(zt, startSquares, startHands, startTurn)
	if err != nil {
		return fmt.Errorf("start position: %w", err)
	}
	target, err := shogi.NewBoard(zt, targetSquares, targetHands, targetTurn)
	if err != nil {
		return fmt.Errorf("target position: %w", err)
	}

	for sq := range prob.FixedPieces {
		if _, ok := start.Square(sq); !ok {
			return fmt.Errorf("FIXED_PIECES references an empty square: %v", sq)
		}
	}
	if err := validate.ValidatePieceCounts(start, target); err != nil {
		return err
	}

	// A SIGINT cooperatively unwinds the DFS (see pkg/search's cancelPollInterval
	// poll) instead of killing the process mid-write, so partial results still
	// reach the output file -- the external-interrupt handling spec.md leaves to
	// the caller, done the way morlock's searchctl harness derives a cancelable
	// context from an iox.AsyncCloser "quit" signal.
	quit := iox.NewAsyncCloser()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			logw.Infof(ctx, "interrupt received, finishing current node and writing partial results")
			quit.Close()
		}
	}()

	wctx, cancel := contextx.WithQuitCancel(ctx, quit.Closed())
	defer cancel()

	solutions, stats, err := search.FindAllPathsToTarget(search.Params{
		Ctx:           wctx,
		Start:         start,
		Target:        target,
		MaxDepth:      prob.MaxDepth,
		Limit:         prob.Limit,
		FixedSquares:  prob.FixedPieces,
		TTMemoryBytes: int64(cfg.TTMemoryMB) * (1 << 20),
		Margin:        prob.Margin,
		DebugPath:     prob.DebugSol,
	})
	if err != nil {
		return err
	}
	if stats.Interrupted {
		logw.Infof(ctx, "search interrupted before completion; reporting %d partial solution(s)", len(solutions))
	}

	console.Report(ctx, reporter, start, target, prob.StartSFEN, prob.TargetSFEN, cfg.STPosOutputMode, prob.FixedPieces, solutions, stats)
	logw.Infof(ctx, "Found %d solution(s) of %d requested, %d node(s) explored", len(solutions), prob.Limit, stats.TotalNodes)
	return nil
}

// applyOverrides applies any CLI-supplied overrides of the problem file's search
// budget, re-validating the clamps LoadProblem itself enforces (LIMIT in [1,10],
// MARGIN in [0,5]).
func applyOverrides(prob *config.Problem, depth, limit, margin lang.Optional[int]) error {
	if v, ok := depth.V(); ok {
		if v < 1 {
			return fmt.Errorf("invalid -depth override: %v (must be >= 1)", v)
		}
		prob.MaxDepth = v
	}
	if v, ok := limit.V(); ok {
		prob.Limit = clampInt(v, 1, 10)
	}
	if v, ok := margin.V(); ok {
		prob.Margin = clampInt(v, 0, 5)
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func resolvePath(baseDir, flagVal, cfgVal string) string {
	v := flagVal
	if v == "" {
		v = cfgVal
	}
	if v == "" {
		return ""
	}
	if filepath.IsAbs(v) {
		return v
	}
	return filepath.Join(baseDir, v)
}

func maybeWait() {
	if !*wait || *nowait {
		return
	}
	fmt.Fprintln(os.Stderr, "Press Enter to exit...")
	bufio.NewReader(os.Stdin).ReadString('\n')
}
