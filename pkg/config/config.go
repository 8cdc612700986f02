// Package config loads the two key=value text files the CLI reads at startup: the
// application config (output verbosity, TT budget, default I/O paths) and the
// problem file (start/target positions, depth/limit/margin, fixed squares).
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/morlock-shogi/structa/pkg/shogi"
	"github.com/morlock-shogi/structa/pkg/shogi/sfen"
	"github.com/morlock-shogi/structa/pkg/validate"
)

// LoadKV reads a line-oriented key=value file: blank lines and lines beginning with
// '#' are ignored, '=' separates key from value, both sides trimmed.
func LoadKV(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %v: %w", path, err)
	}
	defer f.Close()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		data[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %v: %w", path, err)
	}
	return data, nil
}

// Config is the application config file: verbosity, TT memory budget and the default
// input/output paths used when the CLI flags are not given.
type Config struct {
	OutputLevel     int
	STPosOutputMode int
	TTMemoryMB      int
	InputFile       string
	OutputFile      string
}

// LoadConfig reads and validates the application config file at path.
func LoadConfig(path string) (Config, error) {
	kv, err := LoadKV(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		OutputLevel:     1,
		STPosOutputMode: 1,
		TTMemoryMB:      256,
		InputFile:       kv["INPUT_FILE"],
		OutputFile:      kv["OUTPUT_FILE"],
	}

	if v, ok := kv["OUTPUT_LEVEL"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 3 {
			return Config{}, fmt.Errorf("invalid OUTPUT_LEVEL: %q", v)
		}
		cfg.OutputLevel = n
	}
	if v, ok := kv["ST_POS_OUTPUT_MODE"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 2 {
			return Config{}, fmt.Errorf("invalid ST_POS_OUTPUT_MODE: %q", v)
		}
		cfg.STPosOutputMode = n
	}
	if v, ok := kv["TT_MEMORY_MB"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid TT_MEMORY_MB: %q", v)
		}
		cfg.TTMemoryMB = n
	}
	return cfg, nil
}

// Problem is a single proof-game problem: the start/target positions and the search
// budget (depth, solution limit, TT margin), plus any squares the search must not
// move a piece onto or off of.
type Problem struct {
	StartSFEN   string
	TargetSFEN  string
	MaxDepth    int
	Limit       int
	Margin      int
	FixedPieces map[shogi.Square]bool
	DebugSol    []shogi.DebugStep
}

// LoadProblem reads and validates a problem file at path. LIMIT is clamped to [1,10]
// and MARGIN to at most 5 (a negative MARGIN is an error); TARGET_SFEN is required
// and MAX_DEPTH must be >= 1.
func LoadProblem(path string) (Problem, error) {
	kv, err := LoadKV(path)
	if err != nil {
		return Problem{}, err
	}

	p := Problem{
		StartSFEN: sfen.Initial,
		Limit:     1,
		Margin:    0,
	}

	if v, ok := kv["START_SFEN"]; ok && v != "" {
		p.StartSFEN = v
	}
	if err := validate.ValidateSFENHasKing(p.StartSFEN); err != nil {
		return Problem{}, fmt.Errorf("START_SFEN: %w", err)
	}

	p.TargetSFEN = kv["TARGET_SFEN"]
	if p.TargetSFEN == "" {
		return Problem{}, fmt.Errorf("TARGET_SFEN is required")
	}
	if err := validate.ValidateSFENHasKing(p.TargetSFEN); err != nil {
		return Problem{}, fmt.Errorf("TARGET_SFEN: %w", err)
	}

	depthStr, ok := kv["MAX_DEPTH"]
	if !ok {
		return Problem{}, fmt.Errorf("MAX_DEPTH is required")
	}
	depth, err := strconv.Atoi(depthStr)
	if err != nil || depth < 1 {
		return Problem{}, fmt.Errorf("invalid MAX_DEPTH: %q", depthStr)
	}
	p.MaxDepth = depth

	if v, ok := kv["LIMIT"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Problem{}, fmt.Errorf("invalid LIMIT: %q", v)
		}
		p.Limit = clamp(n, 1, 10)
	}

	if v, ok := kv["MARGIN"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Problem{}, fmt.Errorf("invalid MARGIN: %q", v)
		}
		if n < 0 {
			return Problem{}, fmt.Errorf("MARGIN must be >= 0, got %v", n)
		}
		if n > 5 {
			n = 5
		}
		p.Margin = n
	}

	fixed, err := validate.ParseFixedPieces(kv["FIXED_PIECES"])
	if err != nil {
		return Problem{}, err
	}
	p.FixedPieces = fixed

	debugSol, err := validate.ParseDebugSol(kv["DEBUG_SOL"])
	if err != nil {
		return Problem{}, err
	}
	p.DebugSol = debugSol

	return p, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
