// Package validate holds the input-sanity checks and turn-parity fixup the search
// engine runs before it starts exploring: these are the only checks that can reject
// a problem outright, as opposed to the heuristic prunes scored during search.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/morlock-shogi/structa/pkg/shogi"
)

// AdjustTargetTurn sets target's side to move to satisfy turn parity: after
// maxDepth plies from start, the side to move must equal start's side to move if
// maxDepth is even, or its opponent if odd. Returns whether target's recorded turn
// was rewritten.
func AdjustTargetTurn(start, target *shogi.Board, maxDepth int) bool {
	want := start.Turn()
	if maxDepth%2 != 0 {
		want = want.Opponent()
	}
	if target.Turn() == want {
		return false
	}
	target.OverrideTurn(want)
	return true
}

// kindCounts tallies each piece kind (side and promotion collapsed) across the board
// and both hands.
func kindCounts(b *shogi.Board) map[shogi.Kind]int {
	counts := make(map[shogi.Kind]int)
	for sq := shogi.ZeroSquare; sq < shogi.NumSquares; sq++ {
		if p, ok := b.Square(sq); ok {
			counts[p.Kind]++
		}
	}
	for _, side := range []shogi.Color{shogi.Black, shogi.White} {
		hand := b.Hand(side)
		for _, hk := range shogi.HandKinds {
			counts[hk.Kind()] += hand.Count(hk)
		}
	}
	return counts
}

// ValidatePieceCounts fails if start and target disagree on the multiset of piece
// kinds present across board and hands (invariant I1).
func ValidatePieceCounts(start, target *shogi.Board) error {
	a, b := kindCounts(start), kindCounts(target)
	for k := shogi.Pawn; k <= shogi.King; k++ {
		if a[k] != b[k] {
			return fmt.Errorf("piece count mismatch for kind %v: start=%v target=%v", k, a[k], b[k])
		}
	}
	return nil
}

// ValidateSFENHasKing requires exactly one uppercase 'K' and one lowercase 'k' in the
// board portion (first field) of an SFEN string.
func ValidateSFENHasKing(sfen string) error {
	fields := strings.Fields(strings.TrimSpace(sfen))
	if len(fields) == 0 {
		return fmt.Errorf("empty SFEN")
	}
	var black, white int
	for _, r := range fields[0] {
		switch r {
		case 'K':
			black++
		case 'k':
			white++
		}
	}
	if black != 1 || white != 1 {
		return fmt.Errorf("SFEN must have exactly one king per side, found black=%v white=%v", black, white)
	}
	return nil
}

// ValidateTwoDigits splits a two-digit file-rank code 10*a+b into (a, b), requiring
// both digits in 1..9.
func ValidateTwoDigits(x int) (int, int, error) {
	if x < 11 || x > 99 {
		return 0, 0, fmt.Errorf("invalid two-digit code: %v", x)
	}
	a, b := x/10, x%10
	if a < 1 || a > 9 || b < 1 || b > 9 {
		return 0, 0, fmt.Errorf("invalid two-digit code: %v", x)
	}
	return a, b, nil
}

// ParseFixedPieces parses a comma-separated list of two-digit square codes (as used
// by the FIXED_PIECES problem-file key) into a square set.
func ParseFixedPieces(csv string) (map[shogi.Square]bool, error) {
	fixed := make(map[shogi.Square]bool)
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return fixed, nil
	}
	for _, tok := range strings.Split(csv, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		var code int
		for _, r := range tok {
			if !unicode.IsDigit(r) {
				return nil, fmt.Errorf("invalid fixed-piece code: %q", tok)
			}
			code = code*10 + int(r-'0')
		}
		file, rank, err := ValidateTwoDigits(code)
		if err != nil {
			return nil, fmt.Errorf("invalid fixed-piece code %q: %w", tok, err)
		}
		fixed[shogi.NewSquare(file, rank)] = true
	}
	return fixed, nil
}

// ParseDebugSol parses the problem file's DEBUG_SOL key: a comma-separated list of
// four-digit from/to square codes (the same two-digit-per-square convention as
// FIXED_PIECES), with "00" standing in for a drop's missing source and an optional
// trailing '+' marking a promotion. This collapses the original prover's
// DEBUG_SOL_START/DEBUG_SOL_END block syntax into a single key consistent with the
// rest of this flat key=value format.
func ParseDebugSol(csv string) ([]shogi.DebugStep, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, nil
	}
	var out []shogi.DebugStep
	for _, tok := range strings.Split(csv, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		promote := strings.HasSuffix(tok, "+")
		tok = strings.TrimSuffix(tok, "+")
		if len(tok) != 4 {
			return nil, fmt.Errorf("invalid DEBUG_SOL step %q: want 4 digits", tok)
		}

		var step shogi.DebugStep
		step.Promote = promote

		if tok[:2] == "00" {
			step.Drop = true
		} else {
			ff, fr, err := parseTwoDigitCode(tok[:2])
			if err != nil {
				return nil, fmt.Errorf("invalid DEBUG_SOL step %q: %w", tok, err)
			}
			step.From = shogi.NewSquare(ff, fr)
		}

		tf, tr, err := parseTwoDigitCode(tok[2:])
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG_SOL step %q: %w", tok, err)
		}
		step.To = shogi.NewSquare(tf, tr)

		out = append(out, step)
	}
	return out, nil
}

func parseTwoDigitCode(s string) (int, int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("not digits: %q", s)
	}
	return ValidateTwoDigits(n)
}

// IsMoveTouchingFixedPiece reports whether either endpoint of m is in fixed. A drop
// has no source endpoint.
func IsMoveTouchingFixedPiece(m shogi.Move, fixed map[shogi.Square]bool) bool {
	if fixed[m.To] {
		return true
	}
	return !m.IsDrop() && fixed[m.From]
}
