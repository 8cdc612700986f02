// Package kif renders moves and board positions in the traditional Japanese KIF
// notation used by shogi composition literature, mirroring cshogi's KIF helper that
// the original prover used for solution printouts and side-by-side board diagrams.
package kif

import (
	"fmt"
	"strings"

	"github.com/morlock-shogi/structa/pkg/shogi"
)

var fileNumerals = [...]string{"", "１", "２", "３", "４", "５", "６", "７", "８", "９"}
var rankNumerals = [...]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

var pieceNames = map[shogi.Kind]string{
	shogi.Pawn: "歩", shogi.Lance: "香", shogi.Knight: "桂", shogi.Silver: "銀",
	shogi.Gold: "金", shogi.Bishop: "角", shogi.Rook: "飛", shogi.King: "玉",
}

var promotedPieceNames = map[shogi.Kind]string{
	shogi.Pawn: "と", shogi.Lance: "成香", shogi.Knight: "成桂", shogi.Silver: "成銀",
	shogi.Bishop: "馬", shogi.Rook: "龍",
}

func pieceName(k shogi.Kind, promoted bool) string {
	if promoted {
		if s, ok := promotedPieceNames[k]; ok {
			return s
		}
	}
	return pieceNames[k]
}

// PieceName renders a piece kind in kanji, promoted form if promoted is true and the
// kind has one.
func PieceName(k shogi.Kind, promoted bool) string {
	return pieceName(k, promoted)
}

// MoveMark renders a single move in KIF notation: destination square in kanji
// numerals, the moving piece's name, "成" if it promotes, and either "打" for a drop
// or the origin square in parentheses for a board move. prev is the previous move in
// the sequence (nil for the first), used only to decide whether "同" ("same square")
// replaces the destination when it repeats the prior move's destination.
func MoveMark(m shogi.Move, prev *shogi.Move) string {
	var sb strings.Builder

	f, r := m.To.FileRank()
	if prev != nil && prev.To == m.To {
		sb.WriteString("同　")
	} else {
		sb.WriteString(fileNumerals[f])
		sb.WriteString(rankNumerals[r])
	}

	sb.WriteString(pieceName(m.Piece.Kind, m.Piece.Promoted))
	if m.Promote {
		sb.WriteString("成")
	}

	if m.IsDrop() {
		sb.WriteString("打")
	} else {
		sf, sr := m.From.FileRank()
		sb.WriteString(fmt.Sprintf("(%d%d)", sf, sr))
	}
	return sb.String()
}

// MoveList renders a full move sequence with 1-based move numbers, the format the
// solution printer emits one line per ply.
func MoveList(moves []shogi.Move) []string {
	lines := make([]string, 0, len(moves))
	var prev *shogi.Move
	for i, m := range moves {
		mv := m
		lines = append(lines, fmt.Sprintf("%3d %s", i+1, MoveMark(mv, prev)))
		prev = &mv
	}
	return lines
}

var handOrder = []shogi.HandKind{
	shogi.HandRook, shogi.HandBishop, shogi.HandGold, shogi.HandSilver,
	shogi.HandKnight, shogi.HandLance, shogi.HandPawn,
}

// BOD renders a board in BOD (diagram) form: White's hand, the 9x9 grid from rank 1
// to rank 9 with files labeled 9 down to 1, then Black's hand. Always 14 lines so two
// boards can be laid out side by side line-for-line.
func BOD(b *shogi.Board) []string {
	var lines []string
	lines = append(lines, "後手の持駒："+handLine(b.Hand(shogi.White)))
	lines = append(lines, "  ９ ８ ７ ６ ５ ４ ３ ２ １")
	lines = append(lines, "+---------------------------+")

	for rank := 1; rank <= 9; rank++ {
		var row strings.Builder
		row.WriteString("|")
		for file := 9; file >= 1; file-- {
			p, ok := b.Square(shogi.NewSquare(file, rank))
			if !ok {
				row.WriteString(" ・")
				continue
			}
			mark := " "
			if p.Owner == shogi.White {
				mark = "v"
			}
			row.WriteString(mark + pieceName(p.Kind, p.Promoted))
		}
		row.WriteString(fmt.Sprintf("|%s", rankNumerals[rank]))
		lines = append(lines, row.String())
	}

	lines = append(lines, "+---------------------------+")
	lines = append(lines, "先手の持駒："+handLine(b.Hand(shogi.Black)))
	return lines
}

func handLine(h shogi.Hand) string {
	var parts []string
	for _, hk := range handOrder {
		n := h.Count(hk)
		if n <= 0 {
			continue
		}
		name := pieceName(hk.Kind(), false)
		if n > 1 {
			name += numeral(n)
		}
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "なし"
	}
	return strings.Join(parts, "　")
}

func numeral(n int) string {
	const digits = "〇一二三四五六七八九"
	if n < 10 {
		return string([]rune(digits)[n])
	}
	return fmt.Sprintf("%d", n)
}

// SideBySide lays out two BOD diagrams left and right of each other, separated by sep,
// for comparing the current search position against the target position.
func SideBySide(left, right *shogi.Board, sep string) []string {
	l := BOD(left)
	r := BOD(right)
	width := 0
	for _, s := range l {
		if n := visualWidth(s); n > width {
			width = n
		}
	}

	n := len(l)
	if len(r) > n {
		n = len(r)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var a, b string
		if i < len(l) {
			a = l[i]
		}
		if i < len(r) {
			b = r[i]
		}
		out = append(out, padTo(a, width)+sep+b)
	}
	return out
}

// visualWidth approximates the East-Asian display width of a string: each rune
// above U+2E80 (CJK, kana and full-width forms) counts as two columns and every
// other rune as one, matching the width cshogi's board_to_bod
// output occupies in a monospaced terminal.
func visualWidth(s string) int {
	n := 0
	for _, r := range s {
		if r > 0x2E80 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func padTo(s string, width int) string {
	if w := visualWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
