// Package sfen reads and writes board positions in SFEN notation, the shogi analogue
// of chess FEN: board rows from rank 1 to rank 9, each row listing files 9 down to 1,
// followed by the side to move, the pieces held in hand, and a move number.
package sfen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/morlock-shogi/structa/pkg/shogi"
)

// Initial is the SFEN for the standard starting position.
const Initial = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// Decode parses an SFEN string into board placement, hands, turn and move number.
func Decode(sfen string) ([shogi.NumSquares]shogi.Piece, [shogi.NumColors]shogi.Hand, shogi.Color, int, error) {
	var squares [shogi.NumSquares]shogi.Piece
	var hands [shogi.NumColors]shogi.Hand

	parts := strings.Fields(strings.TrimSpace(sfen))
	if len(parts) < 3 {
		return squares, hands, 0, 0, fmt.Errorf("invalid SFEN, expected at least 3 fields: %q", sfen)
	}

	if err := decodeBoard(parts[0], &squares); err != nil {
		return squares, hands, 0, 0, err
	}

	turn, ok := parseColor(parts[1])
	if !ok {
		return squares, hands, 0, 0, fmt.Errorf("invalid side to move in SFEN: %q", sfen)
	}

	if err := decodeHands(parts[2], &hands); err != nil {
		return squares, hands, 0, 0, err
	}

	move := 1
	if len(parts) >= 4 {
		n, err := strconv.Atoi(parts[3])
		if err != nil || n <= 0 {
			return squares, hands, 0, 0, fmt.Errorf("invalid move number in SFEN: %q", sfen)
		}
		move = n
	}

	return squares, hands, turn, move, nil
}

func decodeBoard(field string, squares *[shogi.NumSquares]shogi.Piece) error {
	rows := strings.Split(field, "/")
	if len(rows) != 9 {
		return fmt.Errorf("invalid number of board rows in SFEN: %q", field)
	}

	for ri, row := range rows {
		rank := ri + 1
		file := 9
		promoted := false
		for _, r := range row {
			switch {
			case r == '+':
				promoted = true

			case unicode.IsDigit(r):
				file -= int(r - '0')

			case unicode.IsLetter(r):
				if file < 1 {
					return fmt.Errorf("too many squares in SFEN row: %q", row)
				}
				owner, kind, ok := parsePiece(r)
				if !ok {
					return fmt.Errorf("invalid piece %q in SFEN", r)
				}
				if promoted && !kind.CanPromote() {
					return fmt.Errorf("kind %v cannot be promoted in SFEN", kind)
				}
				squares[shogi.NewSquare(file, rank)] = shogi.NewPiece(owner, kind, promoted)
				promoted = false
				file--

			default:
				return fmt.Errorf("invalid character %q in SFEN row", r)
			}
		}
		if file != 0 {
			return fmt.Errorf("invalid number of squares in SFEN row: %q", row)
		}
	}
	return nil
}

func decodeHands(field string, hands *[shogi.NumColors]shogi.Hand) error {
	if field == "-" {
		return nil
	}
	count := 0
	for _, r := range field {
		switch {
		case unicode.IsDigit(r):
			count = count*10 + int(r-'0')

		case unicode.IsLetter(r):
			owner, kind, ok := parsePiece(r)
			if !ok {
				return fmt.Errorf("invalid piece %q in SFEN hand", r)
			}
			hk, ok := shogi.KindToHand(kind)
			if !ok {
				return fmt.Errorf("kind %v cannot be held in hand", kind)
			}
			if count == 0 {
				count = 1
			}
			hands[owner].Add(hk, count)
			count = 0

		default:
			return fmt.Errorf("invalid character %q in SFEN hand", r)
		}
	}
	return nil
}

// Encode renders a board placement, hands, turn and move number as an SFEN string.
func Encode(squares [shogi.NumSquares]shogi.Piece, hands [shogi.NumColors]shogi.Hand, turn shogi.Color, move int) string {
	var sb strings.Builder

	for rank := 1; rank <= 9; rank++ {
		blanks := 0
		for file := 9; file >= 1; file-- {
			p := squares[shogi.NewSquare(file, rank)]
			if p.IsEmpty() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(printPiece(p))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank < 9 {
			sb.WriteString("/")
		}
	}

	sb.WriteString(" ")
	sb.WriteString(printColor(turn))
	sb.WriteString(" ")
	sb.WriteString(printHands(hands))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(move))

	return sb.String()
}

var kindLetters = map[shogi.Kind]rune{
	shogi.Pawn: 'p', shogi.Lance: 'l', shogi.Knight: 'n', shogi.Silver: 's',
	shogi.Gold: 'g', shogi.Bishop: 'b', shogi.Rook: 'r', shogi.King: 'k',
}

func parsePiece(r rune) (shogi.Color, shogi.Kind, bool) {
	owner := shogi.Black
	lower := unicode.ToLower(r)
	if unicode.IsLower(r) {
		owner = shogi.White
	}
	for k, letter := range kindLetters {
		if letter == lower {
			return owner, k, true
		}
	}
	return 0, shogi.NoKind, false
}

func printPiece(p shogi.Piece) string {
	letter := kindLetters[p.Kind]
	if p.Owner == shogi.Black {
		letter = unicode.ToUpper(letter)
	}
	s := string(letter)
	if p.Promoted {
		s = "+" + s
	}
	return s
}

func parseColor(s string) (shogi.Color, bool) {
	switch s {
	case "b":
		return shogi.Black, true
	case "w":
		return shogi.White, true
	default:
		return 0, false
	}
}

func printColor(c shogi.Color) string {
	if c == shogi.Black {
		return "b"
	}
	return "w"
}

// printHands renders hand counts in SFEN's canonical order: Black's pieces first
// (rook, bishop, gold, silver, knight, lance, pawn), then White's, each with a count
// prefix when more than one is held. "-" if neither side holds anything.
func printHands(hands [shogi.NumColors]shogi.Hand) string {
	order := []shogi.HandKind{shogi.HandRook, shogi.HandBishop, shogi.HandGold, shogi.HandSilver, shogi.HandKnight, shogi.HandLance, shogi.HandPawn}

	var sb strings.Builder
	for _, owner := range []shogi.Color{shogi.Black, shogi.White} {
		for _, hk := range order {
			n := hands[owner].Count(hk)
			if n <= 0 {
				continue
			}
			p := shogi.NewPiece(owner, hk.Kind(), false)
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			sb.WriteString(printPiece(p))
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
