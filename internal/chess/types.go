// Package chess provides core chess types and the slot-addressed position
// used by the move-stream decoder.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// PawnDirection returns +8 for White, -8 for Black (one rank forward).
func (c Colour) PawnDirection() int {
	if c == White {
		return 8
	}
	return -8
}

// Piece represents a chess piece type.
type Piece int

const (
	Empty Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the uppercase SAN letter of a piece. Pawns have no letter.
func (p Piece) Letter() byte {
	letters := []byte{' ', ' ', 'N', 'B', 'R', 'Q', 'K'}
	if int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// Square identifies a board square, 0 = a1 .. 63 = h8.
type Square int

// NoSquare marks an absent square value.
const NoSquare Square = -1

// MakeSquare builds a square from 0-based file and rank.
func MakeSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the 0-based file of the square.
func (s Square) File() int { return int(s) & 7 }

// Rank returns the 0-based rank of the square.
func (s Square) Rank() int { return int(s) >> 3 }

// Valid reports whether the square is on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

// String renders the square in algebraic form, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare converts algebraic form ("e4") back to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return MakeSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Result represents a game result.
type Result int

const (
	ResultNone Result = iota
	WhiteWins
	BlackWins
	Draw
)

// String renders the result as a PGN result token.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Date is a calendar date with unknown components stored as zero.
type Date struct {
	Year  int
	Month int
	Day   int
}

// IsZero reports whether no component of the date is known.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Valid reports whether the date is a plausible calendar date. Partial
// dates (year only, or year and month) are valid; a month or day may not
// appear without the coarser components.
func (d Date) Valid() bool {
	if d.IsZero() {
		return true
	}
	if d.Year < 1 || d.Year > 2047 || d.Month > 12 || d.Day > 31 {
		return false
	}
	if d.Day != 0 && d.Month == 0 {
		return false
	}
	return true
}

// String renders the date in PGN form, "2022.12.19", with "??" for
// unknown components.
func (d Date) String() string {
	if d.Year == 0 {
		return "????.??.??"
	}
	month, day := "??", "??"
	if d.Month != 0 {
		month = fmt.Sprintf("%02d", d.Month)
	}
	if d.Day != 0 {
		day = fmt.Sprintf("%02d", d.Day)
	}
	return fmt.Sprintf("%04d.%s.%s", d.Year, month, day)
}

// CheckStatus indicates whether a move gives check or checkmate.
type CheckStatus int

const (
	NoCheck CheckStatus = iota
	Check
	Checkmate
)

// MoveClass categorizes different types of chess moves.
type MoveClass int

const (
	PawnMove MoveClass = iota
	PawnMoveWithPromotion
	EnPassantPawnMove
	PieceMove
	KingsideCastle
	QueensideCastle
	NullMove
)

// NullMoveString is the PGN representation of a null move.
const NullMoveString = "--"
