package chess

import (
	"fmt"

	"github.com/lgbarn/scid2pgn-go/internal/errors"
)

// SlotsPerSide is the number of piece slots per colour in the wire format.
const SlotsPerSide = 16

// CastleSide selects one of the two castling options.
type CastleSide int

const (
	Kingside CastleSide = iota
	Queenside
)

// Slot is one entry of the per-colour piece arena. The wire format names
// pieces by slot number, which is stable for the piece's lifetime; only the
// Type may change, on promotion.
type Slot struct {
	Square Square
	Type   Piece
	Alive  bool
}

// SquareState describes the occupant of one board square. Slot is the index
// of the occupant in its colour's arena, meaningful only when Piece is not
// Empty.
type SquareState struct {
	Piece  Piece
	Colour Colour
	Slot   int8
}

// Position holds the full mutable board state. It is a plain value: all
// fields are arrays or scalars, so assignment takes a deep snapshot. The
// board array and the slot arenas must stay mutually consistent.
type Position struct {
	Board         [64]SquareState
	Slots         [2][SlotsPerSide]Slot
	ToMove        Colour
	CanCastle     [2][2]bool // [colour][side]
	EPSquare      Square     // en-passant target, NoSquare when none
	MoveNum       int
	HalfmoveClock int
}

// NewPosition returns an empty position with White to move.
func NewPosition() *Position {
	p := &Position{
		ToMove:   White,
		EPSquare: NoSquare,
		MoveNum:  1,
	}
	for i := range p.Slots[White] {
		p.Slots[White][i].Square = NoSquare
		p.Slots[Black][i].Square = NoSquare
	}
	return p
}

// initialSlots lists the slot layout of the standard starting position for
// one colour, as (slot, piece, file) with ranks implied by colour.
var initialSlots = [SlotsPerSide]struct {
	piece Piece
	file  int
}{
	{King, 4}, {Queen, 3}, {Rook, 0}, {Rook, 7},
	{Bishop, 2}, {Bishop, 5}, {Knight, 1}, {Knight, 6},
	{Pawn, 0}, {Pawn, 1}, {Pawn, 2}, {Pawn, 3},
	{Pawn, 4}, {Pawn, 5}, {Pawn, 6}, {Pawn, 7},
}

// StandardStart returns the standard initial arrangement with the
// format's slot numbering: 0 king, 1 queen, 2-3 rooks (a then h file),
// 4-5 bishops (c then f), 6-7 knights (b then g), 8-15 pawns a through h.
func StandardStart() *Position {
	p := NewPosition()
	for colour := White; colour <= Black; colour++ {
		backRank, pawnRank := 0, 1
		if colour == Black {
			backRank, pawnRank = 7, 6
		}
		for slot, init := range initialSlots {
			rank := backRank
			if init.piece == Pawn {
				rank = pawnRank
			}
			p.Place(colour, slot, init.piece, MakeSquare(init.file, rank))
		}
		p.CanCastle[colour][Kingside] = true
		p.CanCastle[colour][Queenside] = true
	}
	return p
}

// Place puts a piece into a slot and onto the board, keeping both views
// consistent. Placing onto an occupied square removes the old occupant
// from its arena.
func (p *Position) Place(colour Colour, slot int, piece Piece, sq Square) {
	if occ := p.Board[sq]; occ.Piece != Empty {
		p.Slots[occ.Colour][occ.Slot].Alive = false
		p.Slots[occ.Colour][occ.Slot].Square = NoSquare
	}
	p.Slots[colour][slot] = Slot{Square: sq, Type: piece, Alive: true}
	p.Board[sq] = SquareState{Piece: piece, Colour: colour, Slot: int8(slot)}
}

// Remove takes the occupant of a square off the board and marks its slot dead.
func (p *Position) Remove(sq Square) {
	occ := p.Board[sq]
	if occ.Piece == Empty {
		return
	}
	p.Slots[occ.Colour][occ.Slot].Alive = false
	p.Slots[occ.Colour][occ.Slot].Square = NoSquare
	p.Board[sq] = SquareState{}
}

// MoveSlot relocates a living slot to an empty destination square.
func (p *Position) MoveSlot(colour Colour, slot int, to Square) {
	from := p.Slots[colour][slot].Square
	p.Board[from] = SquareState{}
	p.Slots[colour][slot].Square = to
	p.Board[to] = SquareState{
		Piece:  p.Slots[colour][slot].Type,
		Colour: colour,
		Slot:   int8(slot),
	}
}

// At returns the occupant of a square.
func (p *Position) At(sq Square) SquareState {
	return p.Board[sq]
}

// Occupied reports whether a square holds a piece.
func (p *Position) Occupied(sq Square) bool {
	return p.Board[sq].Piece != Empty
}

// SlotOf returns a colour's slot entry.
func (p *Position) SlotOf(colour Colour, slot int) Slot {
	return p.Slots[colour][slot]
}

// KingSquare returns the square of a colour's king. Slot 0 is always the king.
func (p *Position) KingSquare(colour Colour) Square {
	return p.Slots[colour][0].Square
}

// Clone returns an independent deep copy of the position.
func (p *Position) Clone() *Position {
	q := *p
	return &q
}

// CheckInvariants verifies board/arena consistency and the one-king-per-
// colour rule. Decoding aborts the game when this fails.
func (p *Position) CheckInvariants() error {
	for colour := White; colour <= Black; colour++ {
		kings := 0
		for slot, s := range p.Slots[colour] {
			if !s.Alive {
				continue
			}
			if s.Type == King {
				kings++
			}
			if !s.Square.Valid() {
				return errors.Wrapf(errors.ErrPositionInvariant,
					"%v slot %d alive without a square", colour, slot)
			}
			occ := p.Board[s.Square]
			if occ.Piece != s.Type || occ.Colour != colour || int(occ.Slot) != slot {
				return errors.Wrapf(errors.ErrPositionInvariant,
					"%v slot %d and square %v disagree", colour, slot, s.Square)
			}
		}
		if kings != 1 {
			return errors.Wrapf(errors.ErrPositionInvariant,
				"%v has %d kings", colour, kings)
		}
	}
	return nil
}

// String renders the board for debugging, rank 8 at the top.
func (p *Position) String() string {
	glyphs := map[Piece]byte{Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k'}
	out := make([]byte, 0, 9*16)
	for rank := 7; rank >= 0; rank-- {
		out = append(out, byte('1'+rank), ' ')
		for file := 0; file < 8; file++ {
			occ := p.Board[MakeSquare(file, rank)]
			c := byte('.')
			if occ.Piece != Empty {
				c = glyphs[occ.Piece]
				if occ.Colour == White {
					c -= 'a' - 'A'
				}
			}
			out = append(out, c, ' ')
		}
		out = append(out, '\n')
	}
	return string(out) + fmt.Sprintf("  a b c d e f g h  (%v to move)\n", p.ToMove)
}
