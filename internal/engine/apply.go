package engine

import (
	"github.com/lgbarn/scid2pgn-go/internal/chess"
)

// Apply mutates the position by a resolved move: board and arena updates,
// castling-right maintenance, the en-passant target, both counters, and the
// side to move. The move must have come from Resolve against this position.
func Apply(p *chess.Position, m *chess.Move) {
	colour := m.Colour

	switch m.Class {
	case chess.NullMove:
		// Nothing moves; only the turn state advances below.
	case chess.KingsideCastle, chess.QueensideCastle:
		applyCastle(p, m)
	default:
		if m.Captured != chess.Empty {
			p.Remove(m.CapturedSquare)
		}
		p.MoveSlot(colour, m.Slot, m.To)
		if m.Promotion != chess.Empty {
			p.Slots[colour][m.Slot].Type = m.Promotion
			p.Board[m.To].Piece = m.Promotion
		}
	}

	updateCastlingRights(p)

	p.EPSquare = chess.NoSquare
	if m.Piece == chess.Pawn && abs(int(m.To-m.From)) == 16 {
		p.EPSquare = (m.From + m.To) / 2
	}

	if m.Piece == chess.Pawn || m.Captured != chess.Empty {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}

	if colour == chess.Black {
		p.MoveNum++
	}
	p.ToMove = colour.Opposite()
}

func applyCastle(p *chess.Position, m *chess.Move) {
	rank := 0
	if m.Colour == chess.Black {
		rank = 7
	}
	var rookFrom, rookTo chess.Square
	if m.Class == chess.KingsideCastle {
		rookFrom = chess.MakeSquare(7, rank)
		rookTo = chess.MakeSquare(5, rank)
	} else {
		rookFrom = chess.MakeSquare(0, rank)
		rookTo = chess.MakeSquare(3, rank)
	}
	rookSlot := int(p.At(rookFrom).Slot)
	p.MoveSlot(m.Colour, m.Slot, m.To)
	p.MoveSlot(m.Colour, rookSlot, rookTo)
}

// updateCastlingRights clears any right whose king or rook is no longer on
// its home square. Rights only ever decay, so rechecking after every move
// covers king moves, rook moves, and rook captures alike.
func updateCastlingRights(p *chess.Position) {
	for colour := chess.White; colour <= chess.Black; colour++ {
		rank := 0
		if colour == chess.Black {
			rank = 7
		}
		kingHome := p.At(chess.MakeSquare(4, rank))
		kingAtHome := kingHome.Piece == chess.King && kingHome.Colour == colour
		for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
			if !p.CanCastle[colour][side] {
				continue
			}
			file := 7
			if side == chess.Queenside {
				file = 0
			}
			rook := p.At(chess.MakeSquare(file, rank))
			if !kingAtHome || rook.Piece != chess.Rook || rook.Colour != colour {
				p.CanCastle[colour][side] = false
			}
		}
	}
}
