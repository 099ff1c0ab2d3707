package engine

import (
	"github.com/lgbarn/scid2pgn-go/internal/chess"
	"github.com/lgbarn/scid2pgn-go/internal/errors"
)

// AuxFunc supplies the extra stream byte a queen's diagonal move needs.
type AuxFunc func() (byte, error)

// Square difference tables for the single-step pieces. Codes index into
// these; Black pawns use the negated pawn differences.
var (
	kingDiffs   = [...]int{-9, -8, -7, -1, 1, 7, 8, 9} // codes 1-8
	knightDiffs = [...]int{-17, -15, -10, -6, 6, 10, 15, 17}
)

const (
	kingCodeNull      = 0
	kingCodeQueenside = 9
	kingCodeKingside  = 10
)

// Pawn codes group by movement (capture toward the a-file, push, capture
// toward the h-file) and promotion piece. Code 12 is the double push.
var pawnCodes = [16]struct {
	diff  int
	promo chess.Piece
}{
	{7, chess.Empty}, {8, chess.Empty}, {9, chess.Empty},
	{7, chess.Queen}, {8, chess.Queen}, {9, chess.Queen},
	{7, chess.Rook}, {8, chess.Rook}, {9, chess.Rook},
	{7, chess.Bishop}, {8, chess.Bishop}, {9, chess.Bishop},
	{16, chess.Empty},
	{7, chess.Knight}, {8, chess.Knight}, {9, chess.Knight},
}

// Resolve interprets one slot/code token against the position and returns
// the fully described move, unapplied. The aux callback is consulted only
// when a queen moves diagonally, which the packed code cannot express.
func Resolve(p *chess.Position, slot, code int, aux AuxFunc) (*chess.Move, error) {
	colour := p.ToMove
	s := p.SlotOf(colour, slot)
	if !s.Alive {
		return nil, errors.Wrapf(errors.ErrIllegalToken, "%v slot %d is not on the board", colour, slot)
	}

	m := chess.NewMove()
	m.Colour = colour
	m.Slot = slot
	m.Piece = s.Type
	m.From = s.Square
	m.Class = chess.PieceMove

	from := s.Square
	switch s.Type {
	case chess.King:
		switch {
		case code == kingCodeNull:
			m.Class = chess.NullMove
			m.To = from
			return m, nil
		case code == kingCodeQueenside:
			return resolveCastle(p, m, chess.Queenside)
		case code == kingCodeKingside:
			return resolveCastle(p, m, chess.Kingside)
		case code >= 1 && code <= 8:
			m.To = from + chess.Square(kingDiffs[code-1])
		default:
			return nil, errors.Wrapf(errors.ErrIllegalToken, "king code %d", code)
		}
	case chess.Knight:
		if code < 1 || code > 8 {
			return nil, errors.Wrapf(errors.ErrIllegalToken, "knight code %d", code)
		}
		m.To = from + chess.Square(knightDiffs[code-1])
	case chess.Rook:
		if code < 8 {
			m.To = chess.MakeSquare(code, from.Rank())
		} else {
			m.To = chess.MakeSquare(from.File(), code-8)
		}
	case chess.Bishop:
		destFile := code & 7
		shift := destFile - from.File()
		if code < 8 {
			m.To = from + chess.Square(9*shift)
		} else {
			m.To = from - chess.Square(7*shift)
		}
	case chess.Queen:
		switch {
		case code < 8 && code == from.File():
			// A rook-style move to the queen's own file and rank is
			// impossible, so this code escapes to a full destination byte.
			b, err := aux()
			if err != nil {
				return nil, err
			}
			if b < 64 || b >= 128 {
				return nil, errors.Wrapf(errors.ErrIllegalToken, "queen destination byte %d", b)
			}
			m.To = chess.Square(b - 64)
		case code < 8:
			m.To = chess.MakeSquare(code, from.Rank())
		default:
			m.To = chess.MakeSquare(from.File(), code-8)
		}
	case chess.Pawn:
		return resolvePawn(p, m, code)
	default:
		return nil, errors.Wrapf(errors.ErrIllegalToken, "slot %d holds no piece", slot)
	}

	if err := validatePieceMove(p, m); err != nil {
		return nil, err
	}
	return m, nil
}

// validatePieceMove checks geometry, occupancy, and king safety for a
// non-pawn, non-castle move, and fills in the capture fields.
func validatePieceMove(p *chess.Position, m *chess.Move) error {
	if !m.To.Valid() {
		return errors.Wrapf(errors.ErrIllegalToken, "%v to off-board square", m.Piece)
	}
	// reaches works on true file/rank deltas, so a single-step diff that
	// wrapped around a board edge fails the shape test here.
	if !reaches(p, m.From, m.To) {
		return errors.Wrapf(errors.ErrIllegalToken, "%v cannot move %v-%v", m.Piece, m.From, m.To)
	}
	if dest := p.At(m.To); dest.Piece != chess.Empty {
		m.Captured = dest.Piece
		m.CapturedSquare = m.To
	}
	if !leavesKingSafe(p, m.Colour, m.From, m.To) {
		return errors.Wrapf(errors.ErrIllegalToken, "%v-%v leaves the king in check", m.From, m.To)
	}
	return nil
}

// resolvePawn decodes a pawn code, including double pushes, en-passant
// captures, and promotions.
func resolvePawn(p *chess.Position, m *chess.Move, code int) (*chess.Move, error) {
	entry := pawnCodes[code]
	diff := entry.diff
	if m.Colour == chess.Black {
		diff = -diff
	}
	m.To = m.From + chess.Square(diff)
	m.Class = chess.PawnMove
	m.Promotion = entry.promo

	if !m.To.Valid() || !reaches(p, m.From, m.To) {
		return nil, errors.Wrapf(errors.ErrIllegalToken, "pawn cannot move %v-%v", m.From, m.To)
	}

	isCapture := m.To.File() != m.From.File()
	if isCapture {
		if dest := p.At(m.To); dest.Piece != chess.Empty {
			m.Captured = dest.Piece
			m.CapturedSquare = m.To
		} else {
			// reaches admitted it, so this is an en-passant capture.
			m.Class = chess.EnPassantPawnMove
			m.Captured = chess.Pawn
			m.CapturedSquare = chess.MakeSquare(m.To.File(), m.From.Rank())
		}
	}

	lastRank := 7
	if m.Colour == chess.Black {
		lastRank = 0
	}
	if (m.Promotion != chess.Empty) != (m.To.Rank() == lastRank) {
		return nil, errors.Wrapf(errors.ErrIllegalToken, "promotion mismatch on %v-%v", m.From, m.To)
	}
	if m.Promotion != chess.Empty {
		m.Class = chess.PawnMoveWithPromotion
	}

	if !leavesKingSafe(p, m.Colour, m.From, m.To) {
		return nil, errors.Wrapf(errors.ErrIllegalToken, "%v-%v leaves the king in check", m.From, m.To)
	}
	return m, nil
}

// resolveCastle validates a castling move: rights intact, the path empty,
// the rook present, and none of the king's squares attacked.
func resolveCastle(p *chess.Position, m *chess.Move, side chess.CastleSide) (*chess.Move, error) {
	colour := m.Colour
	if !p.CanCastle[colour][side] {
		return nil, errors.Wrapf(errors.ErrIllegalToken, "%v has no %s castling rights", colour, sideName(side))
	}

	rank := 0
	if colour == chess.Black {
		rank = 7
	}
	kingFrom := chess.MakeSquare(4, rank)
	if m.From != kingFrom {
		return nil, errors.Wrapf(errors.ErrIllegalToken, "castling king not on %v", kingFrom)
	}

	var kingTo, rookFrom chess.Square
	if side == chess.Kingside {
		kingTo = chess.MakeSquare(6, rank)
		rookFrom = chess.MakeSquare(7, rank)
		m.Class = chess.KingsideCastle
	} else {
		kingTo = chess.MakeSquare(2, rank)
		rookFrom = chess.MakeSquare(0, rank)
		m.Class = chess.QueensideCastle
	}

	rook := p.At(rookFrom)
	if rook.Piece != chess.Rook || rook.Colour != colour {
		return nil, errors.Wrapf(errors.ErrIllegalToken, "no %v rook on %v", colour, rookFrom)
	}
	if !pathClear(p, kingFrom, rookFrom) {
		return nil, errors.Wrapf(errors.ErrIllegalToken, "castling path %v-%v blocked", kingFrom, rookFrom)
	}

	enemy := colour.Opposite()
	transit := chess.MakeSquare(5, rank)
	if side == chess.Queenside {
		transit = chess.MakeSquare(3, rank)
	}
	for _, sq := range []chess.Square{kingFrom, transit, kingTo} {
		if SquareAttacked(p, sq, enemy) {
			return nil, errors.Wrapf(errors.ErrIllegalToken, "castling through attacked square %v", sq)
		}
	}

	m.To = kingTo
	return m, nil
}

func sideName(side chess.CastleSide) string {
	if side == chess.Kingside {
		return "kingside"
	}
	return "queenside"
}
