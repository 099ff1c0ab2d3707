package engine

import (
	"github.com/lgbarn/scid2pgn-go/internal/chess"
)

// SAN synthesizes the standard algebraic notation for a resolved move
// against the position it was resolved on, without the check suffix. The
// suffix depends on the position after the move; Step appends it.
func SAN(p *chess.Position, m *chess.Move) string {
	switch m.Class {
	case chess.NullMove:
		return chess.NullMoveString
	case chess.KingsideCastle:
		return "O-O"
	case chess.QueensideCastle:
		return "O-O-O"
	}

	buf := make([]byte, 0, 8)
	if m.Piece == chess.Pawn {
		if m.IsCapture() {
			buf = append(buf, byte('a'+m.From.File()), 'x')
		}
		buf = append(buf, m.To.String()...)
		if m.Promotion != chess.Empty {
			buf = append(buf, '=', m.Promotion.Letter())
		}
		return string(buf)
	}

	buf = append(buf, m.Piece.Letter())
	buf = append(buf, disambiguation(p, m)...)
	if m.IsCapture() {
		buf = append(buf, 'x')
	}
	buf = append(buf, m.To.String()...)
	return string(buf)
}

// disambiguation returns the minimal from-square qualifier needed when
// another piece of the same type and colour could also legally reach the
// destination. File wins over rank; both appear only when neither alone
// separates the candidates.
func disambiguation(p *chess.Position, m *chess.Move) []byte {
	sameFile, sameRank, others := false, false, false
	for slot := 0; slot < chess.SlotsPerSide; slot++ {
		if slot == m.Slot {
			continue
		}
		s := p.SlotOf(m.Colour, slot)
		if !s.Alive || s.Type != m.Piece {
			continue
		}
		if !reaches(p, s.Square, m.To) || !leavesKingSafe(p, m.Colour, s.Square, m.To) {
			continue
		}
		others = true
		if s.Square.File() == m.From.File() {
			sameFile = true
		}
		if s.Square.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	if !others {
		return nil
	}
	switch {
	case !sameFile:
		return []byte{byte('a' + m.From.File())}
	case !sameRank:
		return []byte{byte('1' + m.From.Rank())}
	default:
		return []byte{byte('a' + m.From.File()), byte('1' + m.From.Rank())}
	}
}

// Step resolves one slot/code token, names it, applies it, and determines
// its check status. This is the per-move unit of the decode pipeline.
func Step(p *chess.Position, slot, code int, aux AuxFunc) (*chess.Move, error) {
	m, err := Resolve(p, slot, code, aux)
	if err != nil {
		return nil, err
	}
	m.Text = SAN(p, m)
	Apply(p, m)

	if InCheck(p, p.ToMove) {
		if HasLegalReply(p) {
			m.CheckStatus = chess.Check
			m.Text += "+"
		} else {
			m.CheckStatus = chess.Checkmate
			m.Text += "#"
		}
	}
	return m, nil
}
