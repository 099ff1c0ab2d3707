package chess

// Variation represents an alternative line branching from the position
// before the move it is attached to.
type Variation struct {
	Moves *Move
}

// Move represents a single decoded move with its synthesized notation and
// any attached annotations. Moves form a doubly linked list per line, with
// alternative lines hanging off Variations.
type Move struct {
	// The synthesized SAN text (e.g. "Nf3", "exd5", "O-O", "e8=Q#").
	Text string

	// Class of move (pawn move, piece move, castle, null, ...).
	Class MoveClass

	Colour Colour
	From   Square
	To     Square

	// Type of the piece being moved, and its arena slot.
	Piece Piece
	Slot  int

	// Type of the captured piece (Empty if no capture). For en passant the
	// captured pawn does not stand on To.
	Captured       Piece
	CapturedSquare Square

	// The piece promoted to (Empty if not a promotion).
	Promotion Piece

	// Whether this move gives check or checkmate.
	CheckStatus CheckStatus

	// Numeric Annotation Glyph values attached to this move.
	NAGs []int

	// Comments attached after this move.
	Comments []string

	// Alternative lines branching from the position before this move.
	Variations []*Variation

	Prev *Move
	Next *Move
}

// NewMove creates an empty move with no capture or promotion.
func NewMove() *Move {
	return &Move{
		From:           NoSquare,
		To:             NoSquare,
		CapturedSquare: NoSquare,
	}
}

// IsCapture reports whether this move captures a piece.
func (m *Move) IsCapture() bool {
	return m.Captured != Empty || m.Class == EnPassantPawnMove
}

// IsCastle reports whether this move is a castling move.
func (m *Move) IsCastle() bool {
	return m.Class == KingsideCastle || m.Class == QueensideCastle
}

// IsNull reports whether this is a null move.
func (m *Move) IsNull() bool {
	return m.Class == NullMove
}

// AppendNAG attaches an annotation glyph value to this move.
func (m *Move) AppendNAG(value int) {
	m.NAGs = append(m.NAGs, value)
}

// AppendComment attaches a comment to this move.
func (m *Move) AppendComment(text string) {
	m.Comments = append(m.Comments, text)
}

// AppendVariation attaches an alternative line to this move.
func (m *Move) AppendVariation(v *Variation) {
	m.Variations = append(m.Variations, v)
}

// Last returns the final move of the line starting at m.
func (m *Move) Last() *Move {
	if m == nil {
		return nil
	}
	for m.Next != nil {
		m = m.Next
	}
	return m
}
