// Package sg4 tokenizes the game-file artifact's move streams. A stream is
// a flat byte sequence mixing packed move bytes with whole-byte markers for
// annotations and variation structure. The tokenizer is position-agnostic:
// it never interprets what a move byte means on the board, it only splits
// the stream into tokens for the engine to resolve.
package sg4

import "fmt"

// Marker byte values. A move byte packs the mover's arena slot in its high
// nibble and a code in its low nibble; slot 0 is always the king, whose
// codes stop at 10, so the values 11 through 15 are free to act as markers.
const (
	markerNAG            = 0x0B
	markerComment        = 0x0C
	markerVariationStart = 0x0D
	markerVariationEnd   = 0x0E
	markerEndGame        = 0x0F
)

// TokenKind discriminates the token variants.
type TokenKind int

const (
	// KindMove is a packed slot/code move byte.
	KindMove TokenKind = iota
	// KindNAG is an annotation glyph attached to the preceding move.
	KindNAG
	// KindComment is a text comment attached to the preceding move.
	KindComment
	// KindVariationStart opens an alternative line branching from the
	// position before the most recent move.
	KindVariationStart
	// KindVariationEnd closes the innermost open variation.
	KindVariationEnd
	// KindEndGame terminates the stream.
	KindEndGame
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindNAG:
		return "nag"
	case KindComment:
		return "comment"
	case KindVariationStart:
		return "variation start"
	case KindVariationEnd:
		return "variation end"
	case KindEndGame:
		return "end of game"
	}
	return "unknown"
}

// Token is one decoded stream element. Only the fields matching Kind are
// meaningful.
type Token struct {
	Kind TokenKind

	// For KindMove: the mover's slot (0-15) and 4-bit move code.
	Slot int
	Code int

	// For KindNAG.
	NAG int

	// For KindComment.
	Comment string
}

// String renders a token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case KindMove:
		return fmt.Sprintf("move slot=%d code=%d", t.Slot, t.Code)
	case KindNAG:
		return fmt.Sprintf("$%d", t.NAG)
	case KindComment:
		return fmt.Sprintf("{%s}", t.Comment)
	default:
		return t.Kind.String()
	}
}
