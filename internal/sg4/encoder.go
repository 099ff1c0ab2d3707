package sg4

// Encoder builds a move stream, byte for byte the inverse of Decoder. It
// exists for round-trip tests and fixture databases; the conversion path
// itself only reads.
type Encoder struct {
	buf []byte
}

// Move appends a packed slot/code move byte.
func (e *Encoder) Move(slot, code int) *Encoder {
	e.buf = append(e.buf, byte(slot&0xF)<<4|byte(code&0xF))
	return e
}

// Aux appends a raw auxiliary byte following a move that needs one.
func (e *Encoder) Aux(b byte) *Encoder {
	e.buf = append(e.buf, b)
	return e
}

// NAG appends an annotation glyph marker.
func (e *Encoder) NAG(value int) *Encoder {
	e.buf = append(e.buf, markerNAG, byte(value))
	return e
}

// Comment appends a NUL-terminated comment.
func (e *Encoder) Comment(text string) *Encoder {
	e.buf = append(e.buf, markerComment)
	e.buf = append(e.buf, text...)
	e.buf = append(e.buf, 0)
	return e
}

// StartVariation appends a variation-open marker.
func (e *Encoder) StartVariation() *Encoder {
	e.buf = append(e.buf, markerVariationStart)
	return e
}

// EndVariation appends a variation-close marker.
func (e *Encoder) EndVariation() *Encoder {
	e.buf = append(e.buf, markerVariationEnd)
	return e
}

// EndGame appends the stream terminator.
func (e *Encoder) EndGame() *Encoder {
	e.buf = append(e.buf, markerEndGame)
	return e
}

// Bytes returns the accumulated stream.
func (e *Encoder) Bytes() []byte {
	return e.buf
}
