package sg4

import (
	"github.com/lgbarn/scid2pgn-go/internal/errors"
)

// Decoder walks one game's move stream lazily, yielding a token per Next
// call. It holds only the stream slice and a cursor; callers that need the
// board meaning of a move byte resolve it elsewhere.
type Decoder struct {
	data []byte
	pos  int
	done bool

	missingTerminator bool
}

// NewDecoder returns a decoder over one game's stream bytes.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Offset returns the cursor position, for error reporting.
func (d *Decoder) Offset() int { return d.pos }

// Done reports whether the stream has ended.
func (d *Decoder) Done() bool { return d.done }

// MissingTerminator reports whether the stream ran out of bytes before its
// end-of-game marker. The decode still completes; callers surface this as a
// warning.
func (d *Decoder) MissingTerminator() bool { return d.missingTerminator }

// Next returns the next token. After the end-of-game marker (or byte
// exhaustion) it keeps returning KindEndGame.
func (d *Decoder) Next() (Token, error) {
	if d.done {
		return Token{Kind: KindEndGame}, nil
	}
	if d.pos >= len(d.data) {
		// Running out of bytes without the terminator is tolerated.
		d.done = true
		d.missingTerminator = true
		return Token{Kind: KindEndGame}, nil
	}

	b := d.data[d.pos]
	d.pos++

	slot := int(b >> 4)
	code := int(b & 0x0F)
	if slot == 0 && code > 10 {
		switch b {
		case markerNAG:
			nag, err := d.byte()
			if err != nil {
				return Token{}, err
			}
			return Token{Kind: KindNAG, NAG: int(nag)}, nil
		case markerComment:
			text, err := d.text()
			if err != nil {
				return Token{}, err
			}
			return Token{Kind: KindComment, Comment: text}, nil
		case markerVariationStart:
			return Token{Kind: KindVariationStart}, nil
		case markerVariationEnd:
			return Token{Kind: KindVariationEnd}, nil
		case markerEndGame:
			d.done = true
			return Token{Kind: KindEndGame}, nil
		}
	}
	return Token{Kind: KindMove, Slot: slot, Code: code}, nil
}

// AuxByte consumes one raw stream byte. The engine calls this when a move
// byte needs an extra destination byte that the tokenizer cannot recognize
// on its own.
func (d *Decoder) AuxByte() (byte, error) {
	return d.byte()
}

func (d *Decoder) byte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, errors.Format(errors.ErrTruncated, "gamefile", d.pos)
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

// text reads comment bytes through their NUL terminator.
func (d *Decoder) text() (string, error) {
	start := d.pos
	for d.pos < len(d.data) {
		if d.data[d.pos] == 0 {
			s := string(d.data[start:d.pos])
			d.pos++
			return s, nil
		}
		d.pos++
	}
	return "", errors.Format(errors.ErrTruncated, "gamefile", start)
}
