// Package matsig packs piece-count material signatures. The index record
// carries the signature of each game's final position; comparing it with
// the position the decoder actually reached is a cheap end-to-end check on
// the whole move stream.
package matsig

import (
	"github.com/lgbarn/scid2pgn-go/internal/chess"
)

// Signature is a 24-bit packed count of the material on the board: four
// bits per side for pawns, two bits for each other piece type. Counts
// saturate at their field maximum, so positions with, say, four queens
// from promotions still compare equal.
type Signature uint32

const (
	wpShift = 20
	bpShift = 16
	wqShift = 14
	wrShift = 12
	wbShift = 10
	wnShift = 8
	bqShift = 6
	brShift = 4
	bbShift = 2
	bnShift = 0

	pawnMax  = 15
	pieceMax = 3
)

// Counts holds explicit per-type piece counts for both sides.
type Counts struct {
	Pawns   [2]int
	Knights [2]int
	Bishops [2]int
	Rooks   [2]int
	Queens  [2]int
}

// Pack builds a signature from counts, saturating each field.
func Pack(c Counts) Signature {
	w, b := chess.White, chess.Black
	return Signature(cap4(c.Pawns[w])<<wpShift |
		cap4(c.Pawns[b])<<bpShift |
		cap2(c.Queens[w])<<wqShift |
		cap2(c.Rooks[w])<<wrShift |
		cap2(c.Bishops[w])<<wbShift |
		cap2(c.Knights[w])<<wnShift |
		cap2(c.Queens[b])<<bqShift |
		cap2(c.Rooks[b])<<brShift |
		cap2(c.Bishops[b])<<bbShift |
		cap2(c.Knights[b])<<bnShift)
}

// Unpack expands a signature back to counts. Saturated fields come back as
// the field maximum.
func Unpack(s Signature) Counts {
	var c Counts
	w, b := chess.White, chess.Black
	c.Pawns[w] = int(s >> wpShift & 0xF)
	c.Pawns[b] = int(s >> bpShift & 0xF)
	c.Queens[w] = int(s >> wqShift & 0x3)
	c.Rooks[w] = int(s >> wrShift & 0x3)
	c.Bishops[w] = int(s >> wbShift & 0x3)
	c.Knights[w] = int(s >> wnShift & 0x3)
	c.Queens[b] = int(s >> bqShift & 0x3)
	c.Rooks[b] = int(s >> brShift & 0x3)
	c.Bishops[b] = int(s >> bbShift & 0x3)
	c.Knights[b] = int(s >> bnShift & 0x3)
	return c
}

// FromPosition computes the signature of the material standing on the board.
func FromPosition(p *chess.Position) Signature {
	var c Counts
	for colour := chess.White; colour <= chess.Black; colour++ {
		for slot := 0; slot < chess.SlotsPerSide; slot++ {
			s := p.SlotOf(colour, slot)
			if !s.Alive {
				continue
			}
			switch s.Type {
			case chess.Pawn:
				c.Pawns[colour]++
			case chess.Knight:
				c.Knights[colour]++
			case chess.Bishop:
				c.Bishops[colour]++
			case chess.Rook:
				c.Rooks[colour]++
			case chess.Queen:
				c.Queens[colour]++
			}
		}
	}
	return Pack(c)
}

// Matches reports whether a stored signature agrees with a position's
// material.
func Matches(stored Signature, p *chess.Position) bool {
	return stored&0xFFFFFF == FromPosition(p)
}

func cap4(n int) int {
	if n > pawnMax {
		return pawnMax
	}
	return n
}

func cap2(n int) int {
	if n > pieceMax {
		return pieceMax
	}
	return n
}
