// Package si4 decodes the fixed-layout index artifact: a prologue header
// followed by one packed 47-byte record per game. All multi-byte integers
// in the artifact are little-endian, uniformly.
package si4

import (
	"bytes"
	"encoding/binary"

	"github.com/lgbarn/scid2pgn-go/internal/chess"
	"github.com/lgbarn/scid2pgn-go/internal/errors"
)

const (
	// Magic is the index artifact's magic literal.
	Magic = "Scid.si\x00"

	// Version is the only index version this package reads.
	Version = 400

	// HeaderSize is the fixed prologue length in bytes.
	HeaderSize = 182

	// RecordSize is the packed per-game record length in bytes.
	RecordSize = 47

	descriptionSize = 108
	customFlagsSize = 54
)

// Flag bits of the record's flags word.
const (
	FlagCustomStart = 1 << 0 // game starts from a non-standard position
	FlagPromotion   = 1 << 1
	FlagUnderPromo  = 1 << 2
	FlagDeleted     = 1 << 3
)

// Header is the decoded index prologue.
type Header struct {
	Version     uint16
	BaseType    uint32
	NumGames    int
	AutoLoad    int
	Description string
}

// Record is one decoded 47-byte index record. Packed sub-fields are held
// widened; encode masks them back to their declared bit widths.
type Record struct {
	// Location of the game's move stream in the game-file artifact.
	Offset uint32
	Length uint32 // 17 bits

	Flags uint16

	// Name-table identifiers: 20/20/19/19/18 bits.
	WhiteID uint32
	BlackID uint32
	EventID uint32
	SiteID  uint32
	RoundID uint32

	Result       chess.Result
	VarCount     int // 4 bits each
	CommentCount int
	NagCount     int

	ECO uint16

	Date      chess.Date
	EventDate chess.Date

	WhiteElo int // 12 bits each
	BlackElo int

	FinalMatSig uint32
	HalfMoves   int // 10 bits

	HomePawnData [9]byte
}

// CustomStart reports whether the game begins from a supplied position
// rather than the standard arrangement.
func (r *Record) CustomStart() bool { return r.Flags&FlagCustomStart != 0 }

// Deleted reports whether the game is marked deleted in the index.
func (r *Record) Deleted() bool { return r.Flags&FlagDeleted != 0 }

// DecodeHeader parses the fixed-length index prologue.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, errors.Format(errors.ErrTruncated, "index", len(b))
	}
	if !bytes.Equal(b[:8], []byte(Magic)) {
		return Header{}, errors.Format(errors.ErrBadMagic, "index", 0)
	}
	h := Header{
		Version:  binary.LittleEndian.Uint16(b[8:10]),
		BaseType: binary.LittleEndian.Uint32(b[10:14]),
		NumGames: int(uint24(b[14:17])),
		AutoLoad: int(uint24(b[17:20])),
	}
	if h.Version != Version {
		return Header{}, errors.Format(errors.ErrUnsupportedVersion, "index", 8)
	}
	desc := b[20 : 20+descriptionSize]
	if i := bytes.IndexByte(desc, 0); i >= 0 {
		desc = desc[:i]
	}
	h.Description = string(desc)
	return h, nil
}

// EncodeHeader renders a header back to its fixed prologue layout.
func EncodeHeader(h Header) []byte {
	b := make([]byte, HeaderSize)
	copy(b, Magic)
	binary.LittleEndian.PutUint16(b[8:10], h.Version)
	binary.LittleEndian.PutUint32(b[10:14], h.BaseType)
	putUint24(b[14:17], uint32(h.NumGames))
	putUint24(b[17:20], uint32(h.AutoLoad))
	copy(b[20:20+descriptionSize], h.Description)
	return b
}

// DecodeRecord unpacks one 47-byte index record. All numeric fields use
// little-endian order; the packed name-IDs combine masked high bits from a
// shared byte with a per-field low word.
func DecodeRecord(b []byte) (Record, error) {
	if len(b) < RecordSize {
		return Record{}, errors.Format(errors.ErrTruncated, "index", len(b))
	}

	var r Record
	r.Offset = binary.LittleEndian.Uint32(b[0:4])

	lengthLow := uint32(binary.LittleEndian.Uint16(b[4:6]))
	lengthHigh := uint32(b[6])
	r.Length = lengthLow | (lengthHigh&0x80)<<9

	r.Flags = binary.LittleEndian.Uint16(b[7:9])

	whiteBlackHigh := uint32(b[9])
	r.WhiteID = whiteBlackHigh>>4<<16 | uint32(binary.LittleEndian.Uint16(b[10:12]))
	r.BlackID = whiteBlackHigh&0xF<<16 | uint32(binary.LittleEndian.Uint16(b[12:14]))

	eventSiteRndHigh := uint32(b[14])
	r.EventID = eventSiteRndHigh>>5<<16 | uint32(binary.LittleEndian.Uint16(b[15:17]))
	r.SiteID = eventSiteRndHigh>>2&0x7<<16 | uint32(binary.LittleEndian.Uint16(b[17:19]))
	r.RoundID = eventSiteRndHigh&0x3<<16 | uint32(binary.LittleEndian.Uint16(b[19:21]))

	varCounts := binary.LittleEndian.Uint16(b[21:23])
	r.Result = chess.Result(varCounts >> 12)
	r.VarCount = int(varCounts & 0xF)
	r.CommentCount = int(varCounts >> 4 & 0xF)
	r.NagCount = int(varCounts >> 8 & 0xF)
	if r.Result > chess.Draw {
		return Record{}, errors.Format(errors.ErrCorrupt, "index", 21)
	}

	r.ECO = binary.LittleEndian.Uint16(b[23:25])

	r.Date, r.EventDate = UnpackDates(binary.LittleEndian.Uint32(b[25:29]))

	r.WhiteElo = int(binary.LittleEndian.Uint16(b[29:31]) & 0x0FFF)
	r.BlackElo = int(binary.LittleEndian.Uint16(b[31:33]) & 0x0FFF)

	r.FinalMatSig = binary.LittleEndian.Uint32(b[33:37])

	copy(r.HomePawnData[:], b[38:47])
	r.HalfMoves = int(b[37]) | int(r.HomePawnData[0]>>6)<<8
	// The top two bits of HomePawnData[0] belong to the half-move count.
	r.HomePawnData[0] &= 0x3F

	return r, nil
}

// EncodeRecord packs a record back to 47 bytes, masking every sub-field to
// its declared bit width.
func EncodeRecord(r Record) [RecordSize]byte {
	var b [RecordSize]byte
	binary.LittleEndian.PutUint32(b[0:4], r.Offset)
	binary.LittleEndian.PutUint16(b[4:6], uint16(r.Length))
	b[6] = byte(r.Length >> 9 & 0x80)
	binary.LittleEndian.PutUint16(b[7:9], r.Flags)

	b[9] = byte(r.WhiteID>>16&0xF<<4 | r.BlackID>>16&0xF)
	binary.LittleEndian.PutUint16(b[10:12], uint16(r.WhiteID))
	binary.LittleEndian.PutUint16(b[12:14], uint16(r.BlackID))

	b[14] = byte(r.EventID>>16&0x7<<5 | r.SiteID>>16&0x7<<2 | r.RoundID>>16&0x3)
	binary.LittleEndian.PutUint16(b[15:17], uint16(r.EventID))
	binary.LittleEndian.PutUint16(b[17:19], uint16(r.SiteID))
	binary.LittleEndian.PutUint16(b[19:21], uint16(r.RoundID))

	varCounts := uint16(r.Result)<<12 |
		uint16(r.NagCount&0xF)<<8 |
		uint16(r.CommentCount&0xF)<<4 |
		uint16(r.VarCount&0xF)
	binary.LittleEndian.PutUint16(b[21:23], varCounts)

	binary.LittleEndian.PutUint16(b[23:25], r.ECO)
	binary.LittleEndian.PutUint32(b[25:29], PackDates(r.Date, r.EventDate))
	binary.LittleEndian.PutUint16(b[29:31], uint16(r.WhiteElo&0x0FFF))
	binary.LittleEndian.PutUint16(b[31:33], uint16(r.BlackElo&0x0FFF))
	binary.LittleEndian.PutUint32(b[33:37], r.FinalMatSig)

	b[37] = byte(r.HalfMoves)
	copy(b[38:47], r.HomePawnData[:])
	b[38] = b[38]&0x3F | byte(r.HalfMoves>>8&0x3)<<6

	return b
}

// ParseIndex decodes the header and every record of a whole index artifact.
func ParseIndex(data []byte) (Header, []Record, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	need := HeaderSize + h.NumGames*RecordSize
	if len(data) < need {
		return Header{}, nil, errors.Format(errors.ErrTruncated, "index", len(data))
	}
	records := make([]Record, h.NumGames)
	for i := 0; i < h.NumGames; i++ {
		off := HeaderSize + i*RecordSize
		rec, err := DecodeRecord(data[off : off+RecordSize])
		if err != nil {
			return Header{}, nil, errors.Wrapf(err, "record %d", i+1)
		}
		records[i] = rec
	}
	return h, records, nil
}

func uint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
