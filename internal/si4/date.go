package si4

import "github.com/lgbarn/scid2pgn-go/internal/chess"

// The index record stores two dates in one 32-bit word. The low 20 bits are
// the game date, year<<9 | month<<5 | day, with the year held directly
// (no epoch offset). The high 12 bits are the event date with a
// delta-encoded year: a 3-bit offset in [1..7] decodes to
// game_year + offset - 4, and offset 0 means no event date.

const (
	dateYearShift  = 9
	dateMonthShift = 5
	dateYearMask   = 0x7FF
	dateMonthMask  = 0xF
	dateDayMask    = 0x1F

	gameDateMask   = 0x000FFFFF
	eventDateShift = 20
	eventDateMask  = 0xFFF
	eventYearMask  = 0x7
)

// packDate packs a date into the 20-bit year/month/day code. A zero date
// packs to zero.
func packDate(d chess.Date) uint32 {
	return uint32(d.Year&dateYearMask)<<dateYearShift |
		uint32(d.Month&dateMonthMask)<<dateMonthShift |
		uint32(d.Day&dateDayMask)
}

// unpackDate is the inverse of packDate.
func unpackDate(v uint32) chess.Date {
	return chess.Date{
		Year:  int(v >> dateYearShift & dateYearMask),
		Month: int(v >> dateMonthShift & dateMonthMask),
		Day:   int(v & dateDayMask),
	}
}

// PackDates combines a game date and an event date into the record's dual
// date word. An event date more than three years from the game date, or an
// invalid one, is stored as absent.
func PackDates(game, event chess.Date) uint32 {
	v := packDate(game) & gameDateMask
	if event.IsZero() || !event.Valid() || event.Year < game.Year-3 || event.Year > game.Year+3 {
		return v
	}
	offset := uint32(event.Year-game.Year+4) & eventYearMask
	coded := offset<<dateYearShift |
		uint32(event.Month&dateMonthMask)<<dateMonthShift |
		uint32(event.Day&dateDayMask)
	return v | coded<<eventDateShift
}

// UnpackDates splits the dual date word. A stored event offset of zero, or
// an event code that does not decode to a calendar date, yields a zero
// event date rather than an error.
func UnpackDates(v uint32) (game, event chess.Date) {
	game = unpackDate(v & gameDateMask)
	coded := v >> eventDateShift & eventDateMask
	if coded == 0 {
		return game, chess.Date{}
	}
	offset := int(coded >> dateYearShift & eventYearMask)
	if offset == 0 {
		return game, chess.Date{}
	}
	event = chess.Date{
		Year:  game.Year + offset - 4,
		Month: int(coded >> dateMonthShift & dateMonthMask),
		Day:   int(coded & dateDayMask),
	}
	if !event.Valid() || event.Year < 1 {
		return game, chess.Date{}
	}
	return game, event
}
