package si4

import (
	"testing"

	"github.com/lgbarn/scid2pgn-go/internal/chess"
	"github.com/lgbarn/scid2pgn-go/internal/testutil"
)

func TestPackDatesRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		game  chess.Date
		event chess.Date
	}{
		{"full date no event", chess.Date{Year: 2022, Month: 12, Day: 19}, chess.Date{}},
		{"event same year", chess.Date{Year: 2022, Month: 12, Day: 19}, chess.Date{Year: 2022, Month: 12, Day: 1}},
		{"event earlier year", chess.Date{Year: 2000, Month: 6, Day: 15}, chess.Date{Year: 1998, Month: 1, Day: 2}},
		{"event later year", chess.Date{Year: 2000, Month: 6, Day: 15}, chess.Date{Year: 2003, Month: 12, Day: 31}},
		{"year only", chess.Date{Year: 1985}, chess.Date{}},
		{"year and month", chess.Date{Year: 1985, Month: 4}, chess.Date{}},
		{"unknown date", chess.Date{}, chess.Date{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, event := UnpackDates(PackDates(tt.game, tt.event))
			testutil.AssertEqual(t, game, tt.game, "game date")
			testutil.AssertEqual(t, event, tt.event, "event date")
		})
	}
}

func TestPackDatesEventOffsetRange(t *testing.T) {
	// Every event year within three years of the game year survives the
	// round trip; anything further is stored as absent.
	game := chess.Date{Year: 2000, Month: 1, Day: 1}
	for ey := 1990; ey <= 2010; ey++ {
		event := chess.Date{Year: ey, Month: 5, Day: 5}
		_, got := UnpackDates(PackDates(game, event))
		if ey >= 1997 && ey <= 2003 {
			testutil.AssertEqual(t, got, event, "event year %d", ey)
		} else {
			testutil.AssertTrue(t, got.IsZero(), "event year %d should be dropped", ey)
		}
	}
}

func TestUnpackDatesInvalidEventCode(t *testing.T) {
	// An event code whose month or day is not a calendar value decodes to an
	// absent event date, not an error.
	game := packDate(chess.Date{Year: 2000, Month: 1, Day: 1})
	badMonth := uint32(4)<<dateYearShift | 13<<dateMonthShift | 1
	_, event := UnpackDates(game | badMonth<<eventDateShift)
	testutil.AssertTrue(t, event.IsZero(), "month 13")

	dayNoMonth := uint32(4)<<dateYearShift | 0<<dateMonthShift | 12
	_, event = UnpackDates(game | dayNoMonth<<eventDateShift)
	testutil.AssertTrue(t, event.IsZero(), "day without month")
}

func TestUnpackDatesZeroOffsetMeansAbsent(t *testing.T) {
	game := packDate(chess.Date{Year: 2000, Month: 1, Day: 1})
	coded := uint32(0)<<dateYearShift | 6<<dateMonthShift | 10
	_, event := UnpackDates(game | coded<<eventDateShift)
	testutil.AssertTrue(t, event.IsZero())
}

func TestPackDateExhaustive(t *testing.T) {
	// The 20-bit code is positional, so every (year, month, day) triple in
	// range must survive the round trip independently of validity checks.
	for year := 0; year <= 2047; year += 97 {
		for month := 0; month <= 12; month++ {
			for day := 0; day <= 31; day += 3 {
				d := chess.Date{Year: year, Month: month, Day: day}
				if got := unpackDate(packDate(d)); got != d {
					t.Fatalf("round trip %v: got %v", d, got)
				}
			}
		}
	}
}
