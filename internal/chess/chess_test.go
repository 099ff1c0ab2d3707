package chess

import (
	"testing"

	"github.com/lgbarn/scid2pgn-go/internal/testutil"
)

func TestSquareAlgebra(t *testing.T) {
	testutil.AssertEqual(t, Square(0).String(), "a1")
	testutil.AssertEqual(t, Square(63).String(), "h8")
	testutil.AssertEqual(t, MakeSquare(4, 3).String(), "e4")
	testutil.AssertEqual(t, NoSquare.String(), "-")

	sq, err := ParseSquare("e4")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sq, MakeSquare(4, 3))

	for _, bad := range []string{"", "e", "i4", "e9", "44"} {
		_, err := ParseSquare(bad)
		testutil.AssertError(t, err, "%q", bad)
	}
}

func TestDateString(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{Date{}, "????.??.??"},
		{Date{Year: 2022, Month: 12, Day: 19}, "2022.12.19"},
		{Date{Year: 1985}, "1985.??.??"},
		{Date{Year: 1985, Month: 4}, "1985.04.??"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, tt.date.String(), tt.want)
	}
}

func TestDateValid(t *testing.T) {
	testutil.AssertTrue(t, Date{}.Valid())
	testutil.AssertTrue(t, Date{Year: 2022, Month: 12, Day: 19}.Valid())
	testutil.AssertTrue(t, Date{Year: 2022}.Valid())
	testutil.AssertFalse(t, Date{Year: 2048}.Valid())
	testutil.AssertFalse(t, Date{Year: 2022, Month: 13}.Valid())
	testutil.AssertFalse(t, Date{Year: 2022, Day: 5}.Valid(), "day without month")
}

func TestStandardStartLayout(t *testing.T) {
	p := StandardStart()

	// Slot numbering is fixed by the wire format.
	testutil.AssertEqual(t, p.SlotOf(White, 0).Type, King)
	testutil.AssertEqual(t, p.SlotOf(White, 0).Square, MakeSquare(4, 0))
	testutil.AssertEqual(t, p.SlotOf(White, 1).Type, Queen)
	testutil.AssertEqual(t, p.SlotOf(White, 2).Square, MakeSquare(0, 0))
	testutil.AssertEqual(t, p.SlotOf(White, 3).Square, MakeSquare(7, 0))
	testutil.AssertEqual(t, p.SlotOf(White, 4).Square, MakeSquare(2, 0))
	testutil.AssertEqual(t, p.SlotOf(White, 6).Square, MakeSquare(1, 0))
	for i := 0; i < 8; i++ {
		s := p.SlotOf(White, 8+i)
		testutil.AssertEqual(t, s.Type, Pawn)
		testutil.AssertEqual(t, s.Square, MakeSquare(i, 1))
		testutil.AssertEqual(t, p.SlotOf(Black, 8+i).Square, MakeSquare(i, 6))
	}

	testutil.AssertEqual(t, p.ToMove, White)
	testutil.AssertTrue(t, p.CanCastle[White][Kingside])
	testutil.AssertTrue(t, p.CanCastle[Black][Queenside])
	testutil.AssertNoError(t, p.CheckInvariants())
}

func TestPlaceEvictsOccupant(t *testing.T) {
	p := NewPosition()
	p.Place(White, 0, King, MakeSquare(4, 0))
	p.Place(Black, 0, King, MakeSquare(4, 7))
	p.Place(Black, 2, Rook, MakeSquare(3, 3))
	p.Place(White, 1, Queen, MakeSquare(3, 3))

	testutil.AssertFalse(t, p.SlotOf(Black, 2).Alive)
	testutil.AssertEqual(t, p.At(MakeSquare(3, 3)).Piece, Queen)
	testutil.AssertNoError(t, p.CheckInvariants())
}

func TestCloneIsIndependent(t *testing.T) {
	p := StandardStart()
	q := p.Clone()
	q.Remove(MakeSquare(4, 1))

	testutil.AssertTrue(t, p.Occupied(MakeSquare(4, 1)))
	testutil.AssertFalse(t, q.Occupied(MakeSquare(4, 1)))
}

func TestCheckInvariantsDetectsDrift(t *testing.T) {
	p := StandardStart()
	p.Board[MakeSquare(4, 1)] = SquareState{} // board and arena now disagree
	testutil.AssertError(t, p.CheckInvariants())

	q := StandardStart()
	q.Slots[White][0].Alive = false // no white king
	testutil.AssertError(t, q.CheckInvariants())
}

func TestMoveHelpers(t *testing.T) {
	m := NewMove()
	testutil.AssertFalse(t, m.IsCapture())
	m.Captured = Pawn
	testutil.AssertTrue(t, m.IsCapture())

	m.Class = KingsideCastle
	testutil.AssertTrue(t, m.IsCastle())
	m.Class = NullMove
	testutil.AssertTrue(t, m.IsNull())

	var nilMove *Move
	testutil.AssertTrue(t, nilMove.Last() == nil)
}

func TestGameMainlinePlies(t *testing.T) {
	g := &Game{}
	testutil.AssertEqual(t, g.MainlinePlies(), 0)

	a, b := NewMove(), NewMove()
	a.Next = b
	b.Prev = a
	g.Moves = a
	testutil.AssertEqual(t, g.MainlinePlies(), 2)
	testutil.AssertTrue(t, g.LastMove() == b)
}
