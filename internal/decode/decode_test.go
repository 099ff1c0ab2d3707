package decode

import (
	"bytes"
	"context"
	"testing"

	"github.com/lgbarn/scid2pgn-go/internal/chess"
	"github.com/lgbarn/scid2pgn-go/internal/errors"
	"github.com/lgbarn/scid2pgn-go/internal/sg4"
	"github.com/lgbarn/scid2pgn-go/internal/si4"
	"github.com/lgbarn/scid2pgn-go/internal/sn4"
	"github.com/lgbarn/scid2pgn-go/internal/testutil"
)

func openFixture(t *testing.T) *Database {
	t.Helper()
	index, names, gamefile := fixtureDatabase()
	db, err := Open(index, names, bytes.NewReader(gamefile))
	testutil.AssertNoError(t, err)
	return db
}

func sanLine(head *chess.Move) []string {
	var out []string
	for m := head; m != nil; m = m.Next {
		out = append(out, m.Text)
	}
	return out
}

func TestOpenFixture(t *testing.T) {
	db := openFixture(t)
	testutil.AssertEqual(t, db.NumGames(), 5)
	testutil.AssertEqual(t, db.Header.Description, "fixture database")
	testutil.AssertEqual(t, db.Names.Count(sn4.Player), 4)
}

func TestAssembleMainline(t *testing.T) {
	db := openFixture(t)
	stream, err := db.GameStream(0)
	testutil.AssertNoError(t, err)

	g, err := NewAssembler(db.Names).Assemble(1, db.Records[0], stream)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, g.White, "Carlsen, Magnus")
	testutil.AssertEqual(t, g.Black, "Caruana, Fabiano")
	testutil.AssertEqual(t, g.Date, chess.Date{Year: 2022, Month: 12, Day: 19})
	testutil.AssertEqual(t, g.EventDate, chess.Date{Year: 2022, Month: 12, Day: 1})
	testutil.AssertEqual(t, g.Result, chess.Draw)
	testutil.AssertEqual(t, g.ECO, "C50")
	testutil.AssertEqual(t, g.PlyCount, 7)
	testutil.AssertEqual(t, sanLine(g.Moves),
		[]string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "O-O"})
	testutil.AssertEqual(t, len(g.Warnings), 0)
}

func TestAssembleAnnotations(t *testing.T) {
	db := openFixture(t)
	stream, err := db.GameStream(1)
	testutil.AssertNoError(t, err)

	g, err := NewAssembler(db.Names).Assemble(2, db.Records[1], stream)
	testutil.AssertNoError(t, err)

	first := g.Moves
	testutil.AssertEqual(t, first.Text, "e4")
	testutil.AssertEqual(t, first.NAGs, []int{1})
	testutil.AssertEqual(t, first.Comments, []string{"sound"})

	second := first.Next
	testutil.AssertEqual(t, second.Text, "e5")
	testutil.AssertEqual(t, len(second.Variations), 1)
	testutil.AssertEqual(t, sanLine(second.Variations[0].Moves), []string{"c5"})
}

func TestAssembleEnPassant(t *testing.T) {
	db := openFixture(t)
	stream, err := db.GameStream(2)
	testutil.AssertNoError(t, err)

	g, err := NewAssembler(db.Names).Assemble(3, db.Records[2], stream)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sanLine(g.Moves), []string{"e4", "a6", "e5", "d5", "exd6"})
	testutil.AssertEqual(t, g.LastMove().Class, chess.EnPassantPawnMove)
}

func TestAssembleIllegalStream(t *testing.T) {
	db := openFixture(t)
	stream, err := db.GameStream(4)
	testutil.AssertNoError(t, err)

	_, err = NewAssembler(db.Names).Assemble(5, db.Records[4], stream)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalToken)

	var ge *errors.GameError
	testutil.AssertTrue(t, errors.As(err, &ge))
	testutil.AssertEqual(t, ge.GameNum, 5)
	testutil.AssertEqual(t, ge.PlyNum, 1)
}

func TestAssembleBadNameID(t *testing.T) {
	db := openFixture(t)
	rec := db.Records[0]
	rec.WhiteID = 999
	_, err := NewAssembler(db.Names).Assemble(1, rec, nil)
	testutil.AssertErrorIs(t, err, errors.ErrNameID)
}

func TestAssembleCustomStartRejected(t *testing.T) {
	db := openFixture(t)
	rec := db.Records[0]
	rec.Flags |= si4.FlagCustomStart
	stream, _ := db.GameStream(0)
	_, err := NewAssembler(db.Names).Assemble(1, rec, stream)
	testutil.AssertError(t, err)
}

func TestAssembleCustomStartWithInitializer(t *testing.T) {
	db := openFixture(t)
	rec := db.Records[0]
	rec.Flags |= si4.FlagCustomStart
	stream, _ := db.GameStream(0)

	a := NewAssembler(db.Names)
	a.StartPosition = func(si4.Record) (*chess.Position, error) {
		return chess.StandardStart(), nil
	}
	g, err := a.Assemble(1, rec, stream)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sanLine(g.Moves),
		[]string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "O-O"})
}

func TestDecodeAllOrderedWithFailures(t *testing.T) {
	db := openFixture(t)
	res, err := DecodeAll(context.Background(), db, Options{Workers: 4})
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, res.OK(), 4)
	testutil.AssertEqual(t, res.Failed(), 1)

	// Completion order is arbitrary; output order is not.
	numbers := make([]int, 0, res.OK())
	for _, g := range res.Games {
		numbers = append(numbers, g.Number)
	}
	testutil.AssertEqual(t, numbers, []int{1, 2, 3, 4})
	testutil.AssertEqual(t, res.Failures[0].GameNum, 5)
	testutil.AssertErrorIs(t, res.Failures[0].Err, errors.ErrIllegalToken)
}

func TestDecodeAllSkipDeleted(t *testing.T) {
	db := openFixture(t)
	res, err := DecodeAll(context.Background(), db, Options{Workers: 2, SkipDeleted: true})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, res.OK(), 3)
	testutil.AssertEqual(t, res.Skipped, 1)
	for _, g := range res.Games {
		testutil.AssertTrue(t, g.Number != 4, "deleted game decoded")
	}
}

func TestDecodeAllMaxGames(t *testing.T) {
	db := openFixture(t)
	res, err := DecodeAll(context.Background(), db, Options{Workers: 2, MaxGames: 2})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, res.OK(), 2)
}

func TestDecodeAllCancelled(t *testing.T) {
	db := openFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DecodeAll(ctx, db, Options{Workers: 2})
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestBuildTreeNestedVariations(t *testing.T) {
	// 1. e4 e5 (1... c5 2. Nf3 (2. c3)) 2. Nf3
	stream := new(sg4.Encoder).
		Move(12, 12).Move(12, 12).
		StartVariation().
		Move(10, 12).Move(7, 7).
		StartVariation().Move(10, 1).EndVariation().
		EndVariation().
		Move(7, 7).
		EndGame().Bytes()

	res, err := buildTree(chess.StandardStart(), sg4.NewDecoder(stream))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sanLine(res.Head), []string{"e4", "e5", "Nf3"})

	alt := res.Head.Next.Variations[0].Moves
	testutil.AssertEqual(t, sanLine(alt), []string{"c5", "Nf3"})
	inner := alt.Next.Variations[0].Moves
	testutil.AssertEqual(t, sanLine(inner), []string{"c3"})
}

func TestBuildTreeUnbalancedOpen(t *testing.T) {
	stream := new(sg4.Encoder).
		Move(12, 12).
		StartVariation().Move(11, 12).
		EndGame().Bytes()

	res, err := buildTree(chess.StandardStart(), sg4.NewDecoder(stream))
	testutil.AssertErrorIs(t, err, errors.ErrUnbalancedVariation)
	// The partial tree up to the imbalance is still available.
	testutil.AssertEqual(t, sanLine(res.Head), []string{"e4"})
}

func TestBuildTreeCloseWithoutOpen(t *testing.T) {
	stream := new(sg4.Encoder).
		Move(12, 12).EndVariation().EndGame().Bytes()
	_, err := buildTree(chess.StandardStart(), sg4.NewDecoder(stream))
	testutil.AssertErrorIs(t, err, errors.ErrUnbalancedVariation)
}

func TestBuildTreeVariationBeforeAnyMove(t *testing.T) {
	stream := new(sg4.Encoder).
		StartVariation().Move(12, 12).EndVariation().EndGame().Bytes()
	_, err := buildTree(chess.StandardStart(), sg4.NewDecoder(stream))
	testutil.AssertErrorIs(t, err, errors.ErrCorrupt)
}

func TestBuildTreePrefixComment(t *testing.T) {
	stream := new(sg4.Encoder).
		Comment("from the archive").Move(12, 12).EndGame().Bytes()
	res, err := buildTree(chess.StandardStart(), sg4.NewDecoder(stream))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, res.Prefix, "from the archive")
}

func TestBuildTreeMissingTerminatorWarns(t *testing.T) {
	stream := new(sg4.Encoder).Move(12, 12).Bytes()
	res, err := buildTree(chess.StandardStart(), sg4.NewDecoder(stream))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(res.Warnings), 1)
	testutil.AssertContains(t, res.Warnings[0], "terminator")
}

func TestBuildTreeVariationRestoresPosition(t *testing.T) {
	// After the variation closes, the mainline continues from where it
	// left off; a second 2. Nf3 must resolve identically.
	stream := new(sg4.Encoder).
		Move(12, 12).Move(12, 12).
		StartVariation().Move(10, 12).EndVariation().
		Move(7, 7).
		EndGame().Bytes()

	res, err := buildTree(chess.StandardStart(), sg4.NewDecoder(stream))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sanLine(res.Head), []string{"e4", "e5", "Nf3"})
	testutil.AssertNoError(t, res.Final.CheckInvariants())
	testutil.AssertEqual(t, res.Final.ToMove, chess.Black)
}
