package decode

import (
	"github.com/lgbarn/scid2pgn-go/internal/chess"
	"github.com/lgbarn/scid2pgn-go/internal/eco"
	"github.com/lgbarn/scid2pgn-go/internal/sg4"
	"github.com/lgbarn/scid2pgn-go/internal/si4"
	"github.com/lgbarn/scid2pgn-go/internal/sn4"
)

// Fixture players by name-table ID.
const (
	fixtureCarlsen = iota
	fixtureCaruana
	fixtureDeleted
	fixtureBroken
)

// fixtureDatabase builds a small five-game database in memory and returns
// its three artifacts. The games cover a clean mainline with castling, an
// annotated game with a variation, an en-passant finish, a deleted game,
// and a corrupt move stream.
//
// Game 1 is a 2022.12.19 draw whose mainline reads
// 1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O.
func fixtureDatabase() (index, names, gamefile []byte) {
	table := sn4.NewTable(
		[]string{"Carlsen, Magnus", "Caruana, Fabiano", "Deleted, Player", "Broken, Game"},
		[]string{"Fixture Invitational"},
		[]string{"Reykjavik ISL"},
		[]string{"1", "2"},
	)

	streams := [][]byte{
		// 1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O
		new(sg4.Encoder).
			Move(12, 12).Move(12, 12).
			Move(7, 7).Move(6, 2).
			Move(5, 10).Move(5, 2).
			Move(0, 10).
			EndGame().Bytes(),
		// 1. e4 $1 {sound} e5 (1... c5)
		new(sg4.Encoder).
			Move(12, 12).NAG(1).Comment("sound").
			Move(12, 12).
			StartVariation().Move(10, 12).EndVariation().
			EndGame().Bytes(),
		// 1. e4 a6 2. e5 d5 3. exd6
		new(sg4.Encoder).
			Move(12, 12).Move(8, 1).
			Move(12, 1).Move(11, 12).
			Move(12, 0).
			EndGame().Bytes(),
		// 1. e4, marked deleted in the index
		new(sg4.Encoder).Move(12, 12).EndGame().Bytes(),
		// A rook move through its own pawn; the decoder must reject it.
		new(sg4.Encoder).Move(2, 8+2).EndGame().Bytes(),
	}

	c50, _ := eco.Parse("C50")
	b00, _ := eco.Parse("B00")
	records := []si4.Record{
		{
			WhiteID: fixtureCarlsen, BlackID: fixtureCaruana, RoundID: 0,
			Result: chess.Draw, ECO: uint16(c50),
			Date:      chess.Date{Year: 2022, Month: 12, Day: 19},
			EventDate: chess.Date{Year: 2022, Month: 12, Day: 1},
			WhiteElo:  2850, BlackElo: 2800, HalfMoves: 7,
		},
		{
			WhiteID: fixtureCaruana, BlackID: fixtureCarlsen, RoundID: 1,
			Result: chess.WhiteWins,
			Date:   chess.Date{Year: 2022, Month: 12, Day: 20},
			ECO:    uint16(b00), HalfMoves: 2, VarCount: 1, CommentCount: 1, NagCount: 1,
		},
		{
			WhiteID: fixtureCarlsen, BlackID: fixtureCaruana, RoundID: 1,
			Result: chess.WhiteWins,
			Date:   chess.Date{Year: 2022, Month: 12, Day: 21},
			ECO:    uint16(b00), HalfMoves: 5,
		},
		{
			WhiteID: fixtureDeleted, BlackID: fixtureCaruana,
			Result: chess.BlackWins, Flags: si4.FlagDeleted,
			Date: chess.Date{Year: 2022}, HalfMoves: 1,
		},
		{
			WhiteID: fixtureBroken, BlackID: fixtureCarlsen,
			Result: chess.ResultNone,
			Date:   chess.Date{Year: 2022}, HalfMoves: 1,
		},
	}

	for i := range records {
		records[i].Offset = uint32(len(gamefile))
		records[i].Length = uint32(len(streams[i]))
		gamefile = append(gamefile, streams[i]...)
	}

	index = si4.EncodeHeader(si4.Header{
		Version:     si4.Version,
		NumGames:    len(records),
		Description: "fixture database",
	})
	for _, r := range records {
		b := si4.EncodeRecord(r)
		index = append(index, b[:]...)
	}

	names = sn4.Encode(table)
	return index, names, gamefile
}
