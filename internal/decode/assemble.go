package decode

import (
	"fmt"

	"github.com/lgbarn/scid2pgn-go/internal/chess"
	"github.com/lgbarn/scid2pgn-go/internal/eco"
	"github.com/lgbarn/scid2pgn-go/internal/errors"
	"github.com/lgbarn/scid2pgn-go/internal/matsig"
	"github.com/lgbarn/scid2pgn-go/internal/sg4"
	"github.com/lgbarn/scid2pgn-go/internal/si4"
	"github.com/lgbarn/scid2pgn-go/internal/sn4"
)

// Assembler joins one index record, the shared name tables, and a move
// stream into a Game. It is stateless apart from the tables, so one
// assembler serves all workers concurrently.
type Assembler struct {
	// StartPosition supplies the starting position for games whose index
	// record carries the custom-start flag. When nil such games fail.
	StartPosition func(si4.Record) (*chess.Position, error)

	names *sn4.NameTable
}

// NewAssembler returns an assembler over decoded name tables.
func NewAssembler(names *sn4.NameTable) *Assembler {
	return &Assembler{names: names}
}

// Assemble decodes one game. num is the 1-based game number; any error is
// fatal to this game only and comes back wrapped with that number.
func (a *Assembler) Assemble(num int, rec si4.Record, stream []byte) (*chess.Game, error) {
	g := &chess.Game{
		Number:    num,
		Date:      rec.Date,
		EventDate: rec.EventDate,
		Result:    rec.Result,
		WhiteElo:  rec.WhiteElo,
		BlackElo:  rec.BlackElo,
		ECO:       eco.Code(rec.ECO).String(),
		PlyCount:  rec.HalfMoves,
	}

	var err error
	if g.White, err = a.names.Name(sn4.Player, rec.WhiteID); err != nil {
		return nil, gameErr(num, err)
	}
	if g.Black, err = a.names.Name(sn4.Player, rec.BlackID); err != nil {
		return nil, gameErr(num, err)
	}
	if g.Event, err = a.names.Name(sn4.Event, rec.EventID); err != nil {
		return nil, gameErr(num, err)
	}
	if g.Site, err = a.names.Name(sn4.Site, rec.SiteID); err != nil {
		return nil, gameErr(num, err)
	}
	if g.Round, err = a.names.Name(sn4.Round, rec.RoundID); err != nil {
		return nil, gameErr(num, err)
	}

	pos := chess.StandardStart()
	if rec.CustomStart() {
		if a.StartPosition == nil {
			return nil, gameErr(num, errors.Wrap(errors.ErrCorrupt, "non-standard starting position"))
		}
		if pos, err = a.StartPosition(rec); err != nil {
			return nil, gameErr(num, err)
		}
		if err = pos.CheckInvariants(); err != nil {
			return nil, gameErr(num, err)
		}
	}
	res, err := buildTree(pos, sg4.NewDecoder(stream))
	if err != nil {
		return nil, gameErr(num, err)
	}

	g.Moves = res.Head
	g.PrefixComment = res.Prefix
	g.Warnings = res.Warnings

	if err := res.Final.CheckInvariants(); err != nil {
		return nil, gameErr(num, err)
	}
	if rec.FinalMatSig != 0 && !matsig.Matches(matsig.Signature(rec.FinalMatSig), res.Final) {
		g.Warnings = append(g.Warnings, "final position material differs from the index signature")
	}
	if plies := g.MainlinePlies(); g.PlyCount != 0 && g.PlyCount != plies {
		g.Warnings = append(g.Warnings,
			fmt.Sprintf("index claims %d plies, stream has %d", g.PlyCount, plies))
		g.PlyCount = plies
	}
	if g.PlyCount == 0 {
		g.PlyCount = g.MainlinePlies()
	}
	return g, nil
}

// gameErr tags an error with its game number, keeping an existing GameError
// wrapper's ply context intact.
func gameErr(num int, err error) error {
	if ge, ok := err.(*errors.GameError); ok {
		ge.GameNum = num
		return ge
	}
	return &errors.GameError{Err: err, GameNum: num}
}
