package decode

import (
	"context"
	"fmt"

	"github.com/lgbarn/scid2pgn-go/internal/chess"
	"github.com/lgbarn/scid2pgn-go/internal/errors"
	"github.com/lgbarn/scid2pgn-go/internal/si4"
	"github.com/lgbarn/scid2pgn-go/internal/worker"
)

// Options controls a database decode run.
type Options struct {
	// Workers is the size of the decode pool. Zero or less means one.
	Workers int

	// MaxGames caps how many games are decoded; zero means all.
	MaxGames int

	// SkipDeleted leaves out games the index marks deleted.
	SkipDeleted bool

	// StartPosition is forwarded to the assembler for games with a
	// non-standard starting position. Nil fails those games.
	StartPosition func(si4.Record) (*chess.Position, error)
}

// Failure records one game that could not be decoded.
type Failure struct {
	GameNum int
	Err     error
}

// Result is the outcome of a database run. Games holds every successful
// decode in database order, regardless of which worker finished first.
type Result struct {
	Games    []*chess.Game
	Failures []Failure
	Skipped  int
}

// OK returns the number of games decoded successfully.
func (r *Result) OK() int { return len(r.Games) }

// Failed returns the number of games that failed to decode.
func (r *Result) Failed() int { return len(r.Failures) }

// DecodeAll decodes every selected game concurrently. Each game is decoded
// in isolation: one bad stream becomes a Failure entry, never an error for
// the run. Only context cancellation aborts the run itself.
func DecodeAll(ctx context.Context, db *Database, opts Options) (*Result, error) {
	n := db.NumGames()
	if opts.MaxGames > 0 && opts.MaxGames < n {
		n = opts.MaxGames
	}

	assembler := NewAssembler(db.Names)
	assembler.StartPosition = opts.StartPosition
	games := make([]*chess.Game, n)
	failures := make([]error, n)
	skipped := 0

	for i := 0; i < n; i++ {
		if opts.SkipDeleted && db.Records[i].Deleted() {
			skipped++
		}
	}

	err := worker.Run(ctx, n, opts.Workers, func(_ context.Context, i int) error {
		if opts.SkipDeleted && db.Records[i].Deleted() {
			return nil
		}
		games[i], failures[i] = decodeOne(assembler, db, i)
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Skipped: skipped}
	for i := 0; i < n; i++ {
		switch {
		case games[i] != nil:
			res.Games = append(res.Games, games[i])
		case failures[i] != nil:
			res.Failures = append(res.Failures, Failure{GameNum: i + 1, Err: failures[i]})
		}
	}
	return res, nil
}

// decodeOne assembles a single game, converting panics from pathological
// streams into game failures so one game can never take down the run.
func decodeOne(a *Assembler, db *Database, i int) (g *chess.Game, err error) {
	defer func() {
		if r := recover(); r != nil {
			g = nil
			err = &errors.GameError{
				GameNum: i + 1,
				Err:     errors.Wrapf(errors.ErrCorrupt, "decoder panic: %v", r),
			}
		}
	}()

	stream, err := db.GameStream(i)
	if err != nil {
		return nil, &errors.GameError{GameNum: i + 1, Err: err}
	}
	return a.Assemble(i+1, db.Records[i], stream)
}

// Summary renders a one-line account of the run for logs.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d decoded, %d failed, %d skipped", r.OK(), r.Failed(), r.Skipped)
}
