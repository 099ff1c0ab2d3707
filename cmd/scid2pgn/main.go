// scid2pgn converts a three-file Scid database (.si4/.sn4/.sg4) into PGN.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lgbarn/scid2pgn-go/internal/config"
	"github.com/lgbarn/scid2pgn-go/internal/decode"
	"github.com/lgbarn/scid2pgn-go/internal/output"
	"github.com/lgbarn/scid2pgn-go/internal/sn4"
)

const programVersion = "0.1.0"

func main() {
	app := &cli.App{
		Name:      "scid2pgn",
		Usage:     "convert a Scid database to PGN",
		ArgsUsage: "<database base name>",
		Version:   programVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write PGN to `FILE` instead of standard output",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "number of concurrent decode workers",
				Value:   config.Default().Workers,
			},
			&cli.IntFlag{
				Name:  "max-games",
				Usage: "convert at most `N` games (0 means all)",
			},
			&cli.BoolFlag{
				Name:  "skip-deleted",
				Usage: "leave out games marked deleted in the index",
			},
			&cli.IntFlag{
				Name:  "line-length",
				Usage: "wrap movetext at `COLUMN`",
				Value: config.Default().LineLength,
			},
			&cli.BoolFlag{
				Name:  "no-comments",
				Usage: "strip comments from the movetext",
			},
			&cli.BoolFlag{
				Name:  "no-nags",
				Usage: "strip numeric annotation glyphs from the movetext",
			},
			&cli.BoolFlag{
				Name:  "no-variations",
				Usage: "strip variations from the movetext",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "abort the conversion after `DURATION` (0 means no limit)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log per-game diagnostics",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "scid2pgn:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one database base name is required", 2)
	}

	cfg := config.Default()
	cfg.SetBase(c.Args().First())
	cfg.OutputPath = c.String("output")
	cfg.Workers = c.Int("workers")
	cfg.MaxGames = c.Int("max-games")
	cfg.SkipDeleted = c.Bool("skip-deleted")
	cfg.LineLength = c.Int("line-length")
	cfg.KeepComments = !c.Bool("no-comments")
	cfg.KeepNAGs = !c.Bool("no-nags")
	cfg.KeepVariations = !c.Bool("no-variations")
	cfg.Timeout = c.Duration("timeout")
	cfg.Verbose = c.Bool("verbose")
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, closeGames, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeGames()

	logger.Info("database opened",
		zap.String("description", db.Header.Description),
		zap.Int("games", db.NumGames()),
		zap.Int("players", db.Names.Count(sn4.Player)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res, err := decode.DecodeAll(ctx, db, decode.Options{
		Workers:     cfg.Workers,
		MaxGames:    cfg.MaxGames,
		SkipDeleted: cfg.SkipDeleted,
	})
	if err != nil {
		return err
	}

	for _, f := range res.Failures {
		logger.Warn("game failed to decode", zap.Int("game", f.GameNum), zap.Error(f.Err))
	}

	if err := writeGames(cfg, logger, res); err != nil {
		return err
	}

	logger.Info("conversion finished", zap.String("result", res.Summary()))
	if res.Failed() > 0 {
		return fmt.Errorf("%d of %d games could not be converted",
			res.Failed(), res.OK()+res.Failed())
	}
	return nil
}

func openDatabase(cfg *config.Config) (*decode.Database, func(), error) {
	index, err := os.ReadFile(cfg.IndexPath)
	if err != nil {
		return nil, nil, err
	}
	names, err := os.ReadFile(cfg.NamePath)
	if err != nil {
		return nil, nil, err
	}
	games, err := os.Open(cfg.GamePath)
	if err != nil {
		return nil, nil, err
	}
	db, err := decode.Open(index, names, games)
	if err != nil {
		games.Close()
		return nil, nil, err
	}
	return db, func() { games.Close() }, nil
}

func writeGames(cfg *config.Config, logger *zap.Logger, res *decode.Result) error {
	var out io.Writer = os.Stdout
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	bw := bufio.NewWriter(out)
	w := output.NewWriter(bw, cfg.LineLength)
	w.KeepComments = cfg.KeepComments
	w.KeepNAGs = cfg.KeepNAGs
	w.KeepVariations = cfg.KeepVariations

	for _, g := range res.Games {
		for _, warning := range g.Warnings {
			logger.Debug("game warning", zap.Int("game", g.Number), zap.String("warning", warning))
		}
		if err := w.WriteGame(g); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
