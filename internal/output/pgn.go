// Package output renders decoded games as PGN text with configurable line
// wrapping.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/scid2pgn-go/internal/chess"
)

// DefaultLineLength is the movetext wrap column used when none is set.
const DefaultLineLength = 80

// Writer emits PGN games to an underlying writer. Tag pairs go one per
// line; movetext tokens are wrapped at the configured column. The first
// write error sticks and short-circuits the rest of the game.
type Writer struct {
	// KeepComments, KeepNAGs and KeepVariations control whether those
	// annotations appear in the movetext. All default to true.
	KeepComments   bool
	KeepNAGs       bool
	KeepVariations bool

	w          io.Writer
	lineLength int
	col        int
	err        error
}

// NewWriter returns a PGN writer wrapping movetext at lineLength columns.
func NewWriter(w io.Writer, lineLength int) *Writer {
	if lineLength <= 0 {
		lineLength = DefaultLineLength
	}
	return &Writer{
		KeepComments:   true,
		KeepNAGs:       true,
		KeepVariations: true,
		w:              w,
		lineLength:     lineLength,
	}
}

// WriteGame emits one complete game: tag section, blank line, movetext with
// the result token, blank line.
func (ow *Writer) WriteGame(g *chess.Game) error {
	ow.writeTags(g)
	ow.writeString("\n")

	ow.col = 0
	if g.PrefixComment != "" && ow.KeepComments {
		ow.token("{" + sanitizeComment(g.PrefixComment) + "}")
	}
	ow.writeMoves(g.Moves, 1, true)
	ow.token(g.Result.String())
	if ow.col > 0 {
		ow.writeString("\n")
	}
	ow.writeString("\n")
	return ow.err
}

// writeTags emits the seven-tag roster followed by the optional tags the
// index record carries.
func (ow *Writer) writeTags(g *chess.Game) {
	ow.tag("Event", orUnknown(g.Event))
	ow.tag("Site", orUnknown(g.Site))
	ow.tag("Date", g.Date.String())
	ow.tag("Round", orUnknown(g.Round))
	ow.tag("White", orUnknown(g.White))
	ow.tag("Black", orUnknown(g.Black))
	ow.tag("Result", g.Result.String())

	if g.WhiteElo > 0 {
		ow.tag("WhiteElo", fmt.Sprintf("%d", g.WhiteElo))
	}
	if g.BlackElo > 0 {
		ow.tag("BlackElo", fmt.Sprintf("%d", g.BlackElo))
	}
	if g.ECO != "" {
		ow.tag("ECO", g.ECO)
	}
	if !g.EventDate.IsZero() {
		ow.tag("EventDate", g.EventDate.String())
	}
	if g.PlyCount > 0 {
		ow.tag("PlyCount", fmt.Sprintf("%d", g.PlyCount))
	}
}

// writeMoves walks one line of play. num is the full-move number of the
// first move; numberNext forces a move number on the next move even when
// it is Black's, as at a line start or after an interruption.
func (ow *Writer) writeMoves(head *chess.Move, num int, numberNext bool) {
	for m := head; m != nil; m = m.Next {
		if m.Colour == chess.White {
			ow.token(fmt.Sprintf("%d.", num))
		} else if numberNext {
			ow.token(fmt.Sprintf("%d...", num))
		}
		numberNext = false
		ow.token(m.Text)

		if ow.KeepNAGs {
			for _, nag := range m.NAGs {
				ow.token(fmt.Sprintf("$%d", nag))
			}
		}
		if ow.KeepComments {
			for _, c := range m.Comments {
				ow.token("{" + sanitizeComment(c) + "}")
				numberNext = true
			}
		}
		if ow.KeepVariations {
			for _, v := range m.Variations {
				ow.token("(")
				ow.writeMoves(v.Moves, num, true)
				ow.token(")")
				numberNext = true
			}
		}

		if m.Colour == chess.Black {
			num++
		}
	}
}

// token writes one movetext token, wrapping the line when it would pass
// the configured column.
func (ow *Writer) token(s string) {
	switch {
	case ow.col == 0:
	case ow.col+1+len(s) > ow.lineLength:
		ow.writeString("\n")
		ow.col = 0
	default:
		ow.writeString(" ")
		ow.col++
	}
	ow.writeString(s)
	ow.col += len(s)
}

func (ow *Writer) tag(name, value string) {
	ow.writeString(fmt.Sprintf("[%s \"%s\"]\n", name, escapeTag(value)))
}

func (ow *Writer) writeString(s string) {
	if ow.err != nil {
		return
	}
	_, ow.err = io.WriteString(ow.w, s)
}

// orUnknown substitutes the PGN unknown-value marker for empty tag values.
func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// escapeTag backslash-escapes quotes and backslashes inside a tag value.
func escapeTag(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// sanitizeComment keeps a comment from terminating its own brace block.
func sanitizeComment(s string) string {
	return strings.ReplaceAll(s, "}", ")")
}
