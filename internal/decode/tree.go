// Package decode turns index records and move streams into assembled games.
// It drives the stream tokenizer and the move engine together, builds the
// variation tree, and runs whole databases through a worker pool.
package decode

import (
	"fmt"

	"github.com/lgbarn/scid2pgn-go/internal/chess"
	"github.com/lgbarn/scid2pgn-go/internal/engine"
	"github.com/lgbarn/scid2pgn-go/internal/errors"
	"github.com/lgbarn/scid2pgn-go/internal/sg4"
)

// treeResult carries everything buildTree extracts from one move stream.
type treeResult struct {
	Head     *chess.Move
	Prefix   string
	Final    *chess.Position
	Warnings []string
}

// frame saves the outer line's state while a variation is being built.
type frame struct {
	attach     *chess.Move // the move the variation hangs off
	variation  *chess.Variation
	last       *chess.Move
	pos        *chess.Position
	beforeLast *chess.Position
}

// buildTree consumes one game's token stream, resolving every move against
// the evolving position. A variation branches from the position before the
// move it is attached to, so the builder keeps a snapshot from just before
// the most recent move of each open line.
func buildTree(p *chess.Position, d *sg4.Decoder) (res treeResult, err error) {
	var (
		stack      []frame
		head       *chess.Move
		last       *chess.Move
		beforeLast *chess.Position
		ply        int
	)
	// Variation moves link into nodes already reachable from the mainline
	// head, so even on an early error the partial tree is rooted there.
	defer func() {
		res.Head = head
		res.Final = p
	}()

	for {
		tok, err := d.Next()
		if err != nil {
			return res, &errors.GameError{Err: err, PlyNum: ply}
		}

		switch tok.Kind {
		case sg4.KindMove:
			snapshot := p.Clone()
			m, err := engine.Step(p, tok.Slot, tok.Code, d.AuxByte)
			if err != nil {
				return res, &errors.GameError{
					Err:      err,
					PlyNum:   ply + 1,
					MoveText: fmt.Sprintf("slot %d code %d", tok.Slot, tok.Code),
				}
			}
			ply++
			if last == nil {
				if len(stack) > 0 {
					stack[len(stack)-1].variation.Moves = m
				} else {
					head = m
				}
			} else {
				last.Next = m
				m.Prev = last
			}
			beforeLast = snapshot
			last = m

		case sg4.KindNAG:
			if last == nil {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("annotation glyph $%d before any move dropped", tok.NAG))
				continue
			}
			last.AppendNAG(tok.NAG)

		case sg4.KindComment:
			switch {
			case last != nil:
				last.AppendComment(tok.Comment)
			case len(stack) > 0:
				// A comment opening a variation attaches to the move the
				// variation branches from.
				stack[len(stack)-1].attach.AppendComment(tok.Comment)
			default:
				res.Prefix = tok.Comment
			}

		case sg4.KindVariationStart:
			if last == nil {
				return res, &errors.GameError{
					Err:    errors.Wrap(errors.ErrCorrupt, "variation opens before any move"),
					PlyNum: ply,
				}
			}
			v := &chess.Variation{}
			last.AppendVariation(v)
			stack = append(stack, frame{
				attach:     last,
				variation:  v,
				last:       last,
				pos:        p,
				beforeLast: beforeLast,
			})
			p = beforeLast.Clone()
			last = nil
			beforeLast = nil

		case sg4.KindVariationEnd:
			if len(stack) == 0 {
				return res, &errors.GameError{
					Err:    errors.Wrap(errors.ErrUnbalancedVariation, "close without open"),
					PlyNum: ply,
				}
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			p = f.pos
			last = f.last
			beforeLast = f.beforeLast

		case sg4.KindEndGame:
			if d.MissingTerminator() {
				res.Warnings = append(res.Warnings, "move stream ends without terminator")
			}
			if len(stack) > 0 {
				return res, &errors.GameError{
					Err:    errors.Wrapf(errors.ErrUnbalancedVariation, "%d variations left open", len(stack)),
					PlyNum: ply,
				}
			}
			return res, nil
		}
	}
}
