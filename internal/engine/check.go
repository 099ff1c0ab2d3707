// Package engine resolves packed slot/code move tokens against a live
// position, verifies their legality, synthesizes standard algebraic
// notation, and applies them. It is the only package that knows what a
// move byte means on the board.
package engine

import (
	"github.com/lgbarn/scid2pgn-go/internal/chess"
)

type delta struct{ df, dr int }

var (
	knightDeltas = []delta{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingDeltas = []delta{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1},
		{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	}
	rookDirs   = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// offsetSquare steps from a square by file/rank deltas, returning NoSquare
// when the result leaves the board.
func offsetSquare(sq chess.Square, df, dr int) chess.Square {
	f, r := sq.File()+df, sq.Rank()+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return chess.NoSquare
	}
	return chess.MakeSquare(f, r)
}

// SquareAttacked reports whether the given colour attacks the square.
func SquareAttacked(p *chess.Position, sq chess.Square, by chess.Colour) bool {
	// Pawn attacks come from one rank toward the attacker's home.
	pawnRankDelta := -1
	if by == chess.Black {
		pawnRankDelta = 1
	}
	for _, df := range []int{-1, 1} {
		from := offsetSquare(sq, df, pawnRankDelta)
		if from.Valid() {
			if occ := p.At(from); occ.Piece == chess.Pawn && occ.Colour == by {
				return true
			}
		}
	}

	for _, d := range knightDeltas {
		from := offsetSquare(sq, d.df, d.dr)
		if from.Valid() {
			if occ := p.At(from); occ.Piece == chess.Knight && occ.Colour == by {
				return true
			}
		}
	}

	for _, d := range kingDeltas {
		from := offsetSquare(sq, d.df, d.dr)
		if from.Valid() {
			if occ := p.At(from); occ.Piece == chess.King && occ.Colour == by {
				return true
			}
		}
	}

	for _, d := range rookDirs {
		if pc := firstAlong(p, sq, d); pc.Colour == by &&
			(pc.Piece == chess.Rook || pc.Piece == chess.Queen) {
			return true
		}
	}
	for _, d := range bishopDirs {
		if pc := firstAlong(p, sq, d); pc.Colour == by &&
			(pc.Piece == chess.Bishop || pc.Piece == chess.Queen) {
			return true
		}
	}
	return false
}

// firstAlong returns the first occupant walking from sq in a direction, or
// the zero state if the ray exits the board empty.
func firstAlong(p *chess.Position, sq chess.Square, d delta) chess.SquareState {
	for cur := offsetSquare(sq, d.df, d.dr); cur.Valid(); cur = offsetSquare(cur, d.df, d.dr) {
		if occ := p.At(cur); occ.Piece != chess.Empty {
			return occ
		}
	}
	return chess.SquareState{}
}

// InCheck reports whether a colour's king is attacked.
func InCheck(p *chess.Position, colour chess.Colour) bool {
	return SquareAttacked(p, p.KingSquare(colour), colour.Opposite())
}

// pathClear reports whether every square strictly between from and to is
// empty. The squares must share a rank, file, or diagonal.
func pathClear(p *chess.Position, from, to chess.Square) bool {
	df := sign(to.File() - from.File())
	dr := sign(to.Rank() - from.Rank())
	for cur := offsetSquare(from, df, dr); cur != to; cur = offsetSquare(cur, df, dr) {
		if !cur.Valid() || p.Occupied(cur) {
			return false
		}
	}
	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// reaches reports whether the piece standing on from could move to to under
// its geometry, ignoring whose turn it is and any king safety. Pawn
// handling covers pushes, captures, and en-passant captures onto the
// position's EP square.
func reaches(p *chess.Position, from, to chess.Square) bool {
	occ := p.At(from)
	if occ.Piece == chess.Empty || from == to {
		return false
	}
	if dest := p.At(to); dest.Piece != chess.Empty && dest.Colour == occ.Colour {
		return false
	}
	df, dr := to.File()-from.File(), to.Rank()-from.Rank()

	switch occ.Piece {
	case chess.Pawn:
		forward := 1
		startRank := 1
		if occ.Colour == chess.Black {
			forward = -1
			startRank = 6
		}
		switch {
		case df == 0 && dr == forward:
			return !p.Occupied(to)
		case df == 0 && dr == 2*forward && from.Rank() == startRank:
			return !p.Occupied(to) && !p.Occupied(offsetSquare(from, 0, forward))
		case (df == 1 || df == -1) && dr == forward:
			if to == p.EPSquare {
				return true
			}
			dest := p.At(to)
			return dest.Piece != chess.Empty && dest.Colour != occ.Colour
		}
		return false
	case chess.Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case chess.Bishop:
		return abs(df) == abs(dr) && pathClear(p, from, to)
	case chess.Rook:
		return (df == 0 || dr == 0) && pathClear(p, from, to)
	case chess.Queen:
		return (df == 0 || dr == 0 || abs(df) == abs(dr)) && pathClear(p, from, to)
	case chess.King:
		return abs(df) <= 1 && abs(dr) <= 1
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// leavesKingSafe simulates moving a colour's piece from from to to on a
// scratch copy and reports whether that colour's king survives unattacked.
func leavesKingSafe(p *chess.Position, colour chess.Colour, from, to chess.Square) bool {
	scratch := p.Clone()
	mover := scratch.At(from)
	if to == scratch.EPSquare && mover.Piece == chess.Pawn {
		scratch.Remove(chess.MakeSquare(to.File(), from.Rank()))
	}
	if scratch.Occupied(to) {
		scratch.Remove(to)
	}
	scratch.MoveSlot(colour, int(mover.Slot), to)
	return !InCheck(scratch, colour)
}

// HasLegalReply reports whether the side to move has any legal move. A
// false result means checkmate or stalemate, depending on InCheck.
func HasLegalReply(p *chess.Position) bool {
	colour := p.ToMove
	for slot := 0; slot < chess.SlotsPerSide; slot++ {
		s := p.SlotOf(colour, slot)
		if !s.Alive {
			continue
		}
		for to := chess.Square(0); to < 64; to++ {
			if !reaches(p, s.Square, to) {
				continue
			}
			if leavesKingSafe(p, colour, s.Square, to) {
				return true
			}
		}
	}
	return false
}
