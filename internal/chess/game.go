package chess

// Game is the immutable aggregate of one decoded game: resolved names,
// dates, result, and the mainline move list with nested variations. It is
// built once by the decode pipeline and handed read-only to the exporter.
type Game struct {
	// 1-based position in the source database. Export order follows this
	// number regardless of decode completion order.
	Number int

	White string
	Black string
	Event string
	Site  string
	Round string

	Date      Date
	EventDate Date // zero when the record carries no event date

	Result   Result
	WhiteElo int
	BlackElo int
	ECO      string

	// Half-move count from the index record.
	PlyCount int

	// Comment preceding the first move, if the stream opened with one.
	PrefixComment string

	// Head of the mainline.
	Moves *Move

	// Non-fatal oddities found while decoding (missing end-of-game marker,
	// material signature mismatch). The game is still exported.
	Warnings []string
}

// LastMove returns the final mainline move, or nil for an empty game.
func (g *Game) LastMove() *Move {
	return g.Moves.Last()
}

// MainlinePlies counts the mainline moves.
func (g *Game) MainlinePlies() int {
	n := 0
	for m := g.Moves; m != nil; m = m.Next {
		n++
	}
	return n
}
