package decode

import (
	"io"

	"github.com/lgbarn/scid2pgn-go/internal/errors"
	"github.com/lgbarn/scid2pgn-go/internal/si4"
	"github.com/lgbarn/scid2pgn-go/internal/sn4"
)

// Database is the read-only view of one three-artifact database: the parsed
// index, the shared name tables, and random access into the game file. The
// index and names are decoded eagerly; move streams are read per game.
type Database struct {
	Header  si4.Header
	Records []si4.Record
	Names   *sn4.NameTable

	games io.ReaderAt
}

// Open parses the index and namebase artifacts and wraps the game-file
// reader. Index and namebase errors are fatal; the game file is validated
// lazily, one game at a time.
func Open(index, names []byte, games io.ReaderAt) (*Database, error) {
	header, records, err := si4.ParseIndex(index)
	if err != nil {
		return nil, err
	}
	table, err := sn4.Decode(names)
	if err != nil {
		return nil, err
	}
	return &Database{
		Header:  header,
		Records: records,
		Names:   table,
		games:   games,
	}, nil
}

// NumGames returns the number of games the index declares.
func (db *Database) NumGames() int {
	return len(db.Records)
}

// GameStream reads the move-stream bytes of the 0-based game i.
func (db *Database) GameStream(i int) ([]byte, error) {
	rec := db.Records[i]
	buf := make([]byte, rec.Length)
	if _, err := db.games.ReadAt(buf, int64(rec.Offset)); err != nil {
		return nil, errors.Format(errors.ErrTruncated, "gamefile", int(rec.Offset))
	}
	return buf, nil
}
