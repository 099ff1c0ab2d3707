package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatError(t *testing.T) {
	err := Format(ErrTruncated, "index", 42)
	assert.EqualError(t, err, "index, offset 42: truncated data")
	assert.ErrorIs(t, err, ErrTruncated)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "index", fe.Artifact)
	assert.Equal(t, 42, fe.Offset)
}

func TestFormatNil(t *testing.T) {
	assert.NoError(t, Format(nil, "index", 0))
}

func TestFormatUnknownOffset(t *testing.T) {
	err := Format(ErrBadMagic, "namebase", -1)
	assert.EqualError(t, err, "namebase: bad magic")
}

func TestGameError(t *testing.T) {
	err := &GameError{Err: ErrIllegalToken, GameNum: 7, PlyNum: 12, MoveText: "slot 3 code 9"}
	assert.EqualError(t, err, `game 7, ply 12, move "slot 3 code 9": illegal move token`)
	assert.ErrorIs(t, err, ErrIllegalToken)
}

func TestGameErrorMinimal(t *testing.T) {
	err := &GameError{Err: ErrUnbalancedVariation, GameNum: 3}
	assert.EqualError(t, err, "game 3: unbalanced variation")
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrNameID, "player id %d", 999)
	assert.ErrorIs(t, err, ErrNameID)
	assert.Contains(t, err.Error(), "player id 999")

	assert.NoError(t, Wrap(nil, "context"))
	assert.NoError(t, Wrapf(nil, "context %d", 1))
}

func TestIsAndAs(t *testing.T) {
	err := Wrap(Format(ErrCorrupt, "gamefile", 5), "outer")
	assert.True(t, Is(err, ErrCorrupt))

	var fe *FormatError
	assert.True(t, As(err, &fe))
}
