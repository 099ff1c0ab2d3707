// Package errors provides sentinel errors and error types for the scid2pgn tool.
// It defines the failure conditions of the three database artifacts and of
// individual game decodes, structured so that callers can inspect them with
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for artifact-level failures. Any of these aborts reading
// the artifact (whole index or name table) in which it occurred.
var (
	// ErrTruncated indicates an artifact ended before a declared field.
	ErrTruncated = errors.New("truncated data")

	// ErrCorrupt indicates structurally invalid data inside an artifact.
	ErrCorrupt = errors.New("corrupt data")

	// ErrBadMagic indicates an artifact whose magic literal did not match.
	ErrBadMagic = errors.New("bad magic")

	// ErrUnsupportedVersion indicates an artifact version this tool cannot read.
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// Sentinel errors for game-level failures. These are fatal only to the one
// game being decoded; the pipeline logs them and continues.
var (
	// ErrIllegalToken indicates a move token that cannot be resolved to a
	// legal move in the current position.
	ErrIllegalToken = errors.New("illegal move token")

	// ErrUnbalancedVariation indicates a move stream whose variation
	// markers do not nest properly.
	ErrUnbalancedVariation = errors.New("unbalanced variation")

	// ErrPositionInvariant indicates the board and slot map fell out of
	// sync, or a required piece is missing.
	ErrPositionInvariant = errors.New("position invariant violated")

	// ErrNameID indicates a packed name-ID at or above its category's
	// name count.
	ErrNameID = errors.New("name ID out of range")
)

// FormatError wraps an artifact-level sentinel with location context.
type FormatError struct {
	Err      error  // one of the artifact sentinels
	Artifact string // "index", "namebase" or "gamefile"
	Offset   int    // byte offset where the failure was detected, -1 if unknown
}

// Error returns a formatted message including all available context.
func (e *FormatError) Error() string {
	var parts []string
	if e.Artifact != "" {
		parts = append(parts, e.Artifact)
	}
	if e.Offset >= 0 {
		parts = append(parts, fmt.Sprintf("offset %d", e.Offset))
	}
	if len(parts) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", strings.Join(parts, ", "), e.Err)
}

// Unwrap returns the underlying sentinel, enabling errors.Is() through
// the FormatError wrapper.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Format constructs a FormatError for the given artifact and offset.
func Format(err error, artifact string, offset int) error {
	if err == nil {
		return nil
	}
	return &FormatError{Err: err, Artifact: artifact, Offset: offset}
}

// GameError wraps a game-level error with game number, ply and move context.
type GameError struct {
	Err      error
	GameNum  int    // 1-based game number in the database
	PlyNum   int    // ply at which the error occurred (0 if not applicable)
	MoveText string // offending move or token text, if known
}

// Error returns a formatted message including all available context.
func (e *GameError) Error() string {
	parts := []string{fmt.Sprintf("game %d", e.GameNum)}
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}
	if e.Err == nil {
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s: %v", strings.Join(parts, ", "), e.Err)
}

// Unwrap returns the underlying error.
func (e *GameError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
