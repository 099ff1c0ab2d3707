// Package config holds the runtime configuration for the scid2pgn tool.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Config collects everything the conversion pipeline needs to know: where
// the three database artifacts live, where the PGN goes, and how the run
// behaves.
type Config struct {
	// Artifact paths. All three are required.
	IndexPath string
	NamePath  string
	GamePath  string

	// OutputPath receives the PGN; empty means standard output.
	OutputPath string

	// Workers is the decode pool size.
	Workers int

	// MaxGames caps the number of games converted; zero means all.
	MaxGames int

	// SkipDeleted drops games the index marks deleted.
	SkipDeleted bool

	// LineLength is the movetext wrap column.
	LineLength int

	// Annotation toggles for the PGN output.
	KeepComments   bool
	KeepNAGs       bool
	KeepVariations bool

	// Timeout bounds the whole conversion; zero means no limit.
	Timeout time.Duration

	// Verbose enables per-game diagnostics.
	Verbose bool
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Workers:        runtime.NumCPU(),
		LineLength:     80,
		KeepComments:   true,
		KeepNAGs:       true,
		KeepVariations: true,
	}
}

// SetBase derives the three artifact paths from a shared base name, with
// or without one of the artifact extensions.
func (c *Config) SetBase(base string) {
	for _, ext := range []string{".si4", ".sn4", ".sg4"} {
		base = strings.TrimSuffix(base, ext)
	}
	c.IndexPath = base + ".si4"
	c.NamePath = base + ".sn4"
	c.GamePath = base + ".sg4"
}

// Validate reports the first problem with the configuration.
func (c *Config) Validate() error {
	if c.IndexPath == "" || c.NamePath == "" || c.GamePath == "" {
		return fmt.Errorf("database base name is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxGames < 0 {
		return fmt.Errorf("max games cannot be negative, got %d", c.MaxGames)
	}
	if c.LineLength < 20 {
		return fmt.Errorf("line length must be at least 20, got %d", c.LineLength)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got %v", c.Timeout)
	}
	return nil
}
