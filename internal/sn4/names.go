// Package sn4 decodes the namebase artifact: four front-coded string
// tables, one per name category, in a fixed category order. Each entry
// stores only the suffix that differs from the previous entry's shared
// prefix. The tables are built once and are immutable afterwards, so they
// are safe for concurrent reads from any number of decode workers.
package sn4

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/lgbarn/scid2pgn-go/internal/errors"
)

const (
	// Magic is the namebase artifact's magic literal.
	Magic = "Scid.sn\x00"

	// Version is the only namebase version this package reads.
	Version = 400

	// HeaderSize is the fixed prologue length in bytes.
	HeaderSize = 44
)

// Category identifies one of the four name tables.
type Category int

const (
	Player Category = iota
	Event
	Site
	Round
	NumCategories
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Player:
		return "player"
	case Event:
		return "event"
	case Site:
		return "site"
	case Round:
		return "round"
	}
	return "unknown"
}

// Header is the decoded namebase prologue.
type Header struct {
	Version   uint16
	Timestamp uint32

	// Entry count per category.
	Counts [NumCategories]int

	// Maximum frequency per category. This bound fixes the byte width of
	// every frequency integer in that category's body; widths are never
	// inferred per entry.
	MaxFrequency [NumCategories]int
}

// NameTable holds the decoded, ordered name lists. Index into a category
// with the record's name-ID; the lists are never mutated after Decode.
type NameTable struct {
	names       [NumCategories][]string
	frequencies [NumCategories][]int
}

// Name returns the string for an ID. An ID at or beyond the category's
// count is invalid.
func (t *NameTable) Name(cat Category, id uint32) (string, error) {
	if int(id) >= len(t.names[cat]) {
		return "", errors.Wrapf(errors.ErrNameID, "%v id %d of %d", cat, id, len(t.names[cat]))
	}
	return t.names[cat][id], nil
}

// Count returns the number of names in a category.
func (t *NameTable) Count(cat Category) int {
	return len(t.names[cat])
}

// Names returns a category's full ordered list. Callers must not modify it.
func (t *NameTable) Names(cat Category) []string {
	return t.names[cat]
}

// Frequency returns how many records reference the name, per the artifact.
func (t *NameTable) Frequency(cat Category, id uint32) int {
	if int(id) >= len(t.frequencies[cat]) {
		return 0
	}
	return t.frequencies[cat][id]
}

// DecodeHeader parses the fixed-length namebase prologue.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, errors.Format(errors.ErrTruncated, "namebase", len(b))
	}
	if !bytes.Equal(b[:8], []byte(Magic)) {
		return Header{}, errors.Format(errors.ErrBadMagic, "namebase", 0)
	}
	h := Header{
		Version:   binary.LittleEndian.Uint16(b[8:10]),
		Timestamp: binary.LittleEndian.Uint32(b[10:14]),
	}
	if h.Version != Version {
		return Header{}, errors.Format(errors.ErrUnsupportedVersion, "namebase", 8)
	}
	pos := 14
	for c := Category(0); c < NumCategories; c++ {
		h.Counts[c] = int(uint24(b[pos : pos+3]))
		pos += 3
	}
	for c := Category(0); c < NumCategories; c++ {
		h.MaxFrequency[c] = int(uint24(b[pos : pos+3]))
		pos += 3
	}
	// Flags byte and three reserved bytes close the prologue.
	return h, nil
}

// Decode parses a whole namebase artifact into its four name tables.
func Decode(data []byte) (*NameTable, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	t := &NameTable{}
	r := reader{data: data, pos: HeaderSize}

	for cat := Category(0); cat < NumCategories; cat++ {
		count := h.Counts[cat]
		idWidth := intWidth(count - 1)
		freqWidth := intWidth(h.MaxFrequency[cat])

		names := make([]string, count)
		freqs := make([]int, count)
		seen := make([]bool, count)

		prev := ""
		for i := 0; i < count; i++ {
			id, err := r.uint(idWidth)
			if err != nil {
				return nil, err
			}
			freq, err := r.uint(freqWidth)
			if err != nil {
				return nil, err
			}
			prefixLen, err := r.byte()
			if err != nil {
				return nil, err
			}
			if i == 0 && prefixLen != 0 {
				return nil, errors.Format(errors.ErrCorrupt, "namebase", r.pos)
			}
			if int(prefixLen) > len(prev) {
				return nil, errors.Format(errors.ErrCorrupt, "namebase", r.pos)
			}
			suffixLen, err := r.byte()
			if err != nil {
				return nil, err
			}
			suffix, err := r.bytes(int(suffixLen))
			if err != nil {
				return nil, err
			}

			// Reconstruct from the previous raw string, then clean for
			// storage: the shared prefix refers to the wire string, not
			// the cleaned one.
			raw := prev[:prefixLen] + string(suffix)
			prev = raw

			if int(id) >= count || seen[id] {
				return nil, errors.Format(errors.ErrCorrupt, "namebase", r.pos)
			}
			seen[id] = true
			names[id] = cleanName(raw)
			freqs[id] = int(freq)
		}

		t.names[cat] = names
		t.frequencies[cat] = freqs
	}
	return t, nil
}

// Encode renders a name table back to artifact bytes, writing each
// category's entries in ID order. It exists for round-trip validation and
// fixture construction.
func Encode(t *NameTable) []byte {
	var h Header
	h.Version = Version
	for cat := Category(0); cat < NumCategories; cat++ {
		h.Counts[cat] = len(t.names[cat])
		for _, f := range t.frequencies[cat] {
			if f > h.MaxFrequency[cat] {
				h.MaxFrequency[cat] = f
			}
		}
	}

	out := make([]byte, HeaderSize)
	copy(out, Magic)
	binary.LittleEndian.PutUint16(out[8:10], h.Version)
	binary.LittleEndian.PutUint32(out[10:14], h.Timestamp)
	pos := 14
	for c := Category(0); c < NumCategories; c++ {
		putUint24(out[pos:pos+3], uint32(h.Counts[c]))
		pos += 3
	}
	for c := Category(0); c < NumCategories; c++ {
		putUint24(out[pos:pos+3], uint32(h.MaxFrequency[c]))
		pos += 3
	}

	for cat := Category(0); cat < NumCategories; cat++ {
		idWidth := intWidth(len(t.names[cat]) - 1)
		freqWidth := intWidth(h.MaxFrequency[cat])
		prev := ""
		for id, name := range t.names[cat] {
			out = appendUint(out, uint32(id), idWidth)
			out = appendUint(out, uint32(t.frequencies[cat][id]), freqWidth)
			prefix := sharedPrefixLen(prev, name)
			out = append(out, byte(prefix), byte(len(name)-prefix))
			out = append(out, name[prefix:]...)
			prev = name
		}
	}
	return out
}

// NewTable builds a table directly from name lists, with unit frequencies.
// Intended for tests and fixture construction.
func NewTable(players, events, sites, rounds []string) *NameTable {
	t := &NameTable{}
	for cat, list := range map[Category][]string{
		Player: players, Event: events, Site: sites, Round: rounds,
	} {
		t.names[cat] = list
		t.frequencies[cat] = make([]int, len(list))
		for i := range list {
			t.frequencies[cat][i] = 1
		}
	}
	return t
}

// cleanName strips control bytes and squeezes whitespace, per the format's
// tolerance for embedded control characters in stored names.
func cleanName(raw string) string {
	mapped := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return ' '
		}
		return r
	}, raw)
	return strings.Join(strings.Fields(mapped), " ")
}

// sharedPrefixLen returns the length of the longest shared prefix, capped
// at what a single byte can express.
func sharedPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] && n < 255 {
		n++
	}
	return n
}

// intWidth returns the byte width needed for values up to max: the width is
// a property of the whole category, derived from its header bound.
func intWidth(max int) int {
	switch {
	case max < 1<<8:
		return 1
	case max < 1<<16:
		return 2
	default:
		return 3
	}
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) byte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.Format(errors.ErrTruncated, "namebase", r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, errors.Format(errors.ErrTruncated, "namebase", r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) uint(width int) (uint32, error) {
	b, err := r.bytes(width)
	if err != nil {
		return 0, err
	}
	var v uint32
	for i := 0; i < width; i++ {
		v |= uint32(b[i]) << (8 * i)
	}
	return v, nil
}

func appendUint(out []byte, v uint32, width int) []byte {
	for i := 0; i < width; i++ {
		out = append(out, byte(v>>(8*i)))
	}
	return out
}

func uint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
