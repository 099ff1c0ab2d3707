// Package eco converts between the index record's packed opening
// classification and its text form, "A00" through "E99", optionally with a
// one-letter subcode suffix ("E99c").
package eco

import (
	"fmt"
)

// Code is the packed classification. Zero means unclassified.
type Code uint16

// basesPerLetter spans "x00" to "x99"; each base carries 131 subcode
// values (none, or 'a' through 'z' plus reserve).
const (
	subcodesPerBase = 131
	basesPerLetter  = 100
)

// String renders the code, or "" when unclassified.
func (c Code) String() string {
	if c == 0 {
		return ""
	}
	v := int(c - 1)
	sub := v % subcodesPerBase
	base := v / subcodesPerBase
	letter := 'A' + base/basesPerLetter
	if letter > 'E' {
		return ""
	}
	s := fmt.Sprintf("%c%02d", letter, base%basesPerLetter)
	if sub >= 1 && sub <= 26 {
		s += string(rune('a' + sub - 1))
	}
	return s
}

// Parse converts the text form back to a packed code. The empty string
// parses to the unclassified code.
func Parse(s string) (Code, error) {
	if s == "" {
		return 0, nil
	}
	if len(s) < 3 || len(s) > 4 || s[0] < 'A' || s[0] > 'E' ||
		s[1] < '0' || s[1] > '9' || s[2] < '0' || s[2] > '9' {
		return 0, fmt.Errorf("invalid ECO code %q", s)
	}
	base := int(s[0]-'A')*basesPerLetter + int(s[1]-'0')*10 + int(s[2]-'0')
	sub := 0
	if len(s) == 4 {
		if s[3] < 'a' || s[3] > 'z' {
			return 0, fmt.Errorf("invalid ECO subcode %q", s)
		}
		sub = int(s[3]-'a') + 1
	}
	return Code(base*subcodesPerBase + sub + 1), nil
}
