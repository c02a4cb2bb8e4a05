// Package marc builds MARCXML records: tag descriptors, field payloads,
// the per-record field emitter, leader arithmetic and document serialisation.
package marc

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidTag is returned for malformed tag descriptors. A descriptor that
// fails to parse is a defect in the caller's field table, not bad input data.
var ErrInvalidTag = errors.New("invalid tag descriptor")

// blankIndicator is the placeholder used for a blank indicator in descriptors.
const blankIndicator = '_'

// Tag is a parsed data field descriptor such as "0247_" or "909C0".
type Tag struct {
	Code     string // three digits
	Ind1     string // single character, " " when blank
	Ind2     string
	Subfield string // optional subfield hint, "" when absent
}

// String renders the tag back in descriptor form.
func (t Tag) String() string {
	return t.Code + descriptorIndicator(t.Ind1) + descriptorIndicator(t.Ind2) + t.Subfield
}

func descriptorIndicator(ind string) string {
	if ind == " " {
		return string(blankIndicator)
	}
	return ind
}

// ParseTag validates a descriptor of three digits, two indicator characters
// (underscore for blank) and an optional one-character subfield hint.
func ParseTag(desc string) (Tag, error) {
	if strings.IndexFunc(desc, unicode.IsSpace) >= 0 {
		return Tag{}, fmt.Errorf("%w: %q contains whitespace", ErrInvalidTag, desc)
	}
	if len(desc) < 5 || len(desc) > 6 {
		return Tag{}, fmt.Errorf("%w: %q must be 5 characters plus an optional subfield code", ErrInvalidTag, desc)
	}
	if !isDigits(desc[:3]) {
		return Tag{}, fmt.Errorf("%w: %q does not start with a 3-digit tag", ErrInvalidTag, desc)
	}
	if strings.HasPrefix(desc, "00") {
		return Tag{}, fmt.Errorf("%w: %q is a control field tag", ErrInvalidTag, desc)
	}

	t := Tag{Code: desc[:3]}
	for i, ind := range []*string{&t.Ind1, &t.Ind2} {
		c := desc[3+i]
		switch {
		case c == blankIndicator:
			*ind = " "
		case isAlnum(c):
			*ind = string(c)
		default:
			return Tag{}, fmt.Errorf("%w: %q has invalid indicator %q", ErrInvalidTag, desc, c)
		}
	}
	if len(desc) == 6 {
		if !ValidSubfieldCode(desc[5:]) {
			return Tag{}, fmt.Errorf("%w: %q has invalid subfield hint", ErrInvalidTag, desc)
		}
		t.Subfield = desc[5:]
	}
	return t, nil
}

// ValidControlTag reports whether tag is a control field tag (001-009).
func ValidControlTag(tag string) bool {
	return len(tag) == 3 && isDigits(tag) && strings.HasPrefix(tag, "00") && tag != "000"
}

// ValidSubfieldCode reports whether code is a single lowercase letter or digit.
func ValidSubfieldCode(code string) bool {
	if len(code) != 1 {
		return false
	}
	c := code[0]
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
