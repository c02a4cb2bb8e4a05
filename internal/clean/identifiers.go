package clean

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/epfl-sisb/infomarc/internal/marc"
)

// ErrMalformedExtra is returned when a line of the extra field has no
// "type: value" shape. Extraction stops for the whole field.
var ErrMalformedExtra = errors.New("malformed extra field line")

// DOISource is the 0247_ $2 value for the structured DOI.
const DOISource = "doi"

// extraIdentifierTypes translates extra-field keys to repository
// identifier sources.
var extraIdentifierTypes = map[string]string{
	"doi":   "DOI",
	"wos":   "ISI",
	"pmid":  "PMID",
	"arxiv": "arXiv",
}

var extraLine = regexp.MustCompile(`^([^:]+):\s*(.*)$`)

// Identifiers splits an ISBN or ISSN field into one $a per number.
// ISSN lists are comma-space separated, ISBN lists space separated.
// Hyphens are kept.
func Identifiers(raw string) marc.Payload {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	var tokens []string
	switch {
	case strings.Contains(s, ", "):
		tokens = strings.Split(s, ", ")
	case strings.Contains(s, " "):
		tokens = strings.Split(s, " ")
	default:
		tokens = []string{s}
	}

	var out marc.Repeated
	for _, tok := range tokens {
		tok = strings.Trim(tok, " ,;")
		if tok == "" {
			continue
		}
		out = append(out, marc.Subfields{}.Add("a", tok))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ExtraIdentifiers reads "type: value" lines from the extra field and
// returns one {a: value, 2: source} occurrence per recognised identifier.
// A DOI line is skipped when the item already has a structured DOI. Blank
// lines are ignored; any other line without a colon aborts extraction and
// returns ErrMalformedExtra with no identifiers.
func ExtraIdentifiers(extra string, hasDOI bool) (marc.Repeated, error) {
	var out marc.Repeated
	for i, line := range strings.Split(extra, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := extraLine.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: line %d %q", ErrMalformedExtra, i+1, line)
		}

		key := strings.ToLower(strings.TrimSpace(m[1]))
		source, ok := extraIdentifierTypes[key]
		if !ok {
			continue
		}
		if key == "doi" && hasDOI {
			continue
		}
		value := strings.TrimSpace(m[2])
		if value == "" {
			continue
		}
		out = append(out, marc.Subfields{}.Add("a", value).Add("2", source))
	}
	return out, nil
}
