// Package registry holds the lab and author lookup tables published by the
// repository, and fetches, decodes and caches them.
package registry

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// FlexibleString can unmarshal from either string or number JSON values.
// Record and SCIPER ids appear as both depending on the dump.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*f = FlexibleString(strconv.Itoa(i))
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// Lab is one lab registry entry, keyed by acronym in Labs.
type Lab struct {
	RecID   FlexibleString `json:"recid"`   // authority record id (909C0 $0)
	Manager string         `json:"manager"` // repository manager email
	UID     FlexibleString `json:"uid"`     // lab short code
	Liaison string         `json:"liaison"` // liaison librarian
}

// Labs maps lab acronyms to their registry entry.
type Labs map[string]Lab

// AuthorEntry is one registry match for a name: [affiliation id,
// authority id, lab acronyms].
type AuthorEntry struct {
	AffiliationID string
	AuthorityID   string
	Labs          []string
}

// UnmarshalJSON decodes the positional triple used by the registry dump.
func (e *AuthorEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("author entry: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("author entry: want 3 elements, got %d", len(raw))
	}

	var aff, auth FlexibleString
	if err := json.Unmarshal(raw[0], &aff); err != nil {
		return fmt.Errorf("author entry affiliation id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &auth); err != nil {
		return fmt.Errorf("author entry authority id: %w", err)
	}
	var labs []string
	if err := json.Unmarshal(raw[2], &labs); err != nil {
		return fmt.Errorf("author entry labs: %w", err)
	}

	*e = AuthorEntry{AffiliationID: aff.String(), AuthorityID: auth.String(), Labs: labs}
	return nil
}

// MarshalJSON encodes the entry back into its positional form.
func (e AuthorEntry) MarshalJSON() ([]byte, error) {
	labs := e.Labs
	if labs == nil {
		labs = []string{}
	}
	return json.Marshal([]any{e.AffiliationID, e.AuthorityID, labs})
}

// InLab reports whether the entry lists the lab acronym.
func (e AuthorEntry) InLab(lab string) bool {
	for _, l := range e.Labs {
		if l == lab {
			return true
		}
	}
	return false
}

// Authors maps "Last, First" names to their registry entries. A name can
// map to several people.
type Authors map[string][]AuthorEntry

// Affiliated returns the ids of the first entry for name that belongs to
// lab.
func (a Authors) Affiliated(name, lab string) (affiliationID, authorityID string, ok bool) {
	for _, e := range a[norm.NFC.String(name)] {
		if e.InLab(lab) {
			return e.AffiliationID, e.AuthorityID, true
		}
	}
	return "", "", false
}

// Registries bundles both lookup tables for a run.
type Registries struct {
	Labs    Labs
	Authors Authors
}

// ParseLabs decodes a lab registry JSON document.
func ParseLabs(data []byte) (Labs, error) {
	var labs Labs
	if err := json.Unmarshal(data, &labs); err != nil {
		return nil, fmt.Errorf("parsing lab registry: %w", err)
	}
	if labs == nil {
		labs = Labs{}
	}
	return labs, nil
}

// ParseAuthors decodes an author registry JSON document. Name keys are
// NFC-normalised.
func ParseAuthors(data []byte) (Authors, error) {
	var raw map[string][]AuthorEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing author registry: %w", err)
	}
	authors := make(Authors, len(raw))
	for name, entries := range raw {
		key := norm.NFC.String(name)
		authors[key] = append(authors[key], entries...)
	}
	return authors, nil
}
