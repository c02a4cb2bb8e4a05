package clean

import (
	"golang.org/x/text/unicode/norm"

	"github.com/epfl-sisb/infomarc/internal/item"
	"github.com/epfl-sisb/infomarc/internal/marc"
)

// AuthorDirectory resolves a "Last, First" name to the registry entry
// affiliated with a lab.
type AuthorDirectory interface {
	Affiliated(name, lab string) (affiliationID, authorityID string, ok bool)
}

// Authors maps item creators to personal author occurrences (700) and
// corporate author fields (710). Editors are skipped. Personal authors that
// the directory places in lab get $g affiliation and $0 authority subfields.
// Names are NFC-normalised so decomposed input still matches registry keys.
func Authors(creators []item.Creator, dir AuthorDirectory, lab string) (marc.Repeated, []marc.Subfields) {
	var personal marc.Repeated
	var corporate []marc.Subfields

	for _, c := range creators {
		if c.CreatorType == item.CreatorEditor {
			continue
		}
		name := norm.NFC.String(c.FullName())
		if name == "" {
			continue
		}

		if c.CreatorType != item.CreatorAuthor || c.SingleField() {
			corporate = append(corporate, marc.Subfields{}.Add("a", name))
			continue
		}

		sfs := marc.Subfields{}.Add("a", name)
		if dir != nil && lab != "" {
			if aff, auth, ok := dir.Affiliated(name, lab); ok {
				sfs = sfs.Add("g", aff).Add("0", auth)
			}
		}
		personal = append(personal, sfs)
	}
	return personal, corporate
}
