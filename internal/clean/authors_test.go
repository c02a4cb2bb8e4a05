package clean

import (
	"reflect"
	"testing"

	"github.com/epfl-sisb/infomarc/internal/item"
	"github.com/epfl-sisb/infomarc/internal/marc"
)

type fakeDirectory map[string]map[string][2]string

func (f fakeDirectory) Affiliated(name, lab string) (string, string, bool) {
	ids, ok := f[name][lab]
	return ids[0], ids[1], ok
}

func TestAuthors(t *testing.T) {
	dir := fakeDirectory{
		"Borel, Alain":           {"LPI": {"123456", "654321"}},
		"M\u00fcller, J\u00f6rg": {"LPI": {"111", "222"}},
		"Doe, Jane":              {"OTHER": {"999", "888"}},
	}
	creators := []item.Creator{
		{FirstName: "Alain", LastName: "Borel", CreatorType: "author"},
		{FirstName: "Jane", LastName: "Doe", CreatorType: "author"},
		{FirstName: "Eddie", LastName: "Tor", CreatorType: "editor"},
		{LastName: "CERN", CreatorType: "author", FieldMode: 1},
		{FirstName: "Carl", LastName: "Contrib", CreatorType: "contributor"},
		// decomposed umlauts must still match the registry key
		{FirstName: "Jo\u0308rg", LastName: "Mu\u0308ller", CreatorType: "author"},
	}

	personal, corporate := Authors(creators, dir, "LPI")

	wantPersonal := marc.Repeated{
		{{Code: "a", Value: "Borel, Alain"}, {Code: "g", Value: "123456"}, {Code: "0", Value: "654321"}},
		{{Code: "a", Value: "Doe, Jane"}},
		{{Code: "a", Value: "M\u00fcller, J\u00f6rg"}, {Code: "g", Value: "111"}, {Code: "0", Value: "222"}},
	}
	if !reflect.DeepEqual(personal, wantPersonal) {
		t.Errorf("personal = %v, want %v", personal, wantPersonal)
	}

	wantCorporate := []marc.Subfields{
		{{Code: "a", Value: "CERN"}},
		{{Code: "a", Value: "Contrib, Carl"}},
	}
	if !reflect.DeepEqual(corporate, wantCorporate) {
		t.Errorf("corporate = %v, want %v", corporate, wantCorporate)
	}
}

func TestAuthors_NoLabOrDirectory(t *testing.T) {
	creators := []item.Creator{{FirstName: "Alain", LastName: "Borel", CreatorType: "author"}}
	dir := fakeDirectory{"Borel, Alain": {"LPI": {"1", "2"}}}

	for _, tc := range []struct {
		name string
		dir  AuthorDirectory
		lab  string
	}{
		{"no lab", dir, ""},
		{"nil directory", nil, "LPI"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			personal, _ := Authors(creators, tc.dir, tc.lab)
			want := marc.Repeated{{{Code: "a", Value: "Borel, Alain"}}}
			if !reflect.DeepEqual(personal, want) {
				t.Errorf("personal = %v, want %v", personal, want)
			}
		})
	}
}
