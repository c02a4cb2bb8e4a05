package clean

import (
	"errors"
	"reflect"
	"testing"

	"github.com/epfl-sisb/infomarc/internal/marc"
)

func values(p marc.Payload) []string {
	rep, ok := p.(marc.Repeated)
	if !ok {
		return nil
	}
	var out []string
	for _, sfs := range rep {
		v, _ := sfs.Get("a")
		out = append(out, v)
	}
	return out
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"isbn list", "978-0-13-468599-1 978-1-23-456789-0", []string{"978-0-13-468599-1", "978-1-23-456789-0"}},
		{"issn list", "0028-0836, 1476-4687", []string{"0028-0836", "1476-4687"}},
		{"single", " 0028-0836 ", []string{"0028-0836"}},
		{"isbn with check letter", "0-8044-2957-X", []string{"0-8044-2957-X"}},
		{"double spaces", "9780134685991  9781234567890", []string{"9780134685991", "9781234567890"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := values(Identifiers(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Identifiers(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIdentifiers_EmptyIsNil(t *testing.T) {
	if p := Identifiers(""); p != nil {
		t.Errorf("Identifiers(\"\") = %#v, want nil", p)
	}
}

func TestExtraIdentifiers(t *testing.T) {
	tests := []struct {
		name   string
		extra  string
		hasDOI bool
		want   marc.Repeated
	}{
		{
			name:  "web of science",
			extra: "WOS:000123456789",
			want:  marc.Repeated{{{Code: "a", Value: "000123456789"}, {Code: "2", Value: "ISI"}}},
		},
		{
			name:  "several lines",
			extra: "PMID: 12345\narXiv: 2101.00001\r\nWOS: 000999",
			want: marc.Repeated{
				{{Code: "a", Value: "12345"}, {Code: "2", Value: "PMID"}},
				{{Code: "a", Value: "2101.00001"}, {Code: "2", Value: "arXiv"}},
				{{Code: "a", Value: "000999"}, {Code: "2", Value: "ISI"}},
			},
		},
		{
			name:  "doi kept without structured doi",
			extra: "DOI: 10.1000/xyz:1",
			want:  marc.Repeated{{{Code: "a", Value: "10.1000/xyz:1"}, {Code: "2", Value: "DOI"}}},
		},
		{
			name:   "doi suppressed with structured doi",
			extra:  "DOI: 10.1000/xyz\nPMID: 42",
			hasDOI: true,
			want:   marc.Repeated{{{Code: "a", Value: "42"}, {Code: "2", Value: "PMID"}}},
		},
		{
			name:  "unknown types skipped",
			extra: "Citation Key: smith2020\nPMID: 42",
			want:  marc.Repeated{{{Code: "a", Value: "42"}, {Code: "2", Value: "PMID"}}},
		},
		{
			name:  "blank lines ignored",
			extra: "\nPMID: 42\n\n",
			want:  marc.Repeated{{{Code: "a", Value: "42"}, {Code: "2", Value: "PMID"}}},
		},
		{
			name:  "empty value skipped",
			extra: "PMID:",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtraIdentifiers(tt.extra, tt.hasDOI)
			if err != nil {
				t.Fatalf("ExtraIdentifiers() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtraIdentifiers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtraIdentifiers_MalformedLineAborts(t *testing.T) {
	got, err := ExtraIdentifiers("PMID: 42\nsome free text\nWOS: 1", false)
	if !errors.Is(err, ErrMalformedExtra) {
		t.Fatalf("ExtraIdentifiers() error = %v, want ErrMalformedExtra", err)
	}
	if got != nil {
		t.Errorf("ExtraIdentifiers() = %v, want nil on abort", got)
	}
}
