package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/epfl-sisb/infomarc/internal/export"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		labs    string
		wantErr bool
	}{
		{"https url", "https://example.org/labs.json", false},
		{"http url", "http://localhost:8080/labs.json", false},
		{"local file", "testdata/labs.json", false},
		{"empty", "", true},
		{"ftp scheme", "ftp://example.org/labs.json", true},
		{"missing host", "https:///labs.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.LabsURL = tt.labs
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultCachePath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	if got, want := DefaultCachePath(), "/custom/cache/infomarc/registry.db"; got != want {
		t.Errorf("DefaultCachePath() = %q, want %q", got, want)
	}
}

func TestDefault_ExcludedTypesIsCopy(t *testing.T) {
	cfg := Default()
	cfg.ExcludedTypes[0] = "book"
	if export.DefaultExcludedTypes[0] == "book" {
		t.Error("Default() shares the DefaultExcludedTypes backing array")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/cache.db", filepath.Join(home, "cache.db")},
		{"/abs/cache.db", "/abs/cache.db"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExportOptions(t *testing.T) {
	cfg := Default()
	cfg.Validated = true
	cfg.ExcludedTypes = []string{"thesis"}

	opts := cfg.ExportOptions()
	if !opts.Validated || !opts.IncludeAbstract || !opts.BatchID {
		t.Errorf("ExportOptions() = %+v", opts)
	}
	if len(opts.ExcludedTypes) != 1 || opts.ExcludedTypes[0] != "thesis" {
		t.Errorf("ExcludedTypes = %v", opts.ExcludedTypes)
	}

	src := cfg.RegistrySources()
	if src.Labs != cfg.LabsURL || src.Authors != cfg.AuthorsURL {
		t.Errorf("RegistrySources() = %+v", src)
	}
}
