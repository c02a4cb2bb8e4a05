package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/epfl-sisb/infomarc/internal/registry"
)

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := GlobalConfigPath()
	want := "/custom/config/infomarc/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}

	// Empty XDG_CONFIG_HOME falls back to ~/.config
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = GlobalConfigPath()
	want = filepath.Join(home, ".config", "infomarc", "config.yml")
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.LabsURL != registry.DefaultLabsURL {
		t.Errorf("LabsURL = %q, want default", cfg.LabsURL)
	}
	if !cfg.IncludeAbstract || !cfg.BatchID || cfg.Validated {
		t.Errorf("option defaults = %+v", cfg)
	}
	if len(cfg.ExcludedTypes) != 3 {
		t.Errorf("ExcludedTypes = %v, want thesis, presentation, patent", cfg.ExcludedTypes)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return tmpDir
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", writeConfig(t, `
labs_url: /srv/registry/labs.json
authors_url: https://example.org/authors.json
cache_path: ~/infomarc/cache.db
include_abstract: false
validated: true
excluded_types: [thesis]
`))

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	if cfg.LabsURL != "/srv/registry/labs.json" {
		t.Errorf("LabsURL = %q", cfg.LabsURL)
	}
	if cfg.AuthorsURL != "https://example.org/authors.json" {
		t.Errorf("AuthorsURL = %q", cfg.AuthorsURL)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "infomarc/cache.db"); cfg.CachePath != want {
		t.Errorf("CachePath = %q, want %q", cfg.CachePath, want)
	}

	if cfg.IncludeAbstract {
		t.Error("IncludeAbstract = true, want false from file")
	}
	if !cfg.BatchID {
		t.Error("BatchID = false, want default true")
	}
	if !cfg.Validated {
		t.Error("Validated = false, want true from file")
	}
	if len(cfg.ExcludedTypes) != 1 || cfg.ExcludedTypes[0] != "thesis" {
		t.Errorf("ExcludedTypes = %v, want [thesis]", cfg.ExcludedTypes)
	}
	if cfg.UserAgent != registry.DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
	}
}

func TestLoadGlobalConfig_EnvOverlay(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", writeConfig(t, "labs_url: /from/file.json\nbatch_id: true\n"))
	t.Setenv("INFOMARC_LABS_URL", "https://example.org/labs.json")
	t.Setenv("INFOMARC_BATCH_ID", "false")
	t.Setenv("INFOMARC_EXCLUDED_TYPES", "thesis,patent")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.LabsURL != "https://example.org/labs.json" {
		t.Errorf("LabsURL = %q, want environment value", cfg.LabsURL)
	}
	if cfg.BatchID {
		t.Error("BatchID = true, want false from environment")
	}
	if len(cfg.ExcludedTypes) != 2 || cfg.ExcludedTypes[1] != "patent" {
		t.Errorf("ExcludedTypes = %v", cfg.ExcludedTypes)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", writeConfig(t, "labs_url: [unclosed"))

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() should return error for invalid YAML")
	}
}

func TestLoadGlobalConfig_InvalidURL(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", writeConfig(t, "labs_url: ftp://example.org/labs.json\n"))

	_, err := LoadGlobalConfig()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadGlobalConfig() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadGlobalConfig_Cached(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	first, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	second, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("LoadGlobalConfig() did not return the cached config")
	}
}
