package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/epfl-sisb/infomarc/internal/export"
	"github.com/epfl-sisb/infomarc/internal/registry"
)

const (
	// CacheDir is the directory name under XDG_CACHE_HOME.
	CacheDir = "infomarc"
	// CacheFile is the registry cache database name.
	CacheFile = "registry.db"
)

// ErrInvalidConfig is returned when a configuration value is unusable.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the configuration used when no file or environment
// override is present.
func Default() GlobalConfig {
	return GlobalConfig{
		LabsURL:         registry.DefaultLabsURL,
		AuthorsURL:      registry.DefaultAuthorsURL,
		UserAgent:       registry.DefaultUserAgent,
		CachePath:       DefaultCachePath(),
		IncludeAbstract: true,
		BatchID:         true,
		ExcludedTypes:   append([]string(nil), export.DefaultExcludedTypes...),
	}
}

// ExportOptions returns the export switches configured as defaults.
func (c *GlobalConfig) ExportOptions() export.Options {
	return export.Options{
		IncludeAbstract: c.IncludeAbstract,
		BatchID:         c.BatchID,
		Validated:       c.Validated,
		ExportNotes:     true,
		ExcludedTypes:   append([]string(nil), c.ExcludedTypes...),
	}
}

// RegistrySources returns where the lab and author registries are fetched.
func (c *GlobalConfig) RegistrySources() registry.Sources {
	return registry.Sources{Labs: c.LabsURL, Authors: c.AuthorsURL}
}

// DefaultCachePath returns the registry cache location.
// Respects XDG_CACHE_HOME, defaults to ~/.cache/infomarc/registry.db.
func DefaultCachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, CacheDir, CacheFile)
}

// Validate checks that registry locations are usable URLs or paths.
func (c *GlobalConfig) Validate() error {
	for key, loc := range map[string]string{"labs_url": c.LabsURL, "authors_url": c.AuthorsURL} {
		if err := validateLocation(loc); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
	}
	return nil
}

func validateLocation(loc string) error {
	if loc == "" {
		return errors.New("empty location")
	}
	if !strings.Contains(loc, "://") {
		return nil // local file
	}
	u, err := url.Parse(loc)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
