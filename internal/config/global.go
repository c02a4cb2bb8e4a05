// Package config handles the exporter's global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/infomarc/config.yml.
// Every key may be overridden by an INFOMARC_* environment variable.
type GlobalConfig struct {
	LabsURL    string `yaml:"labs_url,omitempty" json:"labs_url" envconfig:"labs_url"`
	AuthorsURL string `yaml:"authors_url,omitempty" json:"authors_url" envconfig:"authors_url"`
	UserAgent  string `yaml:"user_agent,omitempty" json:"user_agent" envconfig:"user_agent"`
	CachePath  string `yaml:"cache_path,omitempty" json:"cache_path" envconfig:"cache_path"`

	// Export defaults; command-line flags take precedence.
	IncludeAbstract bool     `yaml:"include_abstract" json:"include_abstract" envconfig:"include_abstract"`
	BatchID         bool     `yaml:"batch_id" json:"batch_id" envconfig:"batch_id"`
	Validated       bool     `yaml:"validated" json:"validated" envconfig:"validated"`
	ExcludedTypes   []string `yaml:"excluded_types,omitempty" json:"excluded_types" envconfig:"excluded_types"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "infomarc"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// EnvPrefix prefixes the environment overrides.
	EnvPrefix = "infomarc"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/infomarc/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file and applies the
// environment overlay. A missing file yields the defaults, not an error.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	cfg := Default()

	if path := GlobalConfigPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment overrides: %w", err)
	}

	if cfg.CachePath != "" {
		cfg.CachePath = ExpandPath(cfg.CachePath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// Marshal renders the configuration as YAML.
func (c *GlobalConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
