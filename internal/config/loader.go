package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".doclink"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// RootConfig holds per-root overrides for a single documentation directory.
// Zero-valued fields fall back to the file-level defaults and then to the
// built-in defaults.
type RootConfig struct {
	// Attributes overrides the attribute kinds to extract, in order.
	Attributes []string `yaml:"attributes,omitempty"`

	// ExternalPrefixes overrides the prefixes that classify a reference
	// as external.
	ExternalPrefixes []string `yaml:"externalPrefixes,omitempty"`

	// IgnorePatterns are glob patterns of reference values to skip,
	// e.g. "vendor/*" or "*.generated.css".
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// Parser overrides the extractor for this root ("text" or "html").
	Parser string `yaml:"parser,omitempty"`
}

// File represents the structure of the .doclink configuration file.
type File struct {
	// Roots maps documentation root paths to their overrides.
	// Keys are the root paths as passed on the command line
	// (e.g. "docs", "site/public").
	Roots map[string]RootConfig `yaml:"roots,omitempty"`

	// Defaults contains overrides applied to every root unless the
	// root-specific entry overrides them again.
	Defaults RootConfig `yaml:"defaults,omitempty"`
}

// GetRootConfig returns the configuration for a specific root, merging the
// root-specific entry over the file-level defaults.
func (f *File) GetRootConfig(root string) RootConfig {
	result := f.Defaults

	if rc, ok := f.Roots[root]; ok {
		if len(rc.Attributes) > 0 {
			result.Attributes = rc.Attributes
		}
		if len(rc.ExternalPrefixes) > 0 {
			result.ExternalPrefixes = rc.ExternalPrefixes
		}
		if len(rc.IgnorePatterns) > 0 {
			result.IgnorePatterns = rc.IgnorePatterns
		}
		if rc.Parser != "" {
			result.Parser = rc.Parser
		}
	}

	return result
}

// LoadConfigFile loads root configurations from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether the
// config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	// Initialize Roots map if nil
	if f.Roots == nil {
		f.Roots = make(map[string]RootConfig)
	}

	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .doclink in the current directory
//  3. Look for .doclink in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
