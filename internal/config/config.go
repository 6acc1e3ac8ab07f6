// =============================================================================
// ERC721 Metadata Generator - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// default, so the generator runs without any configuration file at all;
// command-line flags override whatever the file sets.
//
// EXAMPLE config.yaml:
//
//   output_dir: ./build
//   name_mode: literal        # "collection" or "literal"
//   name_literal: name
//   atomic: true
//   indent: ""                # e.g. "  " for pretty-printed documents
//   sheet: ""                 # XLSX sheet, empty = first sheet
//   log_level: info
//   log_format: text
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the application configuration.
type MainConfig struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory where metadata documents are written.
	// Default: "build"
	OutputDir string `yaml:"output_dir"`

	// NameMode selects how record names are built.
	//   "collection" : "<collection name> #<i>"
	//   "literal"    : "<name_literal> #<i>"
	// Default: "collection"
	NameMode string `yaml:"name_mode"`

	// NameLiteral is the fixed name prefix used in "literal" mode.
	// Default: "name"
	NameLiteral string `yaml:"name_literal"`

	// Atomic validates and stages the whole run before writing any document
	// to OutputDir.
	// Default: false
	Atomic bool `yaml:"atomic"`

	// Indent pretty-prints documents with the given indentation.
	// Default: "" (compact)
	Indent string `yaml:"indent"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// Sheet is the worksheet read from .xlsx attribute files.
	// Default: "" (first sheet)
	Sheet string `yaml:"sheet"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log handler.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format"`
}

// DefaultConfigFile is the configuration file looked up when --config is not
// given.
const DefaultConfigFile = "config.yaml"

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required: When false, a missing file yields the defaults instead of
//     an error. Used for the implicit default config.yaml.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "build"
	}
	if config.NameMode == "" {
		config.NameMode = "collection"
	}
	if config.NameLiteral == "" {
		config.NameLiteral = "name"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
}

// validateMainConfig validates the configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.NameMode) {
	case "collection", "literal":
	default:
		return fmt.Errorf("name_mode must be \"collection\" or \"literal\", got %q", config.NameMode)
	}

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	switch strings.ToLower(config.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}

	if err := ValidateIndent(config.Indent); err != nil {
		return err
	}

	return nil
}

// ValidateIndent reports an error unless indent is made of spaces and tabs
// only. Anything else would end up inside the emitted JSON.
func ValidateIndent(indent string) error {
	if strings.Trim(indent, " \t") != "" {
		return fmt.Errorf("indent may only contain spaces and tabs, got %q", indent)
	}
	return nil
}
