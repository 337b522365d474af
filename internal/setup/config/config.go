package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// FileName is the name of the config file looked up in every search path.
const FileName = "collegemsg.toml"

// CurrentVersion is the current version of the config file.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version int    `koanf:"version"`
	Debug   Debug  `koanf:"debug"`
	Export  Export `koanf:"export"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
	// Maximum lines per log file.
	MaxLogLines int `koanf:"max_log_lines"`
}

// Export contains the defaults of the export command.
type Export struct {
	// Directory the exported files are written to.
	OutputDir string `koanf:"output_dir"`
	// JSON indent width, zero or less for compact output.
	Indent int `koanf:"indent"`
	// Formats written in addition to JSON (sqlite, binary, csv, chart).
	Formats []string `koanf:"formats"`
	// Checksum algorithm for exported files (blake2b, sha256).
	HashType string `koanf:"hash_type"`
	// Free text stored in the export configuration.
	Description string `koanf:"description"`
	// Directory for session logs.
	LogDir string `koanf:"log_dir"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Debug: Debug{
			LogLevel:      "info",
			MaxLogsToKeep: 10,
			MaxLogLines:   10000,
		},
		Export: Export{
			OutputDir: ".",
			Indent:    0,
			HashType:  "blake2b",
			LogDir:    "logs",
		},
	}
}

// SearchPaths lists the directories searched for the config file, in order.
func SearchPaths() ([]string, error) {
	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return []string{
		".collegemsg",
		filepath.Join(homeDir, ".collegemsg", "config"),
		"/etc/collegemsg/config",
		"config",
		".",
	}, nil
}

// LoadConfig loads the configuration. An explicit path must exist; otherwise
// the search paths are tried and defaults are used when none holds a config
// file. Returns the config along with the used config file, empty for defaults.
func LoadConfig(path string) (*Config, string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		cfg, err := load(path)
		if err != nil {
			return nil, "", err
		}

		return cfg, path, nil
	}

	paths, err := SearchPaths()
	if err != nil {
		return nil, "", err
	}

	return LoadFromPaths(paths)
}

// LoadFromPaths loads the first config file found in the given directories,
// falling back to defaults.
func LoadFromPaths(paths []string) (*Config, string, error) {
	for _, dir := range paths {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		cfg, err := load(configPath)
		if err != nil {
			return nil, "", err
		}

		return cfg, configPath, nil
	}

	return Default(), "", nil
}

// load reads a config file over the defaults and checks its version.
func load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("error loading config %s: %w", path, err)
	}

	config := Default()
	config.Version = 0

	if err := k.Unmarshal("", config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(path, config.Version, CurrentVersion); err != nil {
		return nil, err
	}

	return config, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(name string, current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s", ErrConfigVersionMissing, name)
	}

	if current != expected {
		return fmt.Errorf("%w: %s (got: %d, expected: %d)", ErrConfigVersionMismatch, name, current, expected)
	}

	return nil
}
