// Package config loads the RPG project configuration: which languages to
// scan, which paths to exclude, default hierarchy roots to seed an empty
// graph with, and the lifting session's default batch size. It follows
// the usual declarative YAML project-config shape (load, merge with
// defaults, validate) but is scoped to what the RPG pipeline actually
// reads.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the RPG configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the RPG configuration/state directory.
const ConfigDirName = ".rpg"

// Config holds all RPG project configuration.
type Config struct {
	Scan      ScanConfig      `yaml:"scan"`
	Hierarchy HierarchyConfig `yaml:"hierarchy"`
	Lifting   LiftingConfig   `yaml:"lifting"`
}

// ScanConfig controls which files feed the extraction pipeline.
type ScanConfig struct {
	// Languages restricts extraction to these language ids (registry.LangID
	// strings); empty means "all languages the registry recognizes".
	Languages []string `yaml:"languages"`
	// Exclude holds glob patterns (matched against the project-relative
	// path) skipped before parsing.
	Exclude []string `yaml:"exclude"`
}

// HierarchyConfig seeds a new graph's top-level V_H groupings before any
// semantic lifting has run, so Search/Fetch have a hierarchy to scope
// against immediately after a first scan.
type HierarchyConfig struct {
	DefaultRoots []string `yaml:"default_roots"`
}

// LiftingConfig controls the default shape of a lifting session.
type LiftingConfig struct {
	// BatchSize is the default number of entities per batch_range when a
	// session is opened without an explicit override.
	BatchSize int `yaml:"batch_size"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .rpg/config.yaml, falling back to defaults. It
// searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path, merges it with defaults,
// and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .rpg directory by walking up from startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .rpg directory if it doesn't exist.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are usable.
func Validate(cfg *Config) error {
	if cfg.Lifting.BatchSize <= 0 {
		return fmt.Errorf("%w: lifting.batch_size must be positive, got %d",
			ErrInvalidConfig, cfg.Lifting.BatchSize)
	}
	return nil
}

// SaveDefault writes the default configuration to .rpg/config.yaml in
// workDir. Creates the .rpg directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# RPG project configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
