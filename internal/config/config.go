// Package config loads and validates CLI configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-bingopdf/internal/fileutil"
	"github.com/alnah/go-bingopdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Grid and pool bounds mirrored from the library; validated here so a
// bad config fails at load time with a field name.
const (
	minGridSide = 3
	maxGridSide = 5
	maxPoolSize = 100
)

// Config holds all configuration for bingo document generation.
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Cards    int            `yaml:"cards"`
	PoolSize int            `yaml:"poolSize"` // 0 = computed minimum
	Provider ProviderConfig `yaml:"provider"`
	Output   OutputConfig   `yaml:"output"`
}

// GridConfig defines the card shape.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// ProviderConfig defines the content provider connection.
type ProviderConfig struct {
	Project string `yaml:"project"` // GCP project (empty = GCP_PROJECT_ID env)
	Region  string `yaml:"region"`  // empty = provider default
	Model   string `yaml:"model"`   // empty = provider default
	Mode    string `yaml:"mode"`    // question style (default "quiz")
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = working dir)
	Title      string `yaml:"title"`      // Document title (empty = topic text)
}

// DefaultConfig returns the stock 4x4, ten-card configuration.
func DefaultConfig() *Config {
	return &Config{
		Grid:  GridConfig{Rows: 4, Cols: 4},
		Cards: 10,
	}
}

// Validate checks ranges of everything the YAML could set.
func (c *Config) Validate() error {
	if c.Grid.Rows < minGridSide || c.Grid.Rows > maxGridSide {
		return fmt.Errorf("%w: grid.rows %d (must be %d-%d)", ErrInvalidValue, c.Grid.Rows, minGridSide, maxGridSide)
	}
	if c.Grid.Cols < minGridSide || c.Grid.Cols > maxGridSide {
		return fmt.Errorf("%w: grid.cols %d (must be %d-%d)", ErrInvalidValue, c.Grid.Cols, minGridSide, maxGridSide)
	}
	if c.Cards < 1 {
		return fmt.Errorf("%w: cards %d (must be at least 1)", ErrInvalidValue, c.Cards)
	}
	if c.PoolSize != 0 {
		cells := c.Grid.Rows * c.Grid.Cols
		if c.PoolSize < cells || c.PoolSize > maxPoolSize {
			return fmt.Errorf("%w: poolSize %d (must be between %d and %d)", ErrInvalidValue, c.PoolSize, cells, maxPoolSize)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard
// locations: current directory first, then ~/.config/go-bingopdf/,
// trying .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-bingopdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
