package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "budget.yaml"

// Config represents the top-level budget.yaml configuration.
type Config struct {
	DataFile string         `yaml:"data_file"`
	Currency string         `yaml:"currency"`
	Activity ActivityConfig `yaml:"activity"`
}

// ActivityConfig controls the activity log.
type ActivityConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir,omitempty"` // defaults to the data file's directory
}

// Load reads a budget.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		DataFile: "budget_data.txt",
		Currency: "INR",
		Activity: ActivityConfig{
			Enabled: true,
		},
	}
}

// ResolveDataFile returns DataFile, made absolute relative to baseDir.
func (c *Config) ResolveDataFile(baseDir string) string {
	if filepath.IsAbs(c.DataFile) {
		return c.DataFile
	}
	return filepath.Join(baseDir, c.DataFile)
}

// ActivityDir returns the directory the activity log lives in.
func (c *Config) ActivityDir(baseDir string) string {
	if c.Activity.Dir == "" {
		return filepath.Dir(c.ResolveDataFile(baseDir))
	}
	if filepath.IsAbs(c.Activity.Dir) {
		return c.Activity.Dir
	}
	return filepath.Join(baseDir, c.Activity.Dir)
}
