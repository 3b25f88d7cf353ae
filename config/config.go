package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the tmxmine tool.
type Config struct {
	Extract ExtractConfig `yaml:"extract"`
	Batch   BatchConfig   `yaml:"batch"`
	History HistoryConfig `yaml:"history"`
}

// ExtractConfig holds the extraction and keyword-matching settings.
type ExtractConfig struct {
	SourceLang       string   `yaml:"source_lang"`
	TargetLang       string   `yaml:"target_lang"`
	Keywords         []string `yaml:"keywords"`
	CaseSensitive    bool     `yaml:"case_sensitive"`
	MatchScope       string   `yaml:"match_scope"` // "source", "target", "both"
	Format           string   `yaml:"format"`      // "csv", "xlsx"
	ProgressInterval int      `yaml:"progress_interval"`
}

// BatchConfig holds batch-mode settings.
type BatchConfig struct {
	Includes    []string `yaml:"includes"`
	Excludes    []string `yaml:"excludes"`
	OutputDir   string   `yaml:"output_dir"`
	Concurrency int      `yaml:"concurrency"`
}

// HistoryConfig holds run-history settings.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			SourceLang:       "eu",
			TargetLang:       "es",
			MatchScope:       "source",
			Format:           "csv",
			ProgressInterval: 500000,
		},
		Batch: BatchConfig{
			Includes:    []string{"**/*.tmx", "**/*.tmx.gz"},
			Excludes:    []string{},
			OutputDir:   "extracted",
			Concurrency: 4,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(".tmxmine", "history.db"),
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for tmxmine.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "tmxmine.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".tmxmine", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
