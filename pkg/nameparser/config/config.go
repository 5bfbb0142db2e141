package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/nameparser/pkg/nameparser/internalerr"
	"github.com/cognicore/nameparser/pkg/nameparser/normalize"
)

// Config represents the parser configuration file
type Config struct {
	Languages           []string          `yaml:"languages"`
	LanguageFiles       []string          `yaml:"language_files"`
	Whitespace          string            `yaml:"whitespace"`
	NicknameDelimiters  map[string]string `yaml:"nickname_delimiters"`
	MaxSalutationIndex  int               `yaml:"max_salutation_index"`
	MaxCombinedInitials int               `yaml:"max_combined_initials"`
	PrefixInFamily      bool              `yaml:"prefix_in_family"`
	Server              Server            `yaml:"server"`
	Store               Store             `yaml:"store"`
}

// Server configures the HTTP API
type Server struct {
	Addr      string `yaml:"addr"`
	CacheSize int    `yaml:"cache_size"`
	MaxBatch  int    `yaml:"max_batch"`
}

// Store configures persistence of parse results
type Store struct {
	// Path of the SQLite database. Empty disables persistence.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Languages:           []string{"german"},
		Whitespace:          normalize.DefaultWhitespace,
		MaxCombinedInitials: 2,
		Server: Server{
			Addr:      ":8080",
			CacheSize: 1024,
			MaxBatch:  100,
		},
	}
}

// Load reads a YAML config file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the numeric bounds
func (c *Config) Validate() error {
	switch {
	case c.MaxSalutationIndex < 0:
		return fmt.Errorf("%w: max_salutation_index must not be negative", internalerr.ErrInvalidConfig)
	case c.MaxCombinedInitials < 0:
		return fmt.Errorf("%w: max_combined_initials must not be negative", internalerr.ErrInvalidConfig)
	case c.Server.CacheSize < 0:
		return fmt.Errorf("%w: server.cache_size must not be negative", internalerr.ErrInvalidConfig)
	case c.Server.MaxBatch < 0:
		return fmt.Errorf("%w: server.max_batch must not be negative", internalerr.ErrInvalidConfig)
	}
	for open, closing := range c.NicknameDelimiters {
		if open == "" || closing == "" {
			return fmt.Errorf("%w: empty nickname delimiter", internalerr.ErrInvalidConfig)
		}
	}
	return nil
}
