package config

import (
	"fmt"

	"github.com/cognicore/nameparser/pkg/nameparser"
	"github.com/cognicore/nameparser/pkg/nameparser/language"
)

// Loader loads the configuration file and constructs the parser
type Loader struct {
	ConfigPath string
	// Languages overrides the languages named in the file when set
	Languages []string
	// StorePath overrides store.path when set
	StorePath string
}

// Components holds the loaded configuration and the parser built from it
type Components struct {
	Config *Config
	Parser *nameparser.Parser
}

// Load reads the config file (or the defaults) and returns initialized
// components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if len(l.Languages) > 0 {
		cfg.Languages = l.Languages
	}
	if l.StorePath != "" {
		cfg.Store.Path = l.StorePath
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return &Components{Config: cfg, Parser: nameparser.New(opts)}, nil
}

// Options resolves the configured languages into parser options. Built-in
// languages come first, followed by language files in the listed order, so
// a file can override built-in entries.
func (c *Config) Options() (nameparser.Options, error) {
	if err := c.Validate(); err != nil {
		return nameparser.Options{}, err
	}

	providers := make([]language.Provider, 0, len(c.Languages)+len(c.LanguageFiles))
	for _, name := range c.Languages {
		lang, err := language.Builtin(name)
		if err != nil {
			return nameparser.Options{}, fmt.Errorf("load language: %w", err)
		}
		providers = append(providers, lang)
	}
	for _, path := range c.LanguageFiles {
		lang, err := language.LoadFromYAML(path)
		if err != nil {
			return nameparser.Options{}, fmt.Errorf("load language file: %w", err)
		}
		providers = append(providers, lang)
	}

	return nameparser.Options{
		Languages:           providers,
		Whitespace:          c.Whitespace,
		NicknameDelimiters:  c.NicknameDelimiters,
		MaxSalutationIndex:  c.MaxSalutationIndex,
		MaxCombinedInitials: c.MaxCombinedInitials,
	}, nil
}
