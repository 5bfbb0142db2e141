package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/nameparser/pkg/nameparser/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Languages) != 1 || cfg.Languages[0] != "german" {
		t.Errorf("Expected [german], got %v", cfg.Languages)
	}
	if cfg.Whitespace != " \r\n\t" {
		t.Errorf("Unexpected whitespace %q", cfg.Whitespace)
	}
	if cfg.MaxSalutationIndex != 0 {
		t.Errorf("Expected salutation index 0, got %d", cfg.MaxSalutationIndex)
	}
	if cfg.MaxCombinedInitials != 2 {
		t.Errorf("Expected 2 combined initials, got %d", cfg.MaxCombinedInitials)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeFile(t, "nameparser.yaml", `languages:
  - english
  - german
max_salutation_index: 3
nickname_delimiters:
  "(": ")"
server:
  addr: ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if len(cfg.Languages) != 2 || cfg.Languages[0] != "english" {
		t.Errorf("Unexpected languages %v", cfg.Languages)
	}
	if cfg.MaxSalutationIndex != 3 {
		t.Errorf("Expected salutation index 3, got %d", cfg.MaxSalutationIndex)
	}
	if cfg.NicknameDelimiters["("] != ")" {
		t.Errorf("Unexpected delimiters %v", cfg.NicknameDelimiters)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Expected :9090, got %s", cfg.Server.Addr)
	}
	// untouched keys keep their defaults
	if cfg.MaxCombinedInitials != 2 {
		t.Errorf("Expected default combined initials, got %d", cfg.MaxCombinedInitials)
	}
	if cfg.Server.CacheSize != 1024 {
		t.Errorf("Expected default cache size, got %d", cfg.Server.CacheSize)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"negative index":    "max_salutation_index: -1\n",
		"negative initials": "max_combined_initials: -2\n",
		"negative cache":    "server:\n  cache_size: -5\n",
		"empty delimiter":   "nickname_delimiters:\n  \"(\": \"\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.yaml", content))
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/nameparser.yaml"); err == nil {
		t.Error("Should error on nonexistent file")
	}
	if _, err := Load(writeFile(t, "broken.yaml", "languages: [german")); err == nil {
		t.Error("Should error on malformed YAML")
	}
}
