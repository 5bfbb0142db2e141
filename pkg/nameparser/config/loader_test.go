package config

import (
	"errors"
	"testing"

	"github.com/cognicore/nameparser/pkg/nameparser/internalerr"
)

func TestLoaderAllEmpty(t *testing.T) {
	loader := Loader{}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}
	if comp.Parser == nil {
		t.Fatal("Should have parser")
	}
	if comp.Config.Store.Path != "" {
		t.Errorf("Store should be disabled, got %q", comp.Config.Store.Path)
	}

	n := comp.Parser.Parse("Herr Peter Pan")
	if n.Salutation() != "Herr" {
		t.Errorf("Default parser should know German salutations, got %q", n.Salutation())
	}
}

func TestLoaderNonExistentConfig(t *testing.T) {
	loader := Loader{ConfigPath: "/nonexistent/nameparser.yaml"}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestLoaderUnknownLanguage(t *testing.T) {
	loader := Loader{Languages: []string{"klingon"}}

	_, err := loader.Load()
	if !errors.Is(err, internalerr.ErrUnknownLanguage) {
		t.Errorf("Expected ErrUnknownLanguage, got %v", err)
	}
}

func TestLoaderOverrides(t *testing.T) {
	path := writeFile(t, "nameparser.yaml", "languages: [german]\nstore:\n  path: file.db\n")
	loader := Loader{
		ConfigPath: path,
		Languages:  []string{"en"},
		StorePath:  "override.db",
	}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if comp.Config.Store.Path != "override.db" {
		t.Errorf("Expected store override, got %q", comp.Config.Store.Path)
	}

	n := comp.Parser.Parse("Mr John Smith")
	if n.Salutation() != "Mr." {
		t.Errorf("Expected English salutation, got %q", n.Salutation())
	}
}

func TestLoaderLanguageFiles(t *testing.T) {
	langPath := writeFile(t, "dutch.yaml", `name: dutch
salutations:
  dhr: Dhr.
lastname_prefixes:
  "van 't": "van 't"
`)
	cfgPath := writeFile(t, "nameparser.yaml", "languages: []\nlanguage_files:\n  - "+langPath+"\n")

	comp, err := (&Loader{ConfigPath: cfgPath}).Load()
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	n := comp.Parser.Parse("Dhr Jan van 't Hek")
	if n.Salutation() != "Dhr." {
		t.Errorf("Expected Dhr., got %q", n.Salutation())
	}
	if n.LastnamePrefix() != "van 't" {
		t.Errorf("Expected prefix \"van 't\", got %q", n.LastnamePrefix())
	}
	if n.LastnameOnly() != "Hek" {
		t.Errorf("Expected Hek, got %q", n.LastnameOnly())
	}
}

func TestLoaderMissingLanguageFile(t *testing.T) {
	cfgPath := writeFile(t, "nameparser.yaml", "language_files: [/nonexistent/lang.yaml]\n")

	if _, err := (&Loader{ConfigPath: cfgPath}).Load(); err == nil {
		t.Error("Should error on missing language file")
	}
}
