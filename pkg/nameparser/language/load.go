package language

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/nameparser/pkg/nameparser/internalerr"
)

//go:embed data/*.yaml
var builtinFS embed.FS

var builtinFiles = map[string]string{
	"german":  "data/german.yaml",
	"english": "data/english.yaml",
}

var aliases = map[string]string{
	"de": "german",
	"en": "english",
}

var (
	builtinOnce  sync.Once
	builtinLangs map[string]*Language
	builtinErr   error
)

// Parse decodes a language definition from YAML.
//
// Expected format:
//
//	name: german
//	salutations:
//	  herr: Herr
//	lastname_prefixes:
//	  van der: van der
//	academic_titles:
//	  dr. med.: Dr. med.
//
// Keys are lower-cased; missing tables are treated as empty.
func Parse(data []byte) (*Language, error) {
	var lang Language
	if err := yaml.Unmarshal(data, &lang); err != nil {
		return nil, err
	}
	lang.SalutationTable = lowerKeys(lang.SalutationTable)
	lang.SuffixTable = lowerKeys(lang.SuffixTable)
	lang.PrefixTable = lowerKeys(lang.PrefixTable)
	lang.ExtensionTable = lowerKeys(lang.ExtensionTable)
	lang.AcademicTitles = lowerKeys(lang.AcademicTitles)
	lang.ProfessionalTitles = lowerKeys(lang.ProfessionalTitles)
	lang.CompanyTable = lowerKeys(lang.CompanyTable)
	return &lang, nil
}

// LoadFromYAML reads a language definition file.
func LoadFromYAML(path string) (*Language, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lang, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if lang.Name == "" {
		lang.Name = path
	}
	return lang, nil
}

// Builtin returns one of the bundled languages by name ("german", "english")
// or ISO code ("de", "en").
func Builtin(name string) (*Language, error) {
	builtinOnce.Do(func() {
		builtinLangs, builtinErr = loadBuiltins()
	})
	if builtinErr != nil {
		return nil, builtinErr
	}

	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	lang, ok := builtinLangs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownLanguage, name)
	}
	return lang, nil
}

// German returns the bundled German tables.
func German() *Language {
	lang, err := Builtin("german")
	if err != nil {
		panic(err)
	}
	return lang
}

// English returns the bundled English tables.
func English() *Language {
	lang, err := Builtin("english")
	if err != nil {
		panic(err)
	}
	return lang
}

// BuiltinNames lists the bundled languages in alphabetical order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinFiles))
	for name := range builtinFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func loadBuiltins() (map[string]*Language, error) {
	langs := make(map[string]*Language, len(builtinFiles))
	for name, file := range builtinFiles {
		data, err := builtinFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read builtin %s: %w", name, err)
		}
		lang, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin %s: %w", name, err)
		}
		lang.Name = name
		langs[name] = lang
	}
	return langs, nil
}

func lowerKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}
