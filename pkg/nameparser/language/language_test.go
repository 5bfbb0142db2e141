package language

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/nameparser/pkg/nameparser/internalerr"
)

func TestTableSortsLongestFirst(t *testing.T) {
	table := NewTable(map[string]string{
		"van":        "van",
		"van der":    "van der",
		"vander":     "vander",
		"von und zu": "von und zu",
		"d":          "d",
	})

	var keys []string
	for _, e := range table.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"von und zu", "van der", "vander", "van", "d"}, keys)
}

func TestTableLookup(t *testing.T) {
	table := NewTable(map[string]string{
		"mr":  "Mr.",
		"jr.": "Jr.",
	})

	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"Mr", "Mr.", true},
		{"MR.", "Mr.", true},
		{"Jr.", "Jr.", true},
		{"jr", "", false},
		{"Mrs", "", false},
		{".", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := table.Lookup(tt.word)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNilTableMisses(t *testing.T) {
	var table *Table
	assert.Equal(t, 0, table.Len())
	assert.Nil(t, table.Entries())
	assert.False(t, table.Has("anything"))
}

func TestMergeLaterProviderWins(t *testing.T) {
	first := &Language{SalutationTable: map[string]string{"dr": "Dr.", "herr": "Herr"}}
	second := &Language{SalutationTable: map[string]string{"dr": "Doktor"}}

	tables := Merge(first, second)

	got, ok := tables.Salutations.Lookup("dr")
	require.True(t, ok)
	assert.Equal(t, "Doktor", got)
	assert.True(t, tables.Salutations.Has("herr"))
	assert.Equal(t, 2, tables.Salutations.Len())
}

func TestMergeWithoutProviders(t *testing.T) {
	tables := Merge()
	assert.Equal(t, 0, tables.Titles.Len())
	assert.False(t, tables.Companies.Has("gmbh"))
}

func TestTitlesUnionAcademicAndProfessional(t *testing.T) {
	lang := &Language{
		AcademicTitles:     map[string]string{"dr.": "Dr."},
		ProfessionalTitles: map[string]string{"ra": "RA"},
	}
	assert.Equal(t, map[string]string{"dr.": "Dr.", "ra": "RA"}, lang.Titles())
}

func TestBuiltinLanguages(t *testing.T) {
	de, err := Builtin("de")
	require.NoError(t, err)
	assert.Equal(t, "german", de.Name)
	assert.Equal(t, "Herr", de.Salutations()["herr"])
	assert.Equal(t, "von und zu", de.LastnamePrefixes()["von und zu"])
	assert.Equal(t, "Freiherr", de.Extensions()["freiherr"])
	assert.Equal(t, "Dr. rer. nat.", de.Titles()["dr. rer. nat."])
	assert.Equal(t, "Dipl.-Ing.", de.Titles()["dipl.-ing."])
	assert.Equal(t, "GmbH", de.Companies()["gmbh"])

	en := English()
	assert.Equal(t, "Mr.", en.Salutations()["mr"])
	assert.Equal(t, "PhD", en.Suffixes()["phd"])

	assert.Equal(t, []string{"english", "german"}, BuiltinNames())
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("klingon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrUnknownLanguage))
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dutch.yaml")
	content := `name: dutch
salutations:
  Dhr: Dhr.
lastname_prefixes:
  "van 't": "van 't"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lang, err := LoadFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "dutch", lang.Name)
	assert.Equal(t, "Dhr.", lang.Salutations()["dhr"])
	assert.Equal(t, "van 't", lang.LastnamePrefixes()["van 't"])
	assert.Empty(t, lang.Companies())
}

func TestLoadFromYAMLErrors(t *testing.T) {
	_, err := LoadFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("salutations: [unclosed"), 0o644))
	_, err = LoadFromYAML(path)
	assert.Error(t, err)
}
