package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := New("")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"trim", "  Peter Pan \n", "Peter Pan"},
		{"collapse", "Peter \t\r\n  Pan", "Peter Pan"},
		{"typographic apostrophe", "Sean O’Neil", "Sean O'Neil"},
		{"grave accent", "d`Artagnan", "d'Artagnan"},
		{"fullwidth apostrophe", "O＇Brien", "O'Brien"},
		{"modifier letter", "Hawaiʻi", "Hawai'i"},
		{"decomposed umlaut", "Mu\u0308ller", "M\u00fcller"},
		{"invalid utf8", "Pet\xffer", "Peter"},
		{"only whitespace", " \t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalizeCustomWhitespace(t *testing.T) {
	n := New(" _")
	assert.Equal(t, " _", n.Whitespace())
	assert.Equal(t, "Peter Pan", n.Normalize("__Peter_ _Pan_"))
	// a tab is an ordinary character here
	assert.Equal(t, "Peter\tPan", n.Normalize("Peter\tPan"))
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"Frank", "van", "Delft"}, New("").Fields(" Frank  van\tDelft "))
	assert.Empty(t, New("").Fields(""))
}

func TestIsApostrophe(t *testing.T) {
	assert.True(t, IsApostrophe('’'))
	assert.True(t, IsApostrophe('ꞌ'))
	assert.False(t, IsApostrophe('\''))
	assert.False(t, IsApostrophe('"'))
}
