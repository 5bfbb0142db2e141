// Package normalize cleans a raw name string before it is split into words.
//
// Normalization composes the text to NFC, maps the many code points that
// look like an apostrophe to U+0027, turns every run of configured
// whitespace characters into a single space and trims the result.
package normalize

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultWhitespace is the set of characters treated as word separators.
const DefaultWhitespace = " \r\n\t"

// apostrophes lists characters used in place of the ASCII apostrophe.
var apostrophes = map[rune]bool{
	'\u0060': true, // grave accent
	'\u00B4': true, // acute accent
	'\u02B9': true, // modifier letter prime
	'\u02BB': true, // modifier letter turned comma
	'\u02BC': true, // modifier letter apostrophe
	'\u02BD': true, // modifier letter reversed comma
	'\u02BE': true, // modifier letter right half ring
	'\u02BF': true, // modifier letter left half ring
	'\u02C8': true, // modifier letter vertical line
	'\u02CA': true, // modifier letter acute accent
	'\u0374': true, // greek numeral sign
	'\u0384': true, // greek tonos
	'\u055A': true, // armenian apostrophe
	'\u1FBD': true, // greek koronis
	'\u1FBF': true, // greek psili
	'\u2018': true, // left single quotation mark
	'\u2019': true, // right single quotation mark
	'\u201B': true, // single high-reversed-9 quotation mark
	'\u2032': true, // prime
	'\u2035': true, // reversed prime
	'\uA78B': true, // latin capital letter saltillo
	'\uA78C': true, // latin small letter saltillo
	'\uFF07': true, // fullwidth apostrophe
}

// IsApostrophe reports whether r is folded to U+0027.
func IsApostrophe(r rune) bool {
	return apostrophes[r]
}

// Normalizer is safe for concurrent use; each call builds its own
// transformer chain.
type Normalizer struct {
	whitespace string
}

// New returns a normalizer splitting on the given characters. An empty set
// falls back to DefaultWhitespace.
func New(whitespace string) *Normalizer {
	if whitespace == "" {
		whitespace = DefaultWhitespace
	}
	return &Normalizer{whitespace: whitespace}
}

// Whitespace returns the configured separator characters.
func (n *Normalizer) Whitespace() string {
	return n.whitespace
}

// Normalize returns the cleaned form of s.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	chain := transform.Chain(norm.NFC, runes.Map(foldApostrophe))
	if out, _, err := transform.String(chain, s); err == nil {
		s = out
	}
	return n.collapse(s)
}

// Fields normalizes s and splits it into words.
func (n *Normalizer) Fields(s string) []string {
	return strings.Fields(n.Normalize(s))
}

func foldApostrophe(r rune) rune {
	if apostrophes[r] {
		return '\''
	}
	return r
}

// collapse replaces each run of whitespace characters with one space and
// trims both ends.
func (n *Normalizer) collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if strings.ContainsRune(n.whitespace, r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
