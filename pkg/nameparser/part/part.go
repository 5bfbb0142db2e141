// Package part models the slots a name is classified into: raw tokens that
// no mapper has claimed yet, and parts that carry a semantic category.
package part

import (
	"fmt"
	"strings"
)

// Category is the semantic role of a classified part.
type Category int

const (
	Salutation Category = iota + 1
	Title
	Firstname
	Middlename
	Initial
	Nickname
	LastnamePrefix
	Lastname
	Extension
	Suffix
	Company
)

// Categories lists every category in display order.
var Categories = []Category{
	Salutation,
	Title,
	Firstname,
	Middlename,
	Initial,
	Nickname,
	LastnamePrefix,
	Lastname,
	Extension,
	Suffix,
	Company,
}

var categoryNames = map[Category]string{
	Salutation:     "salutation",
	Title:          "title",
	Firstname:      "firstname",
	Middlename:     "middlename",
	Initial:        "initial",
	Nickname:       "nickname",
	LastnamePrefix: "lastnameprefix",
	Lastname:       "lastname",
	Extension:      "extension",
	Suffix:         "suffix",
	Company:        "company",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory resolves a category from its String form (case-insensitive).
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// MarshalText renders the category name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a category name.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// IsGivenName reports whether the category belongs to the given-name group.
func (c Category) IsGivenName() bool {
	return c == Firstname || c == Middlename || c == Initial
}

// IsLastname reports whether the category belongs to the lastname group
// (the lastname itself and its prefix).
func (c Category) IsLastname() bool {
	return c == Lastname || c == LastnamePrefix
}

// Element is one slot of a Sequence: either a Token or a Part.
type Element interface {
	// Raw is the word as it appeared in the input.
	Raw() string
	// Pos is the word index in the normalized input.
	Pos() int
	element()
}

// Token is a word no mapper has classified yet.
type Token struct {
	Value    string
	Position int
}

func (t Token) Raw() string { return t.Value }
func (t Token) Pos() int    { return t.Position }
func (Token) element()      {}

// Part is a classified word.
type Part struct {
	Category  Category `json:"category" yaml:"category"`
	Value     string   `json:"value" yaml:"value"`
	Canonical string   `json:"canonical" yaml:"canonical"`
	Position  int      `json:"position" yaml:"position"`
}

func (p Part) Raw() string { return p.Value }
func (p Part) Pos() int    { return p.Position }
func (Part) element()      {}

// Display returns the canonical form, falling back to the raw value.
func (p Part) Display() string {
	if p.Canonical != "" {
		return p.Canonical
	}
	return p.Value
}

// New classifies a raw value, deriving the canonical form from the
// category's canonicalization rule.
func New(c Category, value string) Part {
	return Part{Category: c, Value: value, Canonical: canonicalize(c, value)}
}

// NewWithCanonical classifies a raw value with a canonical form taken from a
// lookup table.
func NewWithCanonical(c Category, value, canonical string) Part {
	return Part{Category: c, Value: value, Canonical: canonical}
}

// Claim replaces a token with a part of the given category, keeping its
// position.
func Claim(t Token, c Category) Part {
	p := New(c, t.Value)
	p.Position = t.Position
	return p
}

// ClaimAs is Claim with a canonical form supplied by a lookup table.
func ClaimAs(t Token, c Category, canonical string) Part {
	p := NewWithCanonical(c, t.Value, canonical)
	p.Position = t.Position
	return p
}
