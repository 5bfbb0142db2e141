package nameparser

import (
	"encoding/json"
	"strings"

	"github.com/cognicore/nameparser/pkg/nameparser/part"
)

// Name is the result of a parse: the classified words in input order.
// Accessors join the canonical forms of every matching part with a space.
type Name struct {
	elements part.Sequence
}

func newName(seq part.Sequence) *Name {
	return &Name{elements: seq}
}

// NewName builds a Name from parts, for callers that classify words
// themselves.
func NewName(parts ...part.Part) *Name {
	seq := make(part.Sequence, len(parts))
	for i, p := range parts {
		seq[i] = p
	}
	return newName(seq)
}

// Parts returns the classified parts in order.
func (n *Name) Parts() []part.Part {
	return n.elements.Parts()
}

// Elements returns every slot, including words left unclassified.
func (n *Name) Elements() part.Sequence {
	return n.elements.Clone()
}

// Unclassified returns the words no rule claimed.
func (n *Name) Unclassified() []string {
	var out []string
	for _, e := range n.elements {
		if t, ok := e.(part.Token); ok {
			out = append(out, t.Value)
		}
	}
	return out
}

func (n *Name) export(match func(part.Category) bool) string {
	var matched []string
	for _, p := range n.elements.Parts() {
		if match(p.Category) {
			matched = append(matched, p.Display())
		}
	}
	return strings.Join(matched, " ")
}

func (n *Name) exportCategory(c part.Category) string {
	return n.export(func(got part.Category) bool { return got == c })
}

// Salutation returns the salutation, such as "Herr" or "Mr."
func (n *Name) Salutation() string { return n.exportCategory(part.Salutation) }

// Title returns the academic and professional titles
func (n *Name) Title() string { return n.exportCategory(part.Title) }

// Firstname returns the first given name
func (n *Name) Firstname() string { return n.exportCategory(part.Firstname) }

// Middlename returns the middle names
func (n *Name) Middlename() string { return n.exportCategory(part.Middlename) }

// Initials returns the initials
func (n *Name) Initials() string { return n.exportCategory(part.Initial) }

// Nickname returns the nickname without its wrapper
func (n *Name) Nickname() string { return n.exportCategory(part.Nickname) }

// Extension returns the nobility extension, such as "Freiherr"
func (n *Name) Extension() string { return n.exportCategory(part.Extension) }

// LastnamePrefix returns the lastname prefix, such as "von"
func (n *Name) LastnamePrefix() string { return n.exportCategory(part.LastnamePrefix) }

// Suffix returns the suffixes, such as "Jr."
func (n *Name) Suffix() string { return n.exportCategory(part.Suffix) }

// Company returns the company name, or "" for a person
func (n *Name) Company() string { return n.exportCategory(part.Company) }

// LastnameOnly returns the lastname without its prefix.
func (n *Name) LastnameOnly() string { return n.exportCategory(part.Lastname) }

// Lastname returns the lastname including any prefix, e.g. "van Delft".
func (n *Name) Lastname() string {
	return n.export(part.Category.IsLastname)
}

// WrappedNickname returns the nickname in parentheses, or "" if there is
// none.
func (n *Name) WrappedNickname() string {
	if nick := n.Nickname(); nick != "" {
		return "(" + nick + ")"
	}
	return ""
}

// GivenName returns first name, middle names and initials in input order.
func (n *Name) GivenName() string {
	return n.export(part.Category.IsGivenName)
}

// FullName is the given name followed by the lastname with its prefix.
func (n *Name) FullName() string {
	return joinNonEmpty(" ", n.GivenName(), n.Lastname())
}

// CompleteName assembles a display line from titles, given names,
// extension and lastname, followed by the suffix after a comma.
func (n *Name) CompleteName() string {
	line := joinNonEmpty(" ",
		n.Title(),
		n.Firstname(),
		n.Middlename(),
		n.Initials(),
		n.Extension(),
		n.LastnamePrefix(),
		n.LastnameOnly(),
	)
	if suffix := n.Suffix(); suffix != "" {
		return joinNonEmpty(", ", line, suffix)
	}
	return line
}

// IsCompany reports whether the input was recognized as an organization.
func (n *Name) IsCompany() bool {
	return n.Company() != ""
}

// Field is one named, non-empty component of a Name.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Fields returns the non-empty components in display order. The nickname is
// wrapped in parentheses.
func (n *Name) Fields() []Field {
	candidates := []Field{
		{"salutation", n.Salutation()},
		{"title", n.Title()},
		{"firstname", n.Firstname()},
		{"nickname", n.WrappedNickname()},
		{"middlename", n.Middlename()},
		{"initials", n.Initials()},
		{"extension", n.Extension()},
		{"lastname", n.Lastname()},
		{"suffix", n.Suffix()},
		{"company", n.Company()},
	}
	fields := candidates[:0]
	for _, f := range candidates {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// String joins all fields with spaces.
func (n *Name) String() string {
	fields := n.Fields()
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = f.Value
	}
	return strings.Join(values, " ")
}

type nameDoc struct {
	Parts        []part.Part `json:"parts" yaml:"parts"`
	Fields       []Field     `json:"fields" yaml:"fields"`
	Unclassified []string    `json:"unclassified,omitempty" yaml:"unclassified,omitempty"`
	FullName     string      `json:"full_name" yaml:"full_name"`
	CompleteName string      `json:"complete_name" yaml:"complete_name"`
}

func (n *Name) doc() nameDoc {
	return nameDoc{
		Parts:        n.Parts(),
		Fields:       n.Fields(),
		Unclassified: n.Unclassified(),
		FullName:     n.FullName(),
		CompleteName: n.CompleteName(),
	}
}

// MarshalJSON renders the parts together with the derived fields.
func (n *Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.doc())
}

// MarshalYAML implements yaml.Marshaler.
func (n *Name) MarshalYAML() (any, error) {
	return n.doc(), nil
}

func joinNonEmpty(sep string, values ...string) string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
