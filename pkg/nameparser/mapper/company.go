package mapper

import (
	"strings"

	"github.com/cognicore/nameparser/pkg/nameparser/language"
	"github.com/cognicore/nameparser/pkg/nameparser/part"
)

// Company detects organization names by a known marker ("GmbH", " Inc",
// "Stiftung") occurring anywhere in the text. It works on the whole input
// string rather than on words, so Map only acts on a one-slot sequence.
type Company struct {
	table *language.Table
}

// NewCompany creates a company detector over the given marker table
func NewCompany(table *language.Table) *Company {
	return &Company{table: table}
}

// Marker returns the first table entry found in name, longest entries first.
func (m *Company) Marker(name string) (language.Entry, bool) {
	for _, e := range m.table.Entries() {
		if containsNonEmpty(name, e.Key) || containsNonEmpty(name, e.Canonical) {
			return e, true
		}
	}
	return language.Entry{}, false
}

// Match reports whether name looks like an organization.
func (m *Company) Match(name string) bool {
	_, ok := m.Marker(name)
	return ok
}

// Map implements Mapper.
func (m *Company) Map(seq part.Sequence) part.Sequence {
	if len(seq) != 1 {
		return seq
	}
	tok, ok := seq.TokenAt(0)
	if !ok || !m.Match(tok.Value) {
		return seq
	}
	out := seq.Clone()
	out[0] = part.ClaimAs(tok, part.Company, tok.Value)
	return out
}

func containsNonEmpty(s, sub string) bool {
	return strings.TrimSpace(sub) != "" && strings.Contains(s, sub)
}
