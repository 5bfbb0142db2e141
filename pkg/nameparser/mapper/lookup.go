package mapper

import (
	"github.com/cognicore/nameparser/pkg/nameparser/language"
	"github.com/cognicore/nameparser/pkg/nameparser/part"
)

// Extension claims every unclassified token equal to a canonical form of
// the extension table, such as "Freiherr" or "Graf". The match is exact:
// several extensions ("Brand", "Earl") are also common surnames, so a
// lower-case "brand" stays a name.
type Extension struct {
	canonical map[string]struct{}
}

// NewExtension creates an extension mapper from the canonical forms of table
func NewExtension(table *language.Table) *Extension {
	canonical := make(map[string]struct{}, table.Len())
	for _, e := range table.Entries() {
		canonical[e.Canonical] = struct{}{}
	}
	return &Extension{canonical: canonical}
}

// Map implements Mapper.
func (m *Extension) Map(seq part.Sequence) part.Sequence {
	out := seq.Clone()
	for i := range out {
		tok, ok := out.TokenAt(i)
		if !ok {
			continue
		}
		if _, ok := m.canonical[tok.Value]; ok {
			out[i] = part.ClaimAs(tok, part.Extension, tok.Value)
		}
	}
	return out
}

// Salutation claims salutations ("Herr", "Mrs.") near the start of a
// segment. Only the first maxIndex slots are inspected; a maxIndex of zero
// means the first half of the sequence.
type Salutation struct {
	table    *language.Table
	maxIndex int
}

// NewSalutation creates a salutation mapper limited to the first maxIndex slots
func NewSalutation(table *language.Table, maxIndex int) *Salutation {
	if maxIndex < 0 {
		maxIndex = 0
	}
	return &Salutation{table: table, maxIndex: maxIndex}
}

// Map implements Mapper.
func (m *Salutation) Map(seq part.Sequence) part.Sequence {
	limit := m.maxIndex
	if limit == 0 {
		limit = len(seq) / 2
	}
	limit = min(limit, len(seq))

	out := seq.Clone()
	for i := 0; i < limit; i++ {
		tok, ok := out.TokenAt(i)
		if !ok {
			continue
		}
		if canonical, ok := m.table.Lookup(tok.Value); ok {
			out[i] = part.ClaimAs(tok, part.Salutation, canonical)
		}
	}
	return out
}

// Suffix claims suffixes ("Jr.", "III", "PhD") scanning backwards from the
// end of a segment. The scan stops at the first slot that is not an
// unclassified suffix, and never reaches below reservedParts so that enough
// slots remain for the name itself. With matchSinglePart a one-slot segment
// is always eligible.
type Suffix struct {
	table           *language.Table
	matchSinglePart bool
	reservedParts   int
}

// NewSuffix creates a suffix mapper that keeps reservedParts leading slots free
func NewSuffix(table *language.Table, matchSinglePart bool, reservedParts int) *Suffix {
	return &Suffix{table: table, matchSinglePart: matchSinglePart, reservedParts: max(reservedParts, 0)}
}

// Map implements Mapper.
func (m *Suffix) Map(seq part.Sequence) part.Sequence {
	out := seq.Clone()
	if m.matchSinglePart && len(out) == 1 {
		m.claim(out, 0)
		return out
	}
	for i := len(out) - 1; i >= m.reservedParts && i >= 0; i-- {
		if !m.claim(out, i) {
			break
		}
	}
	return out
}

func (m *Suffix) claim(out part.Sequence, i int) bool {
	tok, ok := out.TokenAt(i)
	if !ok {
		return false
	}
	canonical, ok := m.table.Lookup(tok.Value)
	if !ok {
		return false
	}
	out[i] = part.ClaimAs(tok, part.Suffix, canonical)
	return true
}
