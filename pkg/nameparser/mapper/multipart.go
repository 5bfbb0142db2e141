package mapper

import (
	"github.com/cognicore/nameparser/pkg/nameparser/language"
	"github.com/cognicore/nameparser/pkg/nameparser/part"
)

// Multipart recognizes phrases made of several words, such as "Dr. rer.
// nat." or "von und zu", against a table of known phrases.
//
// Phrases are tried longest first. For each phrase, every word is looked up
// independently as the first unclassified slot equal to it, so the words do
// not need to be adjacent or in order. The first phrase whose words are all
// found is claimed and the pass ends: one phrase per invocation.
type Multipart struct {
	category part.Category
	phrases  [][]string
}

// NewMultipart prepares the phrases of table for the given category.
func NewMultipart(table *language.Table, category part.Category) *Multipart {
	entries := table.Entries()
	phrases := make([][]string, 0, len(entries))
	for _, e := range entries {
		if words := e.Words(); len(words) > 0 {
			phrases = append(phrases, words)
		}
	}
	return &Multipart{category: category, phrases: phrases}
}

// Category is the category assigned to matched words.
func (m *Multipart) Category() part.Category {
	return m.category
}

// Map implements Mapper.
func (m *Multipart) Map(seq part.Sequence) part.Sequence {
	for _, words := range m.phrases {
		positions, ok := locate(seq, words)
		if !ok {
			continue
		}
		if out, ok := claimAll(seq, positions, m.category); ok {
			return out
		}
	}
	return seq
}

// locate finds, for each word, the lowest-index unclassified slot holding it.
func locate(seq part.Sequence, words []string) ([]int, bool) {
	positions := make([]int, 0, len(words))
	for _, w := range words {
		idx := indexOfToken(seq, w)
		if idx < 0 {
			return nil, false
		}
		positions = append(positions, idx)
	}
	return positions, true
}

func indexOfToken(seq part.Sequence, value string) int {
	for i, e := range seq {
		if tok, ok := e.(part.Token); ok && tok.Value == value {
			return i
		}
	}
	return -1
}

// claimAll replaces every position with a part, or reports false if one of
// them is already claimed (a word located twice for a repeated fragment).
func claimAll(seq part.Sequence, positions []int, category part.Category) (part.Sequence, bool) {
	out := seq.Clone()
	for _, pos := range positions {
		tok, ok := out.TokenAt(pos)
		if !ok {
			return nil, false
		}
		out[pos] = part.Claim(tok, category)
	}
	return out, true
}
