package mapper

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/nameparser/pkg/nameparser/part"
)

// Initial claims abbreviated given names: a single letter ("J"), a letter
// followed by a dot ("J."), or an upper-case run of up to maxCombined
// letters ("JM") standing for several initials at once.
//
// The last slot is left alone unless matchLastPart is set; in a plain
// "Firstname Lastname" ordering it belongs to the lastname.
type Initial struct {
	maxCombined   int
	matchLastPart bool
}

// NewInitial creates an initial mapper reading upper-case runs of up to
// maxCombined letters as several initials
func NewInitial(maxCombined int, matchLastPart bool) *Initial {
	return &Initial{maxCombined: maxCombined, matchLastPart: matchLastPart}
}

// Map implements Mapper.
func (m *Initial) Map(seq part.Sequence) part.Sequence {
	out := seq.Clone()
	last := len(out) - 1
	for i := range out {
		if i == last && !m.matchLastPart {
			break
		}
		tok, ok := out.TokenAt(i)
		if !ok {
			continue
		}
		switch {
		case IsInitial(tok.Value):
			out[i] = part.Claim(tok, part.Initial)
		case m.isCombined(tok.Value):
			out[i] = part.ClaimAs(tok, part.Initial, spaceLetters(tok.Value))
		}
	}
	return out
}

// IsInitial reports whether word is a single letter, optionally followed by
// a dot.
func IsInitial(word string) bool {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 || !unicode.IsLetter(r) {
		return false
	}
	rest := word[size:]
	return rest == "" || rest == "."
}

func (m *Initial) isCombined(word string) bool {
	if m.maxCombined < 2 || strings.ToUpper(word) != word {
		return false
	}
	letters := strings.ReplaceAll(word, ".", "")
	n := 0
	for _, r := range letters {
		if !unicode.IsUpper(r) {
			return false
		}
		n++
	}
	return n >= 2 && n <= m.maxCombined
}

// spaceLetters turns "JM" or "J.M." into "J M".
func spaceLetters(word string) string {
	var b strings.Builder
	for _, r := range word {
		if r == '.' {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
