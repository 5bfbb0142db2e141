package part

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// canonicalizers is the static dispatch table from category to the rule
// that derives its canonical form. Categories missing here keep the raw
// value.
var canonicalizers = map[Category]func(string) string{
	Firstname:  Camelcase,
	Middlename: Camelcase,
	Lastname:   Camelcase,
	Nickname:   Camelcase,
	Initial:    strings.ToUpper,
}

func canonicalize(c Category, value string) string {
	if fn, ok := canonicalizers[c]; ok {
		return fn(value)
	}
	return value
}

// Camelcase title-cases every run of letters and digits in word, unless the
// word already mixes upper and lower case ("McDonald" stays as it is).
func Camelcase(word string) string {
	if isMixedCase(word) {
		return word
	}

	caser := cases.Title(language.Und)
	var b strings.Builder
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(caser.String(run.String()))
			run.Reset()
		}
	}
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			run.WriteRune(r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return b.String()
}

func isMixedCase(word string) bool {
	var upper, lower bool
	for _, r := range word {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
		if upper && lower {
			return true
		}
	}
	return false
}
