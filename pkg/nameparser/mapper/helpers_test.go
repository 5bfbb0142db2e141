package mapper

import (
	"strings"

	"github.com/cognicore/nameparser/pkg/nameparser/part"
)

// words builds an unclassified sequence from a space-separated string.
func words(s string) part.Sequence {
	return part.Tokens(strings.Fields(s), 0)
}

// render shows each slot as "category:canonical", or the raw token value if
// it is still unclassified.
func render(seq part.Sequence) []string {
	out := make([]string, len(seq))
	for i, e := range seq {
		if p, ok := e.(part.Part); ok {
			out[i] = p.Category.String() + ":" + p.Display()
			continue
		}
		out[i] = e.Raw()
	}
	return out
}

// with classifies slot i of seq in place.
func with(seq part.Sequence, i int, c part.Category) part.Sequence {
	tok, _ := seq.TokenAt(i)
	seq[i] = part.Claim(tok, c)
	return seq
}
