package mapper

import (
	"sort"
	"strings"

	"github.com/cognicore/nameparser/pkg/nameparser/part"
)

// DefaultNicknameDelimiters maps each opening wrapper to its closing one.
var DefaultNicknameDelimiters = map[string]string{
	"[": "]",
	"{": "}",
	"(": ")",
	"<": ">",
	`"`: `"`,
	"“": "”",
	"'": "'",
}

// Nickname claims wrapped words such as (Jim) or "Bud" anywhere in the
// sequence. A wrapper opened on one token may close on a later one; every
// token in between is part of the nickname.
type Nickname struct {
	delimiters map[string]string
	openers    []string
}

// NewNickname uses DefaultNicknameDelimiters when delimiters is empty.
func NewNickname(delimiters map[string]string) *Nickname {
	if len(delimiters) == 0 {
		delimiters = DefaultNicknameDelimiters
	}
	openers := make([]string, 0, len(delimiters))
	for open := range delimiters {
		if open != "" && delimiters[open] != "" {
			openers = append(openers, open)
		}
	}
	sort.Slice(openers, func(i, j int) bool {
		if len(openers[i]) != len(openers[j]) {
			return len(openers[i]) > len(openers[j])
		}
		return openers[i] < openers[j]
	})
	return &Nickname{delimiters: delimiters, openers: openers}
}

// Map implements Mapper.
func (m *Nickname) Map(seq part.Sequence) part.Sequence {
	out := seq.Clone()
	closing := ""
	for i := range out {
		tok, ok := out.TokenAt(i)
		if !ok {
			continue
		}
		value := tok.Value
		if closing == "" {
			opener := m.opener(value)
			if opener == "" {
				continue
			}
			closing = m.delimiters[opener]
			value = value[len(opener):]
			// a lone wrapper such as `"` opens and closes on the same token
			if value == "" && closing == opener {
				closing = ""
			}
		}
		if closing != "" && strings.HasSuffix(value, closing) {
			value = strings.TrimSuffix(value, closing)
			closing = ""
		}
		value = strings.Trim(value, `"'`)
		out[i] = part.Claim(part.Token{Value: value, Position: tok.Position}, part.Nickname)
	}
	return out
}

func (m *Nickname) opener(value string) string {
	for _, o := range m.openers {
		if strings.HasPrefix(value, o) {
			return o
		}
	}
	return ""
}
