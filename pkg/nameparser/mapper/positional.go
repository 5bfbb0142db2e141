package mapper

import "github.com/cognicore/nameparser/pkg/nameparser/part"

// Lastname claims the family name. By default it takes the last unclassified
// token of a sequence of at least two slots. In prefix-aware mode, used when
// the segment is known to hold the surname, it also works on a single slot
// and prefers the run of tokens right after the last lastname prefix, so
// "van der Berg Smit" keeps "Berg Smit" together.
type Lastname struct {
	prefixAware bool
}

// NewLastname creates a lastname mapper, prefix-aware for surname-first segments
func NewLastname(prefixAware bool) *Lastname {
	return &Lastname{prefixAware: prefixAware}
}

// Map implements Mapper.
func (m *Lastname) Map(seq part.Sequence) part.Sequence {
	if len(seq) == 0 || (!m.prefixAware && len(seq) < 2) {
		return seq
	}
	out := seq.Clone()
	if m.prefixAware && m.claimAfterPrefix(out) {
		return out
	}
	for i := len(out) - 1; i >= 0; i-- {
		if tok, ok := out.TokenAt(i); ok {
			out[i] = part.Claim(tok, part.Lastname)
			break
		}
	}
	return out
}

func (m *Lastname) claimAfterPrefix(out part.Sequence) bool {
	p := out.LastIndexOf(part.LastnamePrefix)
	if p < 0 {
		return false
	}
	claimed := false
	for i := p + 1; i < len(out); i++ {
		tok, ok := out.TokenAt(i)
		if !ok {
			break
		}
		out[i] = part.Claim(tok, part.Lastname)
		claimed = true
	}
	return claimed
}

// Firstname claims the first unclassified token. A lone token is always a
// first name.
type Firstname struct{}

// NewFirstname creates a firstname mapper
func NewFirstname() *Firstname { return &Firstname{} }

// Map implements Mapper.
func (m *Firstname) Map(seq part.Sequence) part.Sequence {
	out := seq.Clone()
	for i := range out {
		if tok, ok := out.TokenAt(i); ok {
			out[i] = part.Claim(tok, part.Firstname)
			break
		}
	}
	return out
}

// Middlename claims the unclassified tokens after the first name, up to the
// lastname. The final slot is reserved for the lastname unless trailing is
// set, which is the case when the lastname lives in another segment.
type Middlename struct {
	trailing bool
}

// NewMiddlename creates a middlename mapper; trailing also claims the last slot
func NewMiddlename(trailing bool) *Middlename {
	return &Middlename{trailing: trailing}
}

// Map implements Mapper.
func (m *Middlename) Map(seq part.Sequence) part.Sequence {
	minSlots, end := 3, len(seq)-1
	if m.trailing {
		minSlots, end = 2, len(seq)
	}
	if len(seq) < minSlots {
		return seq
	}
	first := seq.IndexOf(part.Firstname)
	if first < 0 {
		return seq
	}
	out := seq.Clone()
	for i := first + 1; i < end; i++ {
		if out.Is(i, part.Lastname) {
			break
		}
		if tok, ok := out.TokenAt(i); ok {
			out[i] = part.Claim(tok, part.Middlename)
		}
	}
	return out
}
