package part

// Sequence is the ordered slot list a mapper pipeline works on. Its length
// never changes while mappers run.
type Sequence []Element

// Tokens builds an unclassified sequence from words, numbering positions
// from offset.
func Tokens(words []string, offset int) Sequence {
	seq := make(Sequence, len(words))
	for i, w := range words {
		seq[i] = Token{Value: w, Position: offset + i}
	}
	return seq
}

// Clone returns a shallow copy so a mapper can replace slots without
// touching its input.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// TokenAt returns the slot at i if it is still unclassified.
func (s Sequence) TokenAt(i int) (Token, bool) {
	if i < 0 || i >= len(s) {
		return Token{}, false
	}
	t, ok := s[i].(Token)
	return t, ok
}

// PartAt returns the slot at i if it has been classified.
func (s Sequence) PartAt(i int) (Part, bool) {
	if i < 0 || i >= len(s) {
		return Part{}, false
	}
	p, ok := s[i].(Part)
	return p, ok
}

// Is reports whether the slot at i is a part of category c.
func (s Sequence) Is(i int, c Category) bool {
	p, ok := s.PartAt(i)
	return ok && p.Category == c
}

// IndexOf returns the first slot classified as c, or -1.
func (s Sequence) IndexOf(c Category) int {
	for i := range s {
		if s.Is(i, c) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the last slot classified as c, or -1.
func (s Sequence) LastIndexOf(c Category) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s.Is(i, c) {
			return i
		}
	}
	return -1
}

// Parts returns the classified slots in order.
func (s Sequence) Parts() []Part {
	parts := make([]Part, 0, len(s))
	for _, e := range s {
		if p, ok := e.(Part); ok {
			parts = append(parts, p)
		}
	}
	return parts
}

// Unclassified counts the slots still holding a raw token.
func (s Sequence) Unclassified() int {
	n := 0
	for _, e := range s {
		if _, ok := e.(Token); ok {
			n++
		}
	}
	return n
}
