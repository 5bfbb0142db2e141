package language

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Entry is one row of a lookup table.
type Entry struct {
	Key       string // normalized (lower-case) form
	Canonical string // display form
}

// Words splits the canonical form into its space-separated fragments.
func (e Entry) Words() []string {
	return strings.Fields(e.Canonical)
}

// Table is a read-only lookup table. Entries are kept in descending order of
// word count, then key length, so longer and more specific phrases are tried
// before the shorter ones they contain.
type Table struct {
	entries []Entry
	index   map[string]string
}

// NewTable sorts m into a Table. Keys are lower-cased; on a collision after
// lower-casing the lexically larger original key wins so the result does not
// depend on map iteration order.
func NewTable(m map[string]string) *Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	index := make(map[string]string, len(m))
	for _, k := range keys {
		index[strings.ToLower(k)] = m[k]
	}

	entries := make([]Entry, 0, len(index))
	for k, v := range index {
		entries = append(entries, Entry{Key: k, Canonical: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})

	return &Table{entries: entries, index: index}
}

func less(a, b Entry) bool {
	aw, bw := wordCount(a.Canonical), wordCount(b.Canonical)
	if aw != bw {
		return aw > bw
	}
	al, bl := utf8.RuneCountInString(a.Key), utf8.RuneCountInString(b.Key)
	if al != bl {
		return al > bl
	}
	return a.Key < b.Key
}

func wordCount(s string) int {
	n := len(strings.Fields(s))
	if n == 0 {
		return 1
	}
	return n
}

// Entries returns the sorted entries. The slice must not be modified.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Lookup returns the canonical form for a single word. It tries the
// lower-cased word first, then the lower-cased word without dots, so "Mr."
// finds an "mr" key and "Jr." finds a "jr." key.
func (t *Table) Lookup(word string) (string, bool) {
	if t == nil || word == "" {
		return "", false
	}
	key := strings.ToLower(word)
	if v, ok := t.index[key]; ok {
		return v, true
	}
	stripped := strings.ReplaceAll(key, ".", "")
	if stripped == key || stripped == "" {
		return "", false
	}
	v, ok := t.index[stripped]
	return v, ok
}

// Has reports whether word has an entry.
func (t *Table) Has(word string) bool {
	_, ok := t.Lookup(word)
	return ok
}
