// Package record turns parse results into storable records and back.
package record

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/nameparser/pkg/nameparser"
	"github.com/cognicore/nameparser/pkg/nameparser/part"
	"github.com/cognicore/nameparser/pkg/nameparser/store"
)

// Builder constructs store records with time-ordered IDs
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new record builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Build creates a record for a parsed name
func (b *Builder) Build(input string, languages []string, n *nameparser.Name) store.Record {
	b.mu.Lock()
	now := b.now().UTC()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	parts := n.Parts()
	stored := make([]store.StoredPart, len(parts))
	for i, p := range parts {
		stored[i] = store.StoredPart{
			Position:  p.Position,
			Category:  p.Category.String(),
			Value:     p.Value,
			Canonical: p.Canonical,
		}
	}

	return store.Record{
		ID:        id,
		Input:     input,
		Languages: append([]string(nil), languages...),
		ParsedAt:  now,
		Parts:     stored,
	}
}

// Name rebuilds the classified name from a stored record
func Name(r store.Record) (*nameparser.Name, error) {
	parts := make([]part.Part, len(r.Parts))
	for i, sp := range r.Parts {
		c, err := part.ParseCategory(sp.Category)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		p := part.NewWithCanonical(c, sp.Value, sp.Canonical)
		p.Position = sp.Position
		parts[i] = p
	}
	return nameparser.NewName(parts...), nil
}
