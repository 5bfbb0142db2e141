package store

import (
	"context"
	"time"
)

// Store is the interface for persisting parse results
type Store interface {
	Close() error

	// UpsertRecord stores a record keyed by its input string. Re-parsing the
	// same input replaces the parts but keeps the original ID.
	UpsertRecord(ctx context.Context, r Record) error
	// GetRecord returns internalerr.ErrNotFound for an unknown ID.
	GetRecord(ctx context.Context, id string) (Record, error)
	GetRecordByInput(ctx context.Context, input string) (Record, bool, error)
	// ListRecords returns the most recently parsed records first.
	ListRecords(ctx context.Context, limit int) ([]Record, error)
	// CountByCategory counts stored parts per category name.
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

// Record is a stored parse result
type Record struct {
	ID        string       `json:"id" yaml:"id"`
	Input     string       `json:"input" yaml:"input"`
	Languages []string     `json:"languages" yaml:"languages"`
	ParsedAt  time.Time    `json:"parsed_at" yaml:"parsed_at"`
	Parts     []StoredPart `json:"parts" yaml:"parts"`
}

// StoredPart is one classified word of a record
type StoredPart struct {
	Position  int    `json:"position" yaml:"position"`
	Category  string `json:"category" yaml:"category"`
	Value     string `json:"value" yaml:"value"`
	Canonical string `json:"canonical" yaml:"canonical"`
}

// DefaultListLimit is used when ListRecords gets a non-positive limit
const DefaultListLimit = 20
