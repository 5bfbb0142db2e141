package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/nameparser/pkg/nameparser/internalerr"
	"github.com/cognicore/nameparser/pkg/nameparser/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu         sync.RWMutex
	records    map[string]store.Record
	inputIndex map[string]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		records:    make(map[string]store.Record),
		inputIndex: make(map[string]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertRecord inserts or replaces a record, keyed by input.
func (s *Store) UpsertRecord(ctx context.Context, r store.Record) error {
	if r.Input == "" {
		return fmt.Errorf("%w: empty input", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.inputIndex[r.Input]; ok {
		r.ID = existingID
	} else {
		if r.ID == "" {
			return fmt.Errorf("%w: record without id", internalerr.ErrInvalidInput)
		}
		s.inputIndex[r.Input] = r.ID
	}
	s.records[r.ID] = copyRecord(r)
	return nil
}

// GetRecord returns a record by ID.
func (s *Store) GetRecord(ctx context.Context, id string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.records[id]; ok {
		return copyRecord(r), nil
	}
	return store.Record{}, fmt.Errorf("record %s: %w", id, internalerr.ErrNotFound)
}

// GetRecordByInput returns a record by its input string.
func (s *Store) GetRecordByInput(ctx context.Context, input string) (store.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.inputIndex[input]; ok {
		if r, exists := s.records[id]; exists {
			return copyRecord(r), true, nil
		}
	}
	return store.Record{}, false, nil
}

// ListRecords returns records newest first.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	results := make([]store.Record, 0, len(s.records))
	for _, r := range s.records {
		results = append(results, copyRecord(r))
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].ParsedAt.Equal(results[j].ParsedAt) {
			return results[i].ParsedAt.After(results[j].ParsedAt)
		}
		return results[i].ID > results[j].ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// CountByCategory counts stored parts per category.
func (s *Store) CountByCategory(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, r := range s.records {
		for _, p := range r.Parts {
			counts[p.Category]++
		}
	}
	return counts, nil
}

func copyRecord(r store.Record) store.Record {
	r.Languages = append([]string(nil), r.Languages...)
	r.Parts = append([]store.StoredPart(nil), r.Parts...)
	return r
}
