package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cognicore/nameparser/pkg/nameparser/internalerr"
	"github.com/cognicore/nameparser/pkg/nameparser/store"
)

func openTestStore(t *testing.T) (store.Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st, dbPath
}

func sampleRecord(id, input string, at time.Time) store.Record {
	return store.Record{
		ID:        id,
		Input:     input,
		Languages: []string{"german"},
		ParsedAt:  at,
		Parts: []store.StoredPart{
			{Position: 0, Category: "firstname", Value: "Peter", Canonical: "Peter"},
			{Position: 1, Category: "lastname", Value: "Pan", Canonical: "Pan"},
		},
	}
}

// TestSQLiteIntegrationBasic tests basic CRUD operations
func TestSQLiteIntegrationBasic(t *testing.T) {
	ctx := context.Background()
	st, _ := openTestStore(t)

	at := time.Date(2026, 3, 1, 12, 0, 0, 123, time.UTC)
	rec := sampleRecord("01J0000000000000000000000A", "Peter Pan", at)
	if err := st.UpsertRecord(ctx, rec); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}

	retrieved, found, err := st.GetRecordByInput(ctx, "Peter Pan")
	if err != nil {
		t.Fatalf("GetRecordByInput: %v", err)
	}
	if !found {
		t.Fatal("Record should be found")
	}
	if retrieved.ID != rec.ID {
		t.Errorf("ID mismatch: got %q, want %q", retrieved.ID, rec.ID)
	}
	if !retrieved.ParsedAt.Equal(at) {
		t.Errorf("ParsedAt mismatch: got %v, want %v", retrieved.ParsedAt, at)
	}
	if len(retrieved.Parts) != 2 || retrieved.Parts[1].Category != "lastname" {
		t.Errorf("Unexpected parts: %+v", retrieved.Parts)
	}
	if len(retrieved.Languages) != 1 || retrieved.Languages[0] != "german" {
		t.Errorf("Unexpected languages: %v", retrieved.Languages)
	}

	byID, err := st.GetRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if byID.Input != "Peter Pan" {
		t.Errorf("Input mismatch: got %q", byID.Input)
	}
}

func TestSQLiteUpsertKeepsID(t *testing.T) {
	ctx := context.Background()
	st, _ := openTestStore(t)

	first := sampleRecord("01J0000000000000000000000A", "Peter Pan", time.Now())
	if err := st.UpsertRecord(ctx, first); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}

	second := sampleRecord("01J0000000000000000000000B", "Peter Pan", time.Now().Add(time.Second))
	second.Parts = second.Parts[:1]
	if err := st.UpsertRecord(ctx, second); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}

	got, found, err := st.GetRecordByInput(ctx, "Peter Pan")
	if err != nil || !found {
		t.Fatalf("GetRecordByInput: found=%v err=%v", found, err)
	}
	if got.ID != first.ID {
		t.Errorf("Upsert should keep the first ID, got %s", got.ID)
	}
	if len(got.Parts) != 1 {
		t.Errorf("Parts should be replaced, got %d", len(got.Parts))
	}

	if _, err := st.GetRecord(ctx, second.ID); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Second ID should not exist, got %v", err)
	}
}

func TestSQLiteListRecordsNewestFirst(t *testing.T) {
	ctx := context.Background()
	st, _ := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := sampleRecord(fmt.Sprintf("01J000000000000000000000%02d", i), fmt.Sprintf("Name %d", i), base.Add(time.Duration(i)*time.Minute))
		if err := st.UpsertRecord(ctx, rec); err != nil {
			t.Fatalf("UpsertRecord: %v", err)
		}
	}

	records, err := st.ListRecords(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	want := []string{"Name 4", "Name 3", "Name 2"}
	for i, r := range records {
		if r.Input != want[i] {
			t.Errorf("Record %d: got %q, want %q", i, r.Input, want[i])
		}
		if len(r.Parts) != 2 {
			t.Errorf("Record %d should carry its parts", i)
		}
	}
}

func TestSQLiteCountByCategory(t *testing.T) {
	ctx := context.Background()
	st, _ := openTestStore(t)

	a := sampleRecord("A", "Peter Pan", time.Now())
	b := sampleRecord("B", "Herr Paul Pan", time.Now())
	b.Parts = append([]store.StoredPart{{Position: 0, Category: "salutation", Value: "Herr", Canonical: "Herr"}}, b.Parts...)
	b.Parts[1].Position, b.Parts[2].Position = 1, 2
	for _, r := range []store.Record{a, b} {
		if err := st.UpsertRecord(ctx, r); err != nil {
			t.Fatalf("UpsertRecord: %v", err)
		}
	}

	counts, err := st.CountByCategory(ctx)
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if counts["lastname"] != 2 || counts["firstname"] != 2 || counts["salutation"] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}
}

func TestSQLiteRejectsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	st, _ := openTestStore(t)

	if err := st.UpsertRecord(ctx, store.Record{ID: "A"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Empty input should be rejected, got %v", err)
	}
	if err := st.UpsertRecord(ctx, store.Record{Input: "Peter"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Missing ID should be rejected, got %v", err)
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.UpsertRecord(ctx, sampleRecord("A", "Peter Pan", time.Now())); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}
	st.Close()

	// Schema creation must be idempotent
	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer st.Close()

	if _, found, err := st.GetRecordByInput(ctx, "Peter Pan"); err != nil || !found {
		t.Errorf("Record should survive reopen: found=%v err=%v", found, err)
	}
}

func TestSQLiteConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	st, _ := openTestStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := sampleRecord(fmt.Sprintf("ID%02d", i), fmt.Sprintf("Name %d", i), time.Now())
			if err := st.UpsertRecord(ctx, rec); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil && !isBusy(err) {
			t.Errorf("Concurrent upsert failed: %v", err)
		}
	}
}

// isBusy reports SQLITE_BUSY, which concurrent writers may see without a
// busy timeout.
func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
