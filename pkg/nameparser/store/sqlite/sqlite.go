package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/cognicore/nameparser/pkg/nameparser/internalerr"
	"github.com/cognicore/nameparser/pkg/nameparser/store"
)

// timeLayout keeps a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// Option configures the SQLite store
type Option func(*sqliteStore)

// WithLogger sets the logger used for schema and maintenance messages
func WithLogger(l *zap.Logger) Option {
	return func(s *sqliteStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (store.Store, error) {
	s := &sqliteStore{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	s.logger.Debug("sqlite store ready", zap.String("path", path))

	s.db = db
	return s, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	input TEXT UNIQUE NOT NULL,
	languages TEXT NOT NULL DEFAULT '[]',
	parsed_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS records_parsed_at ON records(parsed_at);

CREATE TABLE IF NOT EXISTS record_parts (
	record_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	category TEXT NOT NULL,
	value TEXT NOT NULL,
	canonical TEXT NOT NULL,
	PRIMARY KEY(record_id, position),
	FOREIGN KEY(record_id) REFERENCES records(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS record_parts_category ON record_parts(category);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertRecord inserts or updates a record keyed by input
func (s *sqliteStore) UpsertRecord(ctx context.Context, r store.Record) error {
	if r.Input == "" {
		return fmt.Errorf("%w: empty input", internalerr.ErrInvalidInput)
	}
	if r.ID == "" {
		return fmt.Errorf("%w: record without id", internalerr.ErrInvalidInput)
	}

	langs, err := json.Marshal(nonNil(r.Languages))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO records (id, input, languages, parsed_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(input) DO UPDATE SET
	languages=excluded.languages,
	parsed_at=excluded.parsed_at
RETURNING id;
`

	var recordID string
	err = tx.QueryRowContext(
		ctx,
		stmt,
		r.ID,
		r.Input,
		string(langs),
		r.ParsedAt.UTC().Format(timeLayout),
	).Scan(&recordID)
	if err != nil {
		return err
	}

	if err := replaceParts(ctx, tx, recordID, r.Parts); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceParts(ctx context.Context, tx *sql.Tx, recordID string, parts []store.StoredPart) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM record_parts WHERE record_id = ?`, recordID); err != nil {
		return err
	}
	if len(parts) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO record_parts (record_id, position, category, value, canonical)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range parts {
		if _, err := stmt.ExecContext(ctx, recordID, p.Position, p.Category, p.Value, p.Canonical); err != nil {
			return err
		}
	}
	return nil
}

// GetRecord returns a record by ID
func (s *sqliteStore) GetRecord(ctx context.Context, id string) (store.Record, error) {
	r, err := s.loadRecord(ctx, `SELECT id, input, languages, parsed_at FROM records WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, fmt.Errorf("record %s: %w", id, internalerr.ErrNotFound)
	}
	return r, err
}

// GetRecordByInput returns a record by its input string
func (s *sqliteStore) GetRecordByInput(ctx context.Context, input string) (store.Record, bool, error) {
	r, err := s.loadRecord(ctx, `SELECT id, input, languages, parsed_at FROM records WHERE input = ?`, input)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, false, nil
	}
	if err != nil {
		return store.Record{}, false, err
	}
	return r, true, nil
}

// ListRecords returns records newest first
func (s *sqliteStore) ListRecords(ctx context.Context, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, input, languages, parsed_at
FROM records
ORDER BY parsed_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}

	var records []store.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range records {
		parts, err := s.loadParts(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Parts = parts
	}
	return records, nil
}

// CountByCategory counts stored parts per category
func (s *sqliteStore) CountByCategory(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM record_parts GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var category string
		var n int64
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (store.Record, error) {
	var (
		r        store.Record
		langs    string
		parsedAt string
	)
	if err := row.Scan(&r.ID, &r.Input, &langs, &parsedAt); err != nil {
		return store.Record{}, err
	}
	if err := json.Unmarshal([]byte(langs), &r.Languages); err != nil {
		return store.Record{}, fmt.Errorf("decode languages of %s: %w", r.ID, err)
	}
	ts, err := time.Parse(timeLayout, parsedAt)
	if err != nil {
		return store.Record{}, fmt.Errorf("decode parsed_at of %s: %w", r.ID, err)
	}
	r.ParsedAt = ts
	return r, nil
}

func (s *sqliteStore) loadRecord(ctx context.Context, query string, arg any) (store.Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return store.Record{}, err
	}
	parts, err := s.loadParts(ctx, r.ID)
	if err != nil {
		return store.Record{}, err
	}
	r.Parts = parts
	return r, nil
}

func (s *sqliteStore) loadParts(ctx context.Context, recordID string) ([]store.StoredPart, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT position, category, value, canonical
FROM record_parts
WHERE record_id = ?
ORDER BY position`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []store.StoredPart
	for rows.Next() {
		var p store.StoredPart
		if err := rows.Scan(&p.Position, &p.Category, &p.Value, &p.Canonical); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
