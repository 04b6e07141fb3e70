// Package catalogdb implements catalog.Store on a local SQLite database, so
// the engine can run against a personal library file with no remote service.
package catalogdb

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"sagascan/internal/catalog"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases with a different version are rejected.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store is a SQLite-backed catalog. An advisory file lock is held for the
// lifetime of the store so two processes cannot interleave writes during a
// commit run.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

var _ catalog.Store = (*Store)(nil)

// Open connects to (or creates) the catalog database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("catalog database path required")
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("catalog database %s is locked by another process", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the advisory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d", ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

const bookColumns = "id, title, author, category, status, saga, volume_number, subjects, added_at"

// FetchAllBooks returns every record ordered by insertion time.
func (s *Store) FetchAllBooks(ctx context.Context) ([]catalog.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+bookColumns+" FROM books ORDER BY added_at, id")
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []catalog.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

// UpdateBook applies a partial update and returns the updated record.
func (s *Store) UpdateBook(ctx context.Context, id string, patch catalog.Patch) (*catalog.Book, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("book id required")
	}
	if patch.IsEmpty() {
		return nil, errors.New("patch carries no changes")
	}

	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if patch.Saga != nil {
		sets = append(sets, "saga = ?")
		args = append(args, *patch.Saga)
	}
	if patch.VolumeNumber != nil {
		sets = append(sets, "volume_number = ?")
		args = append(args, *patch.VolumeNumber)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE books SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("update book %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("book %s not found", id)
	}
	return s.GetByID(ctx, id)
}

// FetchStats computes aggregate counts from the table.
func (s *Store) FetchStats(ctx context.Context) (*catalog.Stats, error) {
	stats := &catalog.Stats{Categories: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM books").Scan(&stats.TotalBooks); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT saga) FROM books WHERE saga != ''").Scan(&stats.SagaCount); err != nil {
		return nil, fmt.Errorf("count sagas: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT category, COUNT(1) FROM books GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		stats.Categories[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return stats, nil
}

// GetByID fetches a single record.
func (s *Store) GetByID(ctx context.Context, id string) (*catalog.Book, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE id = ?", id)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %s not found", id)
	}
	return book, err
}

// AddBook inserts a new record. A missing ID is generated; a missing AddedAt
// defaults to now.
func (s *Store) AddBook(ctx context.Context, book catalog.Book) (*catalog.Book, error) {
	if strings.TrimSpace(book.Title) == "" {
		return nil, errors.New("book title required")
	}
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	if book.Status == "" {
		book.Status = catalog.StatusToRead
	}
	if book.AddedAt.IsZero() {
		book.AddedAt = time.Now().UTC()
	}

	subjects, err := json.Marshal(book.Subjects)
	if err != nil {
		return nil, fmt.Errorf("encode subjects: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO books (`+bookColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID, book.Title, book.Author, book.Category, book.Status, book.Saga,
		nullableInt(book.VolumeNumber), string(subjects),
		book.AddedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return s.GetByID(ctx, book.ID)
}

// ImportCSV loads records from a CSV export with the header
// title,author,category,status,saga,volume_number. Returns the number of
// rows imported.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index["title"]; !ok {
		return 0, errors.New("csv is missing a title column")
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	imported := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read csv row: %w", err)
		}

		book := catalog.Book{
			Title:    field(record, "title"),
			Author:   field(record, "author"),
			Category: field(record, "category"),
			Status:   field(record, "status"),
			Saga:     field(record, "saga"),
		}
		if raw := field(record, "volume_number"); raw != "" {
			vol, err := strconv.Atoi(raw)
			if err != nil {
				return imported, fmt.Errorf("row %d: invalid volume number %q", imported+2, raw)
			}
			book.VolumeNumber = vol
		}
		if _, err := s.AddBook(ctx, book); err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}
		imported++
	}
	return imported, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*catalog.Book, error) {
	var book catalog.Book
	var volume sql.NullInt64
	var subjects string
	var addedAt string

	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Category,
		&book.Status, &book.Saga, &volume, &subjects, &addedAt)
	if err != nil {
		return nil, err
	}
	if volume.Valid {
		book.VolumeNumber = int(volume.Int64)
	}
	if subjects != "" && subjects != "[]" {
		if err := json.Unmarshal([]byte(subjects), &book.Subjects); err != nil {
			return nil, fmt.Errorf("decode subjects for %s: %w", book.ID, err)
		}
	}
	if addedAt != "" {
		ts, err := time.Parse(time.RFC3339Nano, addedAt)
		if err != nil {
			return nil, fmt.Errorf("parse added_at for %s: %w", book.ID, err)
		}
		book.AddedAt = ts
	}
	return &book, nil
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}
