// Package corpus persists named training corpora (raw source text, never
// trained models) in a SQLite database, so the CLI can rebuild models from
// the same material across runs.
package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// ErrNotFound is returned when a named corpus does not exist in the store.
var ErrNotFound = errors.New("corpus: no corpus with that name")

// Info holds the metadata for a single stored corpus.
type Info struct {
	Id      int
	Name    string
	AddedAt time.Time
	Size    int64
}

// Setup initializes the corpora table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func Setup(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS corpora (
    corpus_id INTEGER PRIMARY KEY,
    corpus_name TEXT NOT NULL UNIQUE,
    added_at TEXT NOT NULL,
    content TEXT NOT NULL
);
`
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schema); err != nil {
		return fmt.Errorf("could not create corpora schema: %w", err)
	}

	return tx.Commit()
}

// Store provides access to the stored corpora. It holds the database
// connection and prepared SQL statements.
type Store struct {
	db         *sql.DB
	stmtAdd    *sql.Stmt
	stmtGet    *sql.Stmt
	stmtList   *sql.Stmt
	stmtRemove *sql.Stmt
	logger     *slog.Logger
}

// NewStore creates a Store over an initialized database, pre-compiling all
// necessary SQL statements.
func NewStore(db *sql.DB) (*Store, error) {
	stmtAdd, err := db.Prepare(`
INSERT INTO corpora (corpus_name, added_at, content) VALUES (?, ?, ?)
ON CONFLICT(corpus_name) DO UPDATE SET added_at = excluded.added_at, content = excluded.content;`)
	if err != nil {
		return nil, err
	}

	stmtGet, err := db.Prepare(`SELECT content FROM corpora WHERE corpus_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtList, err := db.Prepare(`SELECT corpus_id, corpus_name, added_at, length(content) FROM corpora ORDER BY corpus_name;`)
	if err != nil {
		return nil, err
	}

	stmtRemove, err := db.Prepare(`DELETE FROM corpora WHERE corpus_name = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		stmtAdd:    stmtAdd,
		stmtGet:    stmtGet,
		stmtList:   stmtList,
		stmtRemove: stmtRemove,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtAdd.Close()
	_ = s.stmtGet.Close()
	_ = s.stmtList.Close()
	_ = s.stmtRemove.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Add stores a corpus under the given name, replacing any previous content
// stored under that name.
func (s *Store) Add(ctx context.Context, name, content string) error {
	if _, err := s.stmtAdd.ExecContext(ctx, name, time.Now().UTC().Format(time.RFC3339), content); err != nil {
		return fmt.Errorf("could not store corpus %q: %w", name, err)
	}

	s.logger.InfoContext(ctx, "Corpus stored",
		slog.String("corpus_name", name),
		slog.Int("size_bytes", len(content)),
	)
	return nil
}

// Get returns the content of the named corpus.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	var content string
	err := s.stmtGet.QueryRowContext(ctx, name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("could not load corpus %q: %w", name, err)
	}
	return content, nil
}

// List returns metadata for all stored corpora, ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []Info
	for rows.Next() {
		var info Info
		var added string
		if err = rows.Scan(&info.Id, &info.Name, &added, &info.Size); err != nil {
			return nil, err
		}
		info.AddedAt, _ = time.Parse(time.RFC3339, added)
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes the named corpus from the store.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.stmtRemove.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("could not remove corpus %q: %w", name, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	s.logger.InfoContext(ctx, "Corpus removed",
		slog.String("corpus_name", name),
	)
	return nil
}

// Reader returns a single reader over the contents of the named corpora,
// in the given order, with a newline between them.
func (s *Store) Reader(ctx context.Context, names ...string) (io.Reader, error) {
	readers := make([]io.Reader, 0, 2*len(names))
	for _, name := range names {
		content, err := s.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		readers = append(readers, strings.NewReader(content), strings.NewReader("\n"))
	}
	return io.MultiReader(readers...), nil
}
