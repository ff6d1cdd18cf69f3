// Package library stores exported pattern documents in SQLite so they can be
// listed and loaded back later.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"lifesim/internal/pattern"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when no entry matches the requested id.
var ErrNotFound = errors.New("pattern not found")

// Entry is a stored pattern document plus its listing metadata.
type Entry struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Rows        int       `db:"grid_rows" json:"rows"`
	Cols        int       `db:"grid_cols" json:"cols"`
	Generation  int       `db:"generation" json:"generation"`
	Population  int       `db:"population" json:"population"`
	CreatedAt   time.Time `db:"-" json:"created_at"`
	Created     string    `db:"created_at" json:"-"`
	Payload     string    `db:"payload" json:"-"`

	Document *pattern.Document `db:"-" json:"document,omitempty"`
}

// Store is the pattern library interface.
type Store interface {
	Save(ctx context.Context, doc pattern.Document) (*Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// SQLiteLibrary implements Store using SQLite.
type SQLiteLibrary struct {
	db      *sqlx.DB
	entropy *rand.Rand
	now     func() time.Time
}

// Open opens or creates a library database at the given path.
func Open(path string) (*SQLiteLibrary, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	l := &SQLiteLibrary{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return l, nil
}

func (l *SQLiteLibrary) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS patterns (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		grid_rows   INTEGER NOT NULL,
		grid_cols   INTEGER NOT NULL,
		generation  INTEGER NOT NULL,
		population  INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		payload     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_patterns_created ON patterns(created_at DESC);
	`
	_, err := l.db.Exec(schema)
	return err
}

func (l *SQLiteLibrary) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), l.entropy).String()
}

// Save stores a document and returns the created entry.
func (l *SQLiteLibrary) Save(ctx context.Context, doc pattern.Document) (*Entry, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	now := l.now().UTC()
	e := &Entry{
		ID:          l.newID(now),
		Name:        doc.Name,
		Description: doc.Description,
		Rows:        doc.GridSize.Rows,
		Cols:        doc.GridSize.Cols,
		Generation:  doc.Generation,
		Population:  len(doc.LivingCells),
		CreatedAt:   now,
		Created:     now.Format(timeLayout),
		Payload:     string(payload),
		Document:    &doc,
	}

	_, err = l.db.NamedExecContext(ctx, `
		INSERT INTO patterns (id, name, description, grid_rows, grid_cols, generation, population, created_at, payload)
		VALUES (:id, :name, :description, :grid_rows, :grid_cols, :generation, :population, :created_at, :payload)`, e)
	if err != nil {
		return nil, fmt.Errorf("insert pattern: %w", err)
	}
	slog.Debug("pattern saved", "id", e.ID, "cells", e.Population, "generation", e.Generation)
	return e, nil
}

// Get loads an entry and decodes its document.
func (l *SQLiteLibrary) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	err := l.db.GetContext(ctx, &e, `SELECT * FROM patterns WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query pattern: %w", err)
	}
	if err := e.hydrate(); err != nil {
		return nil, err
	}
	doc, err := pattern.Parse([]byte(e.Payload))
	if err != nil {
		return nil, fmt.Errorf("decode pattern %s: %w", id, err)
	}
	e.Document = &doc
	return &e, nil
}

// List returns the newest entries first, without their documents.
func (l *SQLiteLibrary) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []Entry
	err := l.db.SelectContext(ctx, &entries, `
		SELECT * FROM patterns ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	for i := range entries {
		if err := entries[i].hydrate(); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// Delete removes an entry.
func (l *SQLiteLibrary) Delete(ctx context.Context, id string) error {
	res, err := l.db.ExecContext(ctx, `DELETE FROM patterns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pattern: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the database.
func (l *SQLiteLibrary) Close() error {
	return l.db.Close()
}

func (e *Entry) hydrate() error {
	t, err := time.Parse(timeLayout, e.Created)
	if err != nil {
		return fmt.Errorf("parse created_at of %s: %w", e.ID, err)
	}
	e.CreatedAt = t
	return nil
}
