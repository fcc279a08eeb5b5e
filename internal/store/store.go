// Package store keeps snapshots of symbol entry lists in a SQLite database.
// Each snapshot is an ordered list of entries saved under a fresh UUID.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/symtab/internal/symbols"
	"github.com/funvibe/symtab/internal/typesystem"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	label      TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS entries (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	seq         INTEGER NOT NULL,
	name        TEXT NOT NULL,
	type_code   INTEGER NOT NULL,
	int_value   INTEGER,
	str_value   TEXT,
	bool_value  INTEGER,
	PRIMARY KEY (snapshot_id, seq)
)`,
}

// ErrSnapshotNotFound is returned for an unknown snapshot id.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot describes a saved entry list.
type Snapshot struct {
	ID        uuid.UUID
	Label     string
	CreatedAt time.Time
	Count     int
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// SQLite allows a single writer; one connection also keeps PRAGMAs in effect.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring %s: %w", path, err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema in %s: %w", path, err)
		}
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores entries as a new snapshot and returns its id.
func (s *Store) Save(ctx context.Context, label string, entries symbols.Entries) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (id, label, created_at) VALUES (?, ?, ?)",
		id.String(), label, s.now().UnixMilli()); err != nil {
		return uuid.Nil, fmt.Errorf("saving snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO entries (snapshot_id, seq, name, type_code, int_value, str_value, bool_value) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return uuid.Nil, err
	}
	defer stmt.Close()

	for i, e := range entries {
		r := toRow(e)
		if _, err := stmt.ExecContext(ctx, id.String(), i, r.name, r.code, r.intValue, r.strValue, r.boolValue); err != nil {
			return uuid.Nil, fmt.Errorf("saving entry %s: %w", e.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Load returns the entries of a snapshot in saved order.
func (s *Store) Load(ctx context.Context, id uuid.UUID) (symbols.Entries, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots WHERE id = ?", id.String()).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, type_code, int_value, str_value, bool_value FROM entries WHERE snapshot_id = ? ORDER BY seq",
		id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries symbols.Entries
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.name, &r.code, &r.intValue, &r.strValue, &r.boolValue); err != nil {
			return nil, err
		}
		e, err := r.entry()
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", id, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Snapshots lists saved snapshots, newest first.
func (s *Store) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.label, s.created_at, COUNT(e.seq)
		FROM snapshots s LEFT JOIN entries e ON e.snapshot_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			id      string
			snap    Snapshot
			created int64
		)
		if err := rows.Scan(&id, &snap.Label, &created, &snap.Count); err != nil {
			return nil, err
		}
		snap.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("corrupt snapshot id %q: %w", id, err)
		}
		snap.CreatedAt = time.UnixMilli(created)
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Delete removes a snapshot and its entries.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return nil
}

// row is the column form of an entry: the legacy type code plus one
// nullable column per payload kind.
type row struct {
	name      string
	code      int
	intValue  sql.NullInt64
	strValue  sql.NullString
	boolValue sql.NullBool
}

func toRow(e symbols.Entry) row {
	r := row{name: e.Name(), code: e.Tag().Code()}
	info := e.TypeInfo()
	if v, err := info.AsInt(); err == nil {
		r.intValue = sql.NullInt64{Int64: v, Valid: true}
	}
	if v, err := info.AsStr(); err == nil {
		r.strValue = sql.NullString{String: v, Valid: true}
	}
	if v, err := info.AsBool(); err == nil {
		r.boolValue = sql.NullBool{Bool: v, Valid: true}
	}
	return r
}

func (r row) entry() (symbols.Entry, error) {
	tag, err := typesystem.FromCode(r.code)
	if err != nil {
		return symbols.Entry{}, fmt.Errorf("entry %s: %w", r.name, err)
	}

	switch tag {
	case typesystem.Int:
		if !r.intValue.Valid {
			return symbols.Entry{}, fmt.Errorf("entry %s: %w", r.name, typesystem.ErrMissingPayload)
		}
		return symbols.NewIntEntry(r.name, r.intValue.Int64), nil
	case typesystem.Str:
		if !r.strValue.Valid {
			return symbols.Entry{}, fmt.Errorf("entry %s: %w", r.name, typesystem.ErrMissingPayload)
		}
		return symbols.NewStrEntry(r.name, r.strValue.String), nil
	case typesystem.Bool:
		if !r.boolValue.Valid {
			return symbols.Entry{}, fmt.Errorf("entry %s: %w", r.name, typesystem.ErrMissingPayload)
		}
		return symbols.NewBoolEntry(r.name, r.boolValue.Bool), nil
	default:
		return symbols.DeclareEntry(r.name, tag)
	}
}
