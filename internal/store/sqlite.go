package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS warps (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	owner      TEXT NOT NULL,
	world      TEXT NOT NULL,
	x          REAL NOT NULL,
	y          REAL NOT NULL,
	z          REAL NOT NULL,
	yaw        REAL NOT NULL DEFAULT 0,
	pitch      REAL NOT NULL DEFAULT 0,
	public     INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS warps_name_owner ON warps(name, owner);
CREATE INDEX IF NOT EXISTS warps_public ON warps(public) WHERE public = 1;
`

const warpColumns = "id, name, owner, world, x, y, z, yaw, pitch, public, created_at"

// SQLiteStore implements Store on a local SQLite file via database/sql.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the warp database at path and
// bootstraps the schema. Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open warp db: %w", err)
	}
	// modernc sqlite serializes writes itself; a single connection avoids
	// SQLITE_BUSY on concurrent warp commands.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap warp schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Create(ctx context.Context, w *Warp) error {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO warps (name, owner, world, x, y, z, yaw, pitch, public, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.Name, w.Owner, w.World, w.X, w.Y, w.Z, w.Yaw, w.Pitch, boolInt(w.Public), w.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("create warp %q: %w", w.Name, err)
	}
	w.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create warp %q: %w", w.Name, err)
	}
	return nil
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (*Warp, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+warpColumns+" FROM warps WHERE id = ?", id)
	return scanWarp(row)
}

func (s *SQLiteStore) GetByName(ctx context.Context, name, owner string) (*Warp, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+warpColumns+" FROM warps WHERE name = ? AND owner = ?", name, owner)
	return scanWarp(row)
}

func (s *SQLiteStore) Update(ctx context.Context, w *Warp) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE warps SET name = ?, owner = ?, world = ?, x = ?, y = ?, z = ?,
		 yaw = ?, pitch = ?, public = ? WHERE id = ?`,
		w.Name, w.Owner, w.World, w.X, w.Y, w.Z, w.Yaw, w.Pitch, boolInt(w.Public), w.ID)
	if err != nil {
		return fmt.Errorf("update warp %d: %w", w.ID, err)
	}
	return requireRows(res, w.ID)
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM warps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete warp %d: %w", id, err)
	}
	return requireRows(res, id)
}

func (s *SQLiteStore) DeleteByName(ctx context.Context, name, owner string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM warps WHERE name = ? AND owner = ?", name, owner)
	if err != nil {
		return fmt.Errorf("delete warp %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListByOwner(ctx context.Context, owner string) ([]Warp, error) {
	return s.list(ctx,
		"SELECT "+warpColumns+" FROM warps WHERE owner = ? ORDER BY name", owner)
}

func (s *SQLiteStore) ListPublic(ctx context.Context) ([]Warp, error) {
	return s.list(ctx,
		"SELECT "+warpColumns+" FROM warps WHERE public = 1 ORDER BY name")
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]Warp, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warps: %w", err)
	}
	defer rows.Close()

	var out []Warp
	for rows.Next() {
		w, err := scanWarp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWarp(row rowScanner) (*Warp, error) {
	var w Warp
	var public int
	var created int64
	err := row.Scan(&w.ID, &w.Name, &w.Owner, &w.World,
		&w.X, &w.Y, &w.Z, &w.Yaw, &w.Pitch, &public, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan warp: %w", err)
	}
	w.Public = public != 0
	w.CreatedAt = time.Unix(created, 0)
	return &w, nil
}

func requireRows(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("warp %d: %w", id, ErrNotFound)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
