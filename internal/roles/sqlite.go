package roles

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteDictionary is the shared workspace role dictionary, stored as an
// embedded database so other tools can read and extend it.
type SQLiteDictionary struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the dictionary at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteDictionary, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when another tool holds the dictionary.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	const schema = `
CREATE TABLE IF NOT EXISTS roles (
	name       TEXT PRIMARY KEY COLLATE NOCASE,
	evidence   TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteDictionary{db: db}, nil
}

func (d *SQLiteDictionary) Close() error { return d.db.Close() }

func (d *SQLiteDictionary) Contains(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	var one int
	err := d.db.QueryRowContext(ctx, `SELECT 1 FROM roles WHERE name = ?`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddRole inserts a new entry; adding an existing role (any casing) is a
// no-op, never an overwrite.
func (d *SQLiteDictionary) AddRole(ctx context.Context, name, evidence string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO roles (name, evidence, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO NOTHING`,
		name, evidence, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (d *SQLiteDictionary) Roles(ctx context.Context) ([]Entry, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT name, evidence, created_at FROM roles ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Name, &e.Evidence, &ts); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.CreatedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
