package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no artifact row exists for a name.
var ErrNotFound = errors.New("artifact not found")

// Artifact is one serialized scaler or model stored as a blob.
type Artifact struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Payload   []byte    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DB wraps the SQLite handle holding exported artifacts.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the schema.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	query := `
    CREATE TABLE IF NOT EXISTS artifacts (
        name TEXT PRIMARY KEY,
        kind TEXT NOT NULL DEFAULT '',
        payload BLOB NOT NULL,
        updated_at DATETIME NOT NULL
    );
    `
	if _, err := conn.Exec(query); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	if d == nil || d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// SaveArtifact inserts or replaces the artifact stored under a.Name.
func (d *DB) SaveArtifact(ctx context.Context, a Artifact) error {
	if d == nil || d.conn == nil {
		return errors.New("database not initialized")
	}
	if a.Name == "" {
		return errors.New("artifact name required")
	}
	if len(a.Payload) == 0 {
		return errors.New("artifact payload required")
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}
	_, err := d.conn.ExecContext(ctx, `
        INSERT OR REPLACE INTO artifacts (name, kind, payload, updated_at)
        VALUES (?, ?, ?, ?)`,
		a.Name, a.Kind, a.Payload, a.UpdatedAt)
	return err
}

// LoadArtifact returns the artifact stored under name or ErrNotFound.
func (d *DB) LoadArtifact(ctx context.Context, name string) (*Artifact, error) {
	if d == nil || d.conn == nil {
		return nil, errors.New("database not initialized")
	}
	var a Artifact
	err := d.conn.QueryRowContext(ctx, `
        SELECT name, kind, payload, updated_at
        FROM artifacts
        WHERE name = ?`, name).Scan(&a.Name, &a.Kind, &a.Payload, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListArtifacts returns stored artifacts without payloads, newest first.
func (d *DB) ListArtifacts(ctx context.Context) ([]Artifact, error) {
	if d == nil || d.conn == nil {
		return nil, errors.New("database not initialized")
	}
	rows, err := d.conn.QueryContext(ctx, `
        SELECT name, kind, updated_at
        FROM artifacts
        ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artifacts := make([]Artifact, 0)
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.Name, &a.Kind, &a.UpdatedAt); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
