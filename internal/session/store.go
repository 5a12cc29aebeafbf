// Package session persists editor snapshots in a SQLite database. It is an
// optional collaborator: the editing core never depends on it and never
// reads persisted state back during validation or formatting.
package session

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Database schema version
const schemaVersion = 1

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

// Snapshot is one persisted buffer state.
type Snapshot struct {
	ID        int64
	Label     string
	Body      string
	CreatedAt time.Time
}

// Open initializes the database at path, creating tables if they don't
// exist, and returns a ready Store.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s := &Store{conn: conn}
	if err := s.setup(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}
	return s, nil
}

func (s *Store) setup() error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createSnapshotsTable := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	`
	if _, err := tx.Exec(createSnapshotsTable); err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveSnapshot stores one buffer state. It implements the editor's
// snapshot sink.
func (s *Store) SaveSnapshot(label, body string) error {
	_, err := s.conn.Exec(
		`INSERT INTO snapshots (label, body, created_at) VALUES (?, ?, ?)`,
		label, body, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot; ok is false when the store is
// empty.
func (s *Store) Latest() (snap Snapshot, ok bool, err error) {
	row := s.conn.QueryRow(
		`SELECT id, label, body, created_at FROM snapshots ORDER BY id DESC LIMIT 1`,
	)
	var created int64
	if err := row.Scan(&snap.ID, &snap.Label, &snap.Body, &created); err != nil {
		if err == sql.ErrNoRows {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("failed to read latest snapshot: %w", err)
	}
	snap.CreatedAt = time.Unix(created, 0)
	return snap, true, nil
}

// List returns all snapshots, oldest first.
func (s *Store) List() ([]Snapshot, error) {
	rows, err := s.conn.Query(
		`SELECT id, label, body, created_at FROM snapshots ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var created int64
		if err := rows.Scan(&snap.ID, &snap.Label, &snap.Body, &created); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.CreatedAt = time.Unix(created, 0)
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
