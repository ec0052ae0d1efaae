// Package journal keeps an append-only SQLite log of generated notes.
// It records outcomes only; no workflow decision ever reads it back, so
// every run still re-scans the vault from scratch.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS generated_notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	path       TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	category   TEXT NOT NULL,
	note_type  TEXT NOT NULL DEFAULT '',
	checksum   TEXT NOT NULL DEFAULT '',
	links      INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_generated_notes_created ON generated_notes(created_at);
`

// Entry is one generated-note record.
type Entry struct {
	Path      string
	Title     string
	Category  string
	NoteType  string
	Checksum  string
	Links     int
	CreatedAt time.Time
}

// Journal wraps the SQLite connection.
type Journal struct {
	conn *sql.DB
}

// Open opens (or creates) the journal database and applies the schema.
func Open(dsn string) (*Journal, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	return &Journal{conn: conn}, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

// Record appends one entry.
func (j *Journal) Record(e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := j.conn.Exec(`
		INSERT INTO generated_notes (path, title, category, note_type, checksum, links, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.Path, e.Title, e.Category, e.NoteType, e.Checksum, e.Links, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("journal: record: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.conn.Query(`
		SELECT path, title, category, note_type, checksum, links, created_at
		FROM generated_notes
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Title, &e.Category, &e.NoteType,
			&e.Checksum, &e.Links, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
