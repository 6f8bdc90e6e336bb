// Package sqlite is the transcript data layer, backed by a local SQLite
// database (modernc.org/sqlite, pure Go).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sushilparjapat/relay"
	_ "modernc.org/sqlite"
)

// Store persists session transcripts. One thread row per session; steps are
// replaced wholesale on save, which keeps the schema trivial and matches the
// append-only nature of a transcript.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and initializes the
// schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS threads (
			id TEXT PRIMARY KEY,
			created_at INTEGER,
			updated_at INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS steps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			thread_id TEXT REFERENCES threads(id) ON DELETE CASCADE,
			seq INTEGER,
			type TEXT,
			output TEXT,
			at INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_steps_thread_seq ON steps(thread_id, seq);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// SaveTranscript upserts the thread row and replaces its steps.
func (s *Store) SaveTranscript(ctx context.Context, id string, steps []relay.Step) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO threads (id, created_at, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		id, now, now)
	if err != nil {
		return fmt.Errorf("upsert thread: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM steps WHERE thread_id = ?`, id); err != nil {
		return fmt.Errorf("clear steps: %w", err)
	}

	for i, step := range steps {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO steps (thread_id, seq, type, output, at) VALUES (?, ?, ?, ?, ?)`,
			id, i, string(step.Type), step.Output, step.At.Unix())
		if err != nil {
			return fmt.Errorf("insert step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadTranscript returns the thread's steps in original order. A thread
// that was never saved yields an empty transcript, not an error.
func (s *Store) LoadTranscript(ctx context.Context, id string) ([]relay.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, output, at FROM steps WHERE thread_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var steps []relay.Step
	for rows.Next() {
		var (
			stepType string
			output   string
			at       int64
		)
		if err := rows.Scan(&stepType, &output, &at); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, relay.Step{
			Type:   relay.StepType(stepType),
			Output: output,
			At:     time.Unix(at, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// ListThreads returns known thread ids, most recently updated first.
func (s *Store) ListThreads(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM threads ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query threads: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan thread: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate threads: %w", err)
	}
	return ids, nil
}
