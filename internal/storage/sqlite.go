// Package storage provides SQLite-based persistence for replay tapes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/trampoline-arcade/internal/replay"
)

// ErrTapeNotFound is returned when no tape has the requested ID.
var ErrTapeNotFound = errors.New("storage: tape not found")

// Store manages the SQLite database connection for replay tapes.
type Store struct {
	db *sql.DB
}

// TapeInfo is a tape header without its frames.
type TapeInfo struct {
	ID         string
	GameID     string
	Seed       int64
	Width      float64
	Height     float64
	FrameCount int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tapes (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width REAL NOT NULL,
			height REAL NOT NULL,
			config BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_tapes_created ON tapes(created_at DESC);

		CREATE TABLE IF NOT EXISTS tape_frames (
			tape_id TEXT NOT NULL REFERENCES tapes(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			dt_ms REAL NOT NULL,
			flags INTEGER NOT NULL,
			width REAL NOT NULL DEFAULT 0,
			height REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (tape_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveTape stores a tape and its frames in one transaction.
func (s *Store) SaveTape(ctx context.Context, tape replay.Tape) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := tape.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tapes (id, game_id, seed, width, height, config, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tape.ID, tape.GameID, tape.Seed, tape.Width, tape.Height, tape.Config,
		createdAt.Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save tape: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tape_frames (tape_id, seq, dt_ms, flags, width, height)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range tape.Frames {
		if _, err := stmt.ExecContext(ctx, tape.ID, i, f.DtMs, f.Flags, f.Width, f.Height); err != nil {
			return fmt.Errorf("storage: cannot save frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit tape: %w", err)
	}
	return nil
}

// Tape loads a tape with all its frames.
func (s *Store) Tape(ctx context.Context, id string) (replay.Tape, error) {
	var tape replay.Tape
	var createdAt any

	err := s.db.QueryRowContext(ctx,
		`SELECT id, game_id, seed, width, height, config, created_at
		 FROM tapes
		 WHERE id = ?`,
		id,
	).Scan(&tape.ID, &tape.GameID, &tape.Seed, &tape.Width, &tape.Height, &tape.Config, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Tape{}, fmt.Errorf("%w: %s", ErrTapeNotFound, id)
	}
	if err != nil {
		return replay.Tape{}, fmt.Errorf("storage: cannot query tape: %w", err)
	}
	tape.CreatedAt = parseTime(createdAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT dt_ms, flags, width, height
		 FROM tape_frames
		 WHERE tape_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return replay.Tape{}, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f replay.Frame
		if err := rows.Scan(&f.DtMs, &f.Flags, &f.Width, &f.Height); err != nil {
			return replay.Tape{}, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		tape.Frames = append(tape.Frames, f)
	}
	if err := rows.Err(); err != nil {
		return replay.Tape{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return tape, nil
}

// ListTapes returns the most recent tape headers, newest first.
func (s *Store) ListTapes(ctx context.Context, limit int) ([]TapeInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.game_id, t.seed, t.width, t.height, t.created_at,
		        (SELECT COUNT(*) FROM tape_frames f WHERE f.tape_id = t.id)
		 FROM tapes t
		 ORDER BY t.created_at DESC, t.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tapes: %w", err)
	}
	defer rows.Close()

	var infos []TapeInfo
	for rows.Next() {
		var info TapeInfo
		var createdAt any
		if err := rows.Scan(&info.ID, &info.GameID, &info.Seed, &info.Width, &info.Height, &createdAt, &info.FrameCount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteTape removes a tape and its frames.
func (s *Store) DeleteTape(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tape_frames WHERE tape_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM tapes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete tape: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrTapeNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
