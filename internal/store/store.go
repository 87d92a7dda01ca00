package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"visual-scout/internal/grid"
	"visual-scout/internal/logging"
)

// Default timeout for index operations.
const defaultTimeout = 5 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS grids (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source      TEXT NOT NULL,
	path        TEXT NOT NULL UNIQUE,
	start_time  TEXT NOT NULL,
	end_time    TEXT NOT NULL,
	frame_count INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_grids_source ON grids(source);
`

// GridRecord is one row of the grid index.
type GridRecord struct {
	ID        int64
	Source    string
	Path      string
	Start     string
	End       string
	Frames    int
	CreatedAt time.Time
}

// Store indexes persisted grid images so downstream collaborators can
// associate a grid with a time range in the original media without
// parsing filenames.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the grid index at dbPath. The parent directory
// must already exist.
func New(ctx context.Context, dbPath string) (*Store, error) {
	// WAL with a busy timeout keeps concurrent pipeline inserts from
	// tripping over "database is locked".
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("open grid index: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect grid index: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init grid index schema: %w", err)
	}

	logging.Debug("grid index open at %s", dbPath)
	return &Store{db: db}, nil
}

// Close closes the index.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordGrid inserts one grid's metadata. Re-recording the same grid
// path replaces the previous row, keeping reruns idempotent.
func (s *Store) RecordGrid(ctx context.Context, source string, meta grid.Meta) error {
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.ExecContext(opCtx, `
		INSERT INTO grids (source, path, start_time, end_time, frame_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			source = excluded.source,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			frame_count = excluded.frame_count`,
		source, meta.Path, meta.Start, meta.End, meta.Frames,
	)
	if err != nil {
		return fmt.Errorf("record grid %s: %w", meta.Path, err)
	}
	return nil
}

// GridsForSource returns all indexed grids for one media file, ordered
// by insertion (which matches time order within a pipeline).
func (s *Store) GridsForSource(ctx context.Context, source string) ([]GridRecord, error) {
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(opCtx, `
		SELECT id, source, path, start_time, end_time, frame_count, created_at
		FROM grids WHERE source = ? ORDER BY id`,
		source,
	)
	if err != nil {
		return nil, fmt.Errorf("query grids for %s: %w", source, err)
	}
	defer rows.Close()

	var records []GridRecord
	for rows.Next() {
		var rec GridRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Path, &rec.Start, &rec.End, &rec.Frames, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan grid row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of indexed grids.
func (s *Store) Count(ctx context.Context) (int, error) {
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int
	if err := s.db.QueryRowContext(opCtx, `SELECT COUNT(*) FROM grids`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count grids: %w", err)
	}
	return n, nil
}
