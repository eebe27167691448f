package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/atomic"

	"focusd/internal/models"
)

// ErrStorageUnavailable marks recoverable storage I/O failures. Callers
// keep the in-memory segment and may retry.
var ErrStorageUnavailable = errors.New("storage unavailable")

const createSegmentsTable = `
CREATE TABLE IF NOT EXISTS segments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_time INTEGER NOT NULL,
	end_time INTEGER NOT NULL,
	study_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_segments_start_time ON segments (start_time);
`

// SegmentStore is the append-only log of study segments. The recorder is
// the only writer, the aggregator the only reader; sqlite serializes the
// two, so a read during a write sees the previous snapshot, never a
// partial row.
type SegmentStore struct {
	db         *sql.DB
	generation atomic.Int64
}

func OpenSegmentStore(path string) (*SegmentStore, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=8000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(30 * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(createSegmentsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create segments table: %w", err)
	}

	return &SegmentStore{db: db}, nil
}

// Append inserts one segment. Never updates or deletes existing rows.
func (s *SegmentStore) Append(seg models.Segment) error {
	_, err := s.db.Exec(
		`INSERT INTO segments (start_time, end_time, study_seconds) VALUES (?, ?, ?)`,
		seg.StartTime,
		seg.EndTime,
		seg.StudySeconds,
	)
	if err != nil {
		return fmt.Errorf("%w: append segment: %s", ErrStorageUnavailable, err)
	}
	s.generation.Inc()
	return nil
}

// Scan returns segments whose start time falls in [from, to], ordered
// chronologically. Read-only.
func (s *SegmentStore) Scan(from, to int64) ([]models.Segment, error) {
	rows, err := s.db.Query(
		`SELECT id, start_time, end_time, study_seconds
		 FROM segments
		 WHERE start_time >= ? AND start_time <= ?
		 ORDER BY start_time`,
		from,
		to,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scan segments: %s", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var segments []models.Segment
	for rows.Next() {
		var seg models.Segment
		if err := rows.Scan(&seg.ID, &seg.StartTime, &seg.EndTime, &seg.StudySeconds); err != nil {
			return nil, fmt.Errorf("%w: scan segment row: %s", ErrStorageUnavailable, err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate segments: %s", ErrStorageUnavailable, err)
	}
	return segments, nil
}

// Generation increments on every successful append. Cache keys include
// it, so cached aggregates can never outlive a write.
func (s *SegmentStore) Generation() int64 {
	return s.generation.Load()
}

func (s *SegmentStore) Close() error {
	return s.db.Close()
}
