package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Status is the outcome of one session visit.
type Status string

const (
	StatusSaved   Status = "saved"   // Table decoded and written
	StatusMissing Status = "missing" // No usable table on the page
	StatusFailed  Status = "failed"  // Page could not be rendered
)

// Visit records a single session page visit.
type Visit struct {
	RunID     string
	Year      int
	Race      string
	Session   string
	URL       string
	Status    Status
	Rows      int
	Path      string // Output file, empty unless Status is StatusSaved
	Error     string
	Duration  time.Duration
	CreatedAt time.Time
}

// Filter narrows Query results. Zero values match everything.
type Filter struct {
	RunID  string
	Year   int
	Status Status
	Limit  int
}

// NewRunID returns a fresh identifier grouping the visits of one run.
func NewRunID() string {
	return uuid.NewString()
}

const schema = `
CREATE TABLE IF NOT EXISTS session_visits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	year INTEGER NOT NULL,
	race TEXT NOT NULL,
	session TEXT NOT NULL,
	url TEXT NOT NULL,
	status TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	path TEXT,
	error TEXT,
	duration_ms INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS session_visits_run ON session_visits (run_id);
`

// Store is a SQLite ledger of session visits.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the ledger at dsn.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create manifest schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends v to the ledger.
func (s *Store) Record(ctx context.Context, v Visit) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO session_visits (
		run_id, year, race, session, url, status, row_count, path, error, duration_ms, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		v.RunID,
		v.Year,
		v.Race,
		v.Session,
		v.URL,
		string(v.Status),
		v.Rows,
		v.Path,
		v.Error,
		v.Duration.Milliseconds(),
		v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// Query returns matching visits in insertion order.
func (s *Store) Query(ctx context.Context, filter Filter) ([]Visit, error) {
	query := `SELECT run_id, year, race, session, url, status, row_count, path, error, duration_ms, created_at FROM session_visits WHERE 1=1`
	args := []any{}

	if filter.RunID != "" {
		query += ` AND run_id = ?`
		args = append(args, filter.RunID)
	}
	if filter.Year != 0 {
		query += ` AND year = ?`
		args = append(args, filter.Year)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}

	query += ` ORDER BY id ASC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var status string
		var path, errText sql.NullString
		var durationMs int64

		if err := rows.Scan(
			&v.RunID, &v.Year, &v.Race, &v.Session, &v.URL, &status,
			&v.Rows, &path, &errText, &durationMs, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}

		v.Status = Status(status)
		v.Path = path.String
		v.Error = errText.String
		v.Duration = time.Duration(durationMs) * time.Millisecond
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read visits: %w", err)
	}

	return visits, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
