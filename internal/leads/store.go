// Package leads persists and serves audit-request and resource-download
// form submissions.
package leads

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Lead is one form submission. SubmissionType is "audit" or "resource";
// ResourceSlug is set only for resource downloads.
type Lead struct {
	ID             int64
	FName          string
	Email          string
	SubmissionType string
	ResourceSlug   string
	CreatedAt      time.Time
}

// Store wraps the SQLite leads database
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL with a busy timeout lets the pipeline and the lead server share
	// the file; synchronous=NORMAL is safe under WAL
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, fmt.Errorf("configure database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS leads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    fname TEXT NOT NULL,
    email TEXT NOT NULL,
    submission_type TEXT NOT NULL,
    resource_slug TEXT,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// InsertLead stores a submission and returns its id
func (s *Store) InsertLead(ctx context.Context, lead Lead) (int64, error) {
	createdAt := lead.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var resourceSlug interface{}
	if lead.ResourceSlug != "" {
		resourceSlug = lead.ResourceSlug
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (fname, email, submission_type, resource_slug, created_at) VALUES (?, ?, ?, ?, ?)`,
		lead.FName, lead.Email, lead.SubmissionType, resourceSlug, createdAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}
	return res.LastInsertId()
}

// ListLeads returns submissions, newest first
func (s *Store) ListLeads(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fname, email, submission_type, COALESCE(resource_slug, ''), created_at FROM leads ORDER BY id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var l Lead
		var createdAt string
		if err := rows.Scan(&l.ID, &l.FName, &l.Email, &l.SubmissionType, &l.ResourceSlug, &createdAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
