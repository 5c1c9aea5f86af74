package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/careerforge/interviewer/internal/model/candidate"
	"github.com/careerforge/interviewer/internal/model/interview"
)

// SQLiteStore implements Repository using SQLite. Reports are stored as JSON
// blobs alongside their candidate, newest last.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at dbPath and prepares
// the schema.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		resume_text TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS final_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		candidate_id TEXT NOT NULL REFERENCES candidates(id),
		report_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reports_candidate ON final_reports(candidate_id, id);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CreateCandidate inserts a new candidate row.
func (s *SQLiteStore) CreateCandidate(ctx context.Context, c *candidate.Candidate) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO candidates (id, name, email, resume_text, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.ResumeText, c.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

// GetCandidate retrieves a candidate by ID.
func (s *SQLiteStore) GetCandidate(ctx context.Context, id string) (*candidate.Candidate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, resume_text, created_at FROM candidates WHERE id = ?`, id)

	var c candidate.Candidate
	var createdAt int64
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.ResumeText, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan candidate row: %w", err)
	}

	c.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &c, nil
}

// SaveReport appends a report for the candidate.
func (s *SQLiteStore) SaveReport(ctx context.Context, candidateID string, report *interview.FinalReport) error {
	blob, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO final_reports (candidate_id, report_json, created_at) VALUES (?, ?, ?)`,
		candidateID, string(blob), time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// LatestReport returns the most recent report for the candidate.
func (s *SQLiteStore) LatestReport(ctx context.Context, candidateID string) (*interview.FinalReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT report_json FROM final_reports WHERE candidate_id = ? ORDER BY id DESC LIMIT 1`,
		candidateID)

	var blob string
	err := row.Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan report row: %w", err)
	}

	var report interview.FinalReport
	if err := json.Unmarshal([]byte(blob), &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
