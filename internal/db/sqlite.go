package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/arete/internal/types"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS resumes (
	id             TEXT PRIMARY KEY,
	filename       TEXT NOT NULL,
	storage_path   TEXT NOT NULL DEFAULT '',
	github_url     TEXT NOT NULL DEFAULT '',
	parsed_data    TEXT NOT NULL,
	optimized_data TEXT,
	status         TEXT NOT NULL DEFAULT 'parsed',
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	job_text   TEXT NOT NULL DEFAULT '',
	job_url    TEXT NOT NULL DEFAULT '',
	analysis   TEXT NOT NULL,
	created_at DATETIME NOT NULL
);`

// SQLite is a Store backed by a SQLite file or in-memory database.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at path and ensures the schema
// exists. ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writes.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return &SQLite{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) CreateResume(ctx context.Context, r *types.Resume) error {
	parsed, err := encode(r.ParsedData)
	if err != nil {
		return err
	}
	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resumes (id, filename, storage_path, github_url, parsed_data, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Filename, r.StoragePath, r.GitHubURL, string(parsed), r.Status, now, now,
	)
	if err != nil {
		return fmt.Errorf("creating resume %s: %w", r.ID, err)
	}
	r.CreatedAt, r.UpdatedAt = now, now
	return nil
}

func (s *SQLite) GetResume(ctx context.Context, id string) (*types.Resume, error) {
	var (
		r         types.Resume
		parsed    string
		optimized sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, storage_path, github_url, parsed_data, optimized_data,
		        status, created_at, updated_at
		 FROM resumes WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Filename, &r.StoragePath, &r.GitHubURL, &parsed, &optimized,
		&r.Status, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("resume", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting resume %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(parsed), &r.ParsedData); err != nil {
		return nil, fmt.Errorf("failed to decode parsed data: %w", err)
	}
	if optimized.Valid {
		if r.OptimizedData, err = decodeOptional([]byte(optimized.String)); err != nil {
			return nil, err
		}
	}
	r.ParsedData.ID = r.ID
	return &r, nil
}

func (s *SQLite) SaveOptimizedResume(ctx context.Context, id string, data *types.ResumeData) error {
	optimized, err := encode(data)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE resumes SET optimized_data = ?, updated_at = ? WHERE id = ?`,
		string(optimized), s.now(), id,
	)
	if err != nil {
		return fmt.Errorf("saving optimized resume %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving optimized resume %s: %w", id, err)
	}
	if n == 0 {
		return notFound("resume", id)
	}
	return nil
}

func (s *SQLite) CreateJob(ctx context.Context, j *types.Job) error {
	analysis, err := encode(j.Analysis)
	if err != nil {
		return err
	}
	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, company, job_text, job_url, analysis, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Title, j.Company, j.JobText, j.JobURL, string(analysis), now,
	)
	if err != nil {
		return fmt.Errorf("creating job %s: %w", j.ID, err)
	}
	j.CreatedAt = now
	return nil
}

func (s *SQLite) GetJob(ctx context.Context, id string) (*types.Job, error) {
	var (
		j        types.Job
		analysis string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, company, job_text, job_url, analysis, created_at
		 FROM jobs WHERE id = ?`,
		id,
	).Scan(&j.ID, &j.Title, &j.Company, &j.JobText, &j.JobURL, &analysis, &j.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("job", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting job %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(analysis), &j.Analysis); err != nil {
		return nil, fmt.Errorf("failed to decode job analysis: %w", err)
	}
	j.Analysis.ID = j.ID
	return &j, nil
}
