package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/arete/internal/types"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS resumes (
	id             UUID PRIMARY KEY,
	filename       TEXT NOT NULL,
	storage_path   TEXT NOT NULL DEFAULT '',
	github_url     TEXT NOT NULL DEFAULT '',
	parsed_data    JSONB NOT NULL,
	optimized_data JSONB,
	status         TEXT NOT NULL DEFAULT 'parsed',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS jobs (
	id         UUID PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	job_text   TEXT NOT NULL DEFAULT '',
	job_url    TEXT NOT NULL DEFAULT '',
	analysis   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Migrate creates the tables if they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// CreateResume inserts a resume record. Timestamps are set by the database
// and written back to r.
func (p *Postgres) CreateResume(ctx context.Context, r *types.Resume) error {
	parsed, err := encode(r.ParsedData)
	if err != nil {
		return err
	}
	err = p.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, filename, storage_path, github_url, parsed_data, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		r.ID, r.Filename, r.StoragePath, r.GitHubURL, parsed, r.Status,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// GetResume retrieves a resume by ID
func (p *Postgres) GetResume(ctx context.Context, id string) (*types.Resume, error) {
	var (
		r                 types.Resume
		parsed, optimized []byte
	)
	err := p.pool.QueryRow(ctx,
		`SELECT id::text, filename, storage_path, github_url, parsed_data, optimized_data,
		        status, created_at, updated_at
		 FROM resumes WHERE id::text = $1`,
		id,
	).Scan(&r.ID, &r.Filename, &r.StoragePath, &r.GitHubURL, &parsed, &optimized,
		&r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("resume", id)
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(parsed, &r.ParsedData); err != nil {
		return nil, fmt.Errorf("failed to decode parsed data: %w", err)
	}
	if r.OptimizedData, err = decodeOptional(optimized); err != nil {
		return nil, err
	}
	r.ParsedData.ID = r.ID
	return &r, nil
}

// SaveOptimizedResume stores the optimized version of a resume.
func (p *Postgres) SaveOptimizedResume(ctx context.Context, id string, data *types.ResumeData) error {
	optimized, err := encode(data)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE resumes SET optimized_data = $1, updated_at = $2 WHERE id::text = $3`,
		optimized, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to save optimized resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("resume", id)
	}
	return nil
}

// CreateJob inserts a job record.
func (p *Postgres) CreateJob(ctx context.Context, j *types.Job) error {
	analysis, err := encode(j.Analysis)
	if err != nil {
		return err
	}
	err = p.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, title, company, job_text, job_url, analysis)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		j.ID, j.Title, j.Company, j.JobText, j.JobURL, analysis,
	).Scan(&j.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID
func (p *Postgres) GetJob(ctx context.Context, id string) (*types.Job, error) {
	var (
		j        types.Job
		analysis []byte
	)
	err := p.pool.QueryRow(ctx,
		`SELECT id::text, title, company, job_text, job_url, analysis, created_at
		 FROM jobs WHERE id::text = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.Company, &j.JobText, &j.JobURL, &analysis, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("job", id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if err := json.Unmarshal(analysis, &j.Analysis); err != nil {
		return nil, fmt.Errorf("failed to decode job analysis: %w", err)
	}
	j.Analysis.ID = j.ID
	return &j, nil
}
