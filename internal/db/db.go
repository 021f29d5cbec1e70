// Package db persists parsed resumes and job analyses.
//
// Two backends implement Store: Postgres (pgx) for deployments and SQLite
// (modernc) for local runs and tests. Open picks one from the database URL.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/arete/internal/types"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence layer used by the HTTP handlers.
type Store interface {
	CreateResume(ctx context.Context, r *types.Resume) error
	GetResume(ctx context.Context, id string) (*types.Resume, error)
	SaveOptimizedResume(ctx context.Context, id string, data *types.ResumeData) error
	CreateJob(ctx context.Context, j *types.Job) error
	GetJob(ctx context.Context, id string) (*types.Job, error)
	Close() error
}

const sqlitePrefix = "sqlite://"

// Open connects to databaseURL. "sqlite://path" (or "sqlite://:memory:")
// selects SQLite; anything else is handed to pgx. The schema is created if
// missing.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	if path, ok := strings.CutPrefix(databaseURL, sqlitePrefix); ok {
		return OpenSQLite(ctx, path)
	}
	pg, err := Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	return pg, nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// encode marshals a JSON column value.
func encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal column: %w", err)
	}
	return b, nil
}

// decodeOptional unmarshals a nullable JSON column; NULL yields nil.
func decodeOptional(raw []byte) (*types.ResumeData, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode optimized data: %w", err)
	}
	return &data, nil
}
