package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"qpcrfold/domain/core"
	"qpcrfold/domain/qpcr"
	"qpcrfold/ports"
)

// resultRepository implements the ResultRepository interface
type resultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new analysis result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &resultRepository{db: db}
}

// Schema creates the analysis_results table if missing.
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_results (
	id          TEXT PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL,
	reference   TEXT NOT NULL,
	payload     JSONB NOT NULL
)`

// Migrate applies the repository schema.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate analysis_results: %w", err)
	}
	return nil
}

// Save inserts a completed analysis result.
func (r *resultRepository) Save(ctx context.Context, result *qpcr.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `INSERT INTO analysis_results (id, created_at, reference, payload)
	VALUES ($1, $2, $3, $4)`

	_, err = r.db.ExecContext(ctx, query,
		result.ID, result.CreatedAt.Time(), result.FoldChange.Reference, payload)
	if err != nil {
		return fmt.Errorf("failed to save analysis result: %w", err)
	}
	return nil
}

// GetByID retrieves an analysis result by its ID.
func (r *resultRepository) GetByID(ctx context.Context, id core.ID) (*qpcr.Result, error) {
	query := `SELECT payload FROM analysis_results WHERE id = $1`

	var payload []byte
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrResultNotFound, id)
		}
		return nil, fmt.Errorf("failed to get analysis result: %w", err)
	}

	var result qpcr.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}
	return &result, nil
}

// List retrieves recent analysis results, newest first.
func (r *resultRepository) List(ctx context.Context, limit, offset int) ([]*qpcr.Result, error) {
	query := `SELECT payload FROM analysis_results
	ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis results: %w", err)
	}
	defer rows.Close()

	var results []*qpcr.Result
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan analysis result: %w", err)
		}
		var result qpcr.Result
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}

// Delete removes an analysis result.
func (r *resultRepository) Delete(ctx context.Context, id core.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analysis_results WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis result: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", core.ErrResultNotFound, id)
	}
	return nil
}
