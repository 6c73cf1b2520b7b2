package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateRun records the start of a pipeline run
func (db *DB) CreateRun(ctx context.Context, runID uuid.UUID, source string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pipeline_runs (id, source, status) VALUES ($1, $2, $3)`,
		runID, source, RunStatusRunning,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun marks a pipeline run as finished. runErr, when non-nil, marks it
// failed and stores the message.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, runErr error) error {
	status := RunStatusCompleted
	var msg *string
	if runErr != nil {
		status = RunStatusFailed
		s := runErr.Error()
		msg = &s
	}

	_, err := db.pool.Exec(ctx,
		`UPDATE pipeline_runs SET status = $1, error = $2, completed_at = NOW() WHERE id = $3`,
		status, msg, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// LinkExecutive stores the executive id a run published
func (db *DB) LinkExecutive(ctx context.Context, runID uuid.UUID, executiveID int64) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE pipeline_runs SET executive_id = $1 WHERE id = $2`,
		executiveID, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to link executive to run: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact for a pipeline run
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, step, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// SaveTextArtifact stores a text artifact (résumé text, SQL script) for a pipeline run
func (db *DB) SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, text string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, text_content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET text_content = $3, created_at = NOW()`,
		runID, step, text,
	)
	if err != nil {
		return fmt.Errorf("failed to save text artifact %s: %w", step, err)
	}
	return nil
}

// GetArtifact retrieves an artifact by run ID and step. It returns nil when
// the run has no artifact for step.
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, step string) (*Artifact, error) {
	artifact := Artifact{RunID: runID, Step: step}
	var content []byte
	var text *string
	err := db.pool.QueryRow(ctx,
		`SELECT id, content, text_content, created_at FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&artifact.ID, &content, &text, &artifact.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", step, err)
	}
	artifact.Content = content
	if text != nil {
		artifact.TextContent = *text
	}
	return &artifact, nil
}

// GetRun retrieves a pipeline run by ID
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, source, status, error, executive_id, created_at, completed_at
		 FROM pipeline_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Source, &run.Status, &run.Error, &run.ExecutiveID, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent pipeline runs, newest first
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, source, status, error, executive_id, created_at, completed_at
		 FROM pipeline_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Source, &run.Status, &run.Error, &run.ExecutiveID, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
