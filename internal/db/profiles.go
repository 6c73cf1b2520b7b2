package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/profile-builder/internal/types"
)

// InsertProfile publishes p in one transaction: the executives row first,
// then one highlight per role and one strength per core strength, each with a
// 1-based display_order in profile order. It returns the new executive id.
func (db *DB) InsertProfile(ctx context.Context, p *types.Profile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO executives (title, gender, experience, sector_focus, location)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.Title, p.Gender, p.ExperienceSummary, p.SectorFocus, p.Location,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert executive: %w", err)
	}

	batch := &pgx.Batch{}
	for i, role := range p.Experience {
		batch.Queue(
			`INSERT INTO executive_highlights (executive_id, position_title, company_description, details, display_order)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, role.JobTitle, role.Description, role.Details(), i+1,
		)
	}
	for i, strength := range p.CoreStrengths {
		batch.Queue(
			`INSERT INTO executive_strengths (executive_id, strength_description, display_order)
			 VALUES ($1, $2, $3)`,
			id, strength, i+1,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("failed to insert highlights and strengths: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit profile: %w", err)
	}
	return id, nil
}

// GetExecutive reads a published profile back. Achievements are split from
// the stored details column. It returns nil when id does not exist.
func (db *DB) GetExecutive(ctx context.Context, id int64) (*Executive, error) {
	exec := Executive{ID: id}
	p := &exec.Profile
	err := db.pool.QueryRow(ctx,
		`SELECT title, gender, experience, sector_focus, location, created_at
		 FROM executives WHERE id = $1`,
		id,
	).Scan(&p.Title, &p.Gender, &p.ExperienceSummary, &p.SectorFocus, &p.Location, &exec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get executive: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT position_title, company_description, details
		 FROM executive_highlights WHERE executive_id = $1 ORDER BY display_order`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get highlights: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var role types.Role
		var details string
		if err := rows.Scan(&role.JobTitle, &role.Description, &details); err != nil {
			return nil, fmt.Errorf("failed to scan highlight: %w", err)
		}
		role.Achievements = types.SplitDetails(details)
		p.Experience = append(p.Experience, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read highlights: %w", err)
	}

	strengths, err := db.pool.Query(ctx,
		`SELECT strength_description FROM executive_strengths WHERE executive_id = $1 ORDER BY display_order`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get strengths: %w", err)
	}
	p.CoreStrengths, err = pgx.CollectRows(strengths, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read strengths: %w", err)
	}

	p.Normalize()
	return &exec, nil
}
