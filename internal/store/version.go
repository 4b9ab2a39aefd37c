// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"brandforge/internal/models"
)

// VersionStore manages the append-only version chain of generated pages.
type VersionStore struct {
	db *sql.DB
}

// NewVersionStore creates a new VersionStore with the given database connection.
func NewVersionStore(db *sql.DB) *VersionStore {
	return &VersionStore{db: db}
}

// Create appends a new version and marks it current. Clearing the previous
// current flag and inserting the new row happen in one transaction, so
// there is never a window with zero or two current versions.
func (s *VersionStore) Create(ctx context.Context, v *models.Version) (*models.Version, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin version tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE versions SET is_current = false
		WHERE project_id = $1 AND is_current = true
	`, v.ProjectID); err != nil {
		return nil, fmt.Errorf("clear current version: %w", err)
	}

	result := &models.Version{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO versions (project_id, number, html, prompt, model, is_current)
		VALUES (
			$1,
			COALESCE((SELECT MAX(number) FROM versions WHERE project_id = $1), 0) + 1,
			$2, $3, $4, true
		)
		RETURNING id, project_id, number, html, prompt, model, is_current, created_at
	`, v.ProjectID, v.HTML, v.Prompt, v.Model).Scan(
		&result.ID, &result.ProjectID, &result.Number, &result.HTML,
		&result.Prompt, &result.Model, &result.IsCurrent, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit version tx: %w", err)
	}
	return result, nil
}

// Current returns the project's current version, or nil if the project has
// no versions yet.
func (s *VersionStore) Current(ctx context.Context, projectID uuid.UUID) (*models.Version, error) {
	v := &models.Version{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, number, html, prompt, model, is_current, created_at
		FROM versions
		WHERE project_id = $1 AND is_current = true
	`, projectID).Scan(
		&v.ID, &v.ProjectID, &v.Number, &v.HTML,
		&v.Prompt, &v.Model, &v.IsCurrent, &v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find current version: %w", err)
	}
	return v, nil
}

// ListByProject returns a project's version chain, newest first.
func (s *VersionStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Version, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, number, html, prompt, model, is_current, created_at
		FROM versions
		WHERE project_id = $1
		ORDER BY number DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var items []models.Version
	for rows.Next() {
		var v models.Version
		if err := rows.Scan(
			&v.ID, &v.ProjectID, &v.Number, &v.HTML,
			&v.Prompt, &v.Model, &v.IsCurrent, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}
