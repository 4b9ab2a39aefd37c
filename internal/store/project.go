// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL persistence layer: one store per
// aggregate (projects, versions, assets, scrape logs) over database/sql.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"brandforge/internal/models"
)

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Create inserts a new project and returns it with the generated ID.
func (s *ProjectStore) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	result := &models.Project{}
	var styleJSON []byte
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO projects (name, source_url, brand, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, source_url, brand, status, style, created_at, updated_at
	`, p.Name, p.SourceURL, p.Brand, p.Status).Scan(
		&result.ID, &result.Name, &result.SourceURL, &result.Brand,
		&result.Status, &styleJSON, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if err := unmarshalStyle(styleJSON, result); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByID retrieves a project by its UUID. Returns nil if not found.
func (s *ProjectStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p := &models.Project{}
	var styleJSON []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_url, brand, status, style, created_at, updated_at
		FROM projects WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.SourceURL, &p.Brand,
		&p.Status, &styleJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	if err := unmarshalStyle(styleJSON, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all projects, newest first.
func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source_url, brand, status, style, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		var p models.Project
		var styleJSON []byte
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SourceURL, &p.Brand,
			&p.Status, &styleJSON, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if err := unmarshalStyle(styleJSON, &p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// UpdateStatus sets a project's lifecycle status.
func (s *ProjectStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE projects SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	return nil
}

// UpdateStyle replaces a project's style wholesale. The style is never
// patched field-by-field; callers merge first, then store the full copy.
func (s *ProjectStore) UpdateStyle(ctx context.Context, id uuid.UUID, style *models.SiteStyle) error {
	styleJSON, err := json.Marshal(style)
	if err != nil {
		return fmt.Errorf("marshal style: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE projects SET style = $1, updated_at = now() WHERE id = $2
	`, styleJSON, id)
	if err != nil {
		return fmt.Errorf("update project style: %w", err)
	}
	return nil
}

// unmarshalStyle decodes the style JSONB column into the project, leaving
// Style nil for a NULL column.
func unmarshalStyle(data []byte, p *models.Project) error {
	if len(data) == 0 {
		return nil
	}
	style := &models.SiteStyle{}
	if err := json.Unmarshal(data, style); err != nil {
		return fmt.Errorf("unmarshal project style: %w", err)
	}
	p.Style = style
	return nil
}
