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

// AssetStore persists asset provenance records.
type AssetStore struct {
	db *sql.DB
}

// NewAssetStore creates a new AssetStore with the given database connection.
func NewAssetStore(db *sql.DB) *AssetStore {
	return &AssetStore{db: db}
}

// Insert writes one asset record.
func (s *AssetStore) Insert(ctx context.Context, a *models.Asset) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO assets (project_id, type, url, storage_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.ProjectID, a.Type, a.URL, a.StorageKey).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// ListByProject returns a project's assets, newest first.
func (s *AssetStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, type, url, storage_key, created_at
		FROM assets
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var items []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(
			&a.ID, &a.ProjectID, &a.Type, &a.URL, &a.StorageKey, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
