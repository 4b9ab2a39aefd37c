// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"brandforge/internal/models"
)

// ScrapeLogStore appends scrape audit records. Records are write-once;
// there is deliberately no update operation.
type ScrapeLogStore struct {
	db *sql.DB
}

// NewScrapeLogStore creates a new ScrapeLogStore with the given database connection.
func NewScrapeLogStore(db *sql.DB) *ScrapeLogStore {
	return &ScrapeLogStore{db: db}
}

// Insert appends one audit record.
func (s *ScrapeLogStore) Insert(ctx context.Context, entry *models.ScrapeLog) error {
	found, err := json.Marshal(entry.AssetsFound)
	if err != nil {
		return fmt.Errorf("marshal assets found: %w", err)
	}

	var errs []byte
	if len(entry.Errors) > 0 {
		errs, err = json.Marshal(entry.Errors)
		if err != nil {
			return fmt.Errorf("marshal scrape errors: %w", err)
		}
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO scrape_logs (project_id, url, success, assets_found, errors, duration_ms, retries)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, entry.ProjectID, entry.URL, entry.Success, found, errs,
		entry.DurationMS, entry.Retries,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert scrape log: %w", err)
	}
	return nil
}

// ListByProject returns a project's scrape history, newest first.
func (s *ScrapeLogStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ScrapeLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, url, success, assets_found, errors, duration_ms, retries, created_at
		FROM scrape_logs
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list scrape logs: %w", err)
	}
	defer rows.Close()

	var items []models.ScrapeLog
	for rows.Next() {
		var entry models.ScrapeLog
		var found, errs []byte
		if err := rows.Scan(
			&entry.ID, &entry.ProjectID, &entry.URL, &entry.Success,
			&found, &errs, &entry.DurationMS, &entry.Retries, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan scrape log: %w", err)
		}
		if len(found) > 0 {
			if err := json.Unmarshal(found, &entry.AssetsFound); err != nil {
				return nil, fmt.Errorf("unmarshal assets found: %w", err)
			}
		}
		if len(errs) > 0 {
			if err := json.Unmarshal(errs, &entry.Errors); err != nil {
				return nil, fmt.Errorf("unmarshal scrape errors: %w", err)
			}
		}
		items = append(items, entry)
	}
	return items, rows.Err()
}
