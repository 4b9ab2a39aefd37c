// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the core data types shared across the application:
// projects, generated page versions, scraped assets, site styles, and
// scrape audit logs.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusNew       ProjectStatus = "new"
	ProjectStatusScraping  ProjectStatus = "scraping"
	ProjectStatusScraped   ProjectStatus = "scraped"
	ProjectStatusGenerated ProjectStatus = "generated"
	ProjectStatusFailed    ProjectStatus = "failed"
)

// Project represents one landing-page project built from a source website.
// The Style field holds the brand assets extracted by the scraper and is
// replaced wholesale on re-scrape or user override, never patched in place.
type Project struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	SourceURL string        `json:"source_url"`
	Brand     *string       `json:"brand,omitempty"`
	Status    ProjectStatus `json:"status"`
	Style     *SiteStyle    `json:"style,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
