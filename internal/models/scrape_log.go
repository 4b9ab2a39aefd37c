// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetsFound summarises what a scrape attempt discovered.
type AssetsFound struct {
	Colors     int  `json:"colors"`
	Fonts      int  `json:"fonts"`
	Images     int  `json:"images"`
	Logo       bool `json:"logo"`
	Screenshot bool `json:"screenshot"`
}

// ScrapeLog is an append-only audit record written once per scrape attempt,
// success or failure. Records are never updated.
type ScrapeLog struct {
	ID          uuid.UUID   `json:"id"`
	ProjectID   uuid.UUID   `json:"project_id"`
	URL         string      `json:"url"`
	Success     bool        `json:"success"`
	AssetsFound AssetsFound `json:"assets_found"`
	Errors      []string    `json:"errors,omitempty"`
	DurationMS  int64       `json:"duration_ms"`
	Retries     int         `json:"retries"`
	CreatedAt   time.Time   `json:"created_at"`
}
