// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetType classifies a stored project asset.
type AssetType string

const (
	AssetTypeImage      AssetType = "image"
	AssetTypeLogo       AssetType = "logo"
	AssetTypeScreenshot AssetType = "screenshot"
)

// Asset is a provenance record for a logo, image, or screenshot associated
// with a project. URL is the durable public URL; StorageKey is set only for
// objects we uploaded ourselves (screenshots), not for pass-through remote
// images.
type Asset struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Type       AssetType `json:"type"`
	URL        string    `json:"url"`
	StorageKey *string   `json:"storage_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
