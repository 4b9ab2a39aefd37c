// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Version is an immutable snapshot of a project's generated page markup.
// Versions form a linear, append-only chain per project; exactly one version
// per project carries IsCurrent=true at any time. The flag is flipped
// atomically with the creation of the superseding version.
type Version struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Number    int       `json:"number"`
	HTML      string    `json:"html"`
	Prompt    *string   `json:"prompt,omitempty"`
	Model     *string   `json:"model,omitempty"`
	IsCurrent bool      `json:"is_current"`
	CreatedAt time.Time `json:"created_at"`
}
