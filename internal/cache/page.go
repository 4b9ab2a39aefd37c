// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache for generated page HTML. The
// current version of each project is cached on first serve and invalidated
// whenever generation or an edit appends a new version.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached generated pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a generated page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages generated-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves the cached HTML for a project's current version.
func (pc *PageCache) Get(ctx context.Context, projectID uuid.UUID) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+projectID.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "project_id", projectID, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "project_id", projectID)
	return val, true
}

// Set stores the current version's HTML with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, projectID uuid.UUID, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+projectID.String(), html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "project_id", projectID, "error", err)
	}
}

// Invalidate removes a project's cached page. Called whenever a new version
// becomes current.
func (pc *PageCache) Invalidate(ctx context.Context, projectID uuid.UUID) {
	if err := pc.client.Del(ctx, pageKeyPrefix+projectID.String()).Err(); err != nil {
		slog.Warn("page cache invalidate error", "project_id", projectID, "error", err)
	}
	slog.Debug("page cache invalidated", "project_id", projectID)
}
