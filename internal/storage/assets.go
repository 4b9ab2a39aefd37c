// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"brandforge/internal/models"
	"brandforge/internal/scrape"
)

// FallbackImages are the stock images substituted when no scraped image
// survives persistence, so generated pages always have visual assets.
var FallbackImages = []string{
	"https://images.unsplash.com/photo-1606857521015-7f9fcf423740?w=1200&q=80",
	"https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?w=1200&q=80",
}

// validImageExtensions are the file suffixes accepted for pass-through
// remote images.
var validImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// AssetRecorder persists asset provenance records. Implemented by the
// store package.
type AssetRecorder interface {
	Insert(ctx context.Context, asset *models.Asset) error
}

// Pipeline implements the scraper's asset sink: it uploads screenshots to
// object storage, filters and records pass-through image URLs, and
// substitutes stock fallbacks when nothing survives.
type Pipeline struct {
	s3      *Client // may be nil when storage is not configured
	records AssetRecorder

	// now is swappable in tests so storage keys are deterministic.
	now func() time.Time
}

// NewPipeline wires the asset persistence pipeline.
func NewPipeline(s3 *Client, records AssetRecorder) *Pipeline {
	return &Pipeline{s3: s3, records: records, now: time.Now}
}

// UploadScreenshot stores a screenshot blob and returns its durable public
// URL. Fails when object storage is not configured or the blob is empty;
// the scraper treats that as a degraded (screenshot-less) result.
func (p *Pipeline) UploadScreenshot(ctx context.Context, projectID uuid.UUID, data []byte) (string, error) {
	if p.s3 == nil {
		return "", errors.New("storage: object storage not configured")
	}
	if len(data) == 0 {
		return "", errors.New("storage: screenshot blob is empty")
	}

	key := fmt.Sprintf("%s/%d-screenshot.jpg", projectID, p.now().UnixMilli())
	if err := p.s3.Upload(ctx, key, "image/jpeg", data); err != nil {
		return "", err
	}

	fileURL := p.s3.FileURL(key)
	p.record(ctx, projectID, models.AssetTypeScreenshot, fileURL, &key)
	return fileURL, nil
}

// StoreProjectAssets persists the extracted asset candidates. The
// screenshot URL was already uploaded by the scraper, so only its record is
// written here. Images and logo are validated, recorded, and passed through
// by URL; per-asset failures are absorbed. When zero images survive, the
// fixed stock pair is substituted.
func (p *Pipeline) StoreProjectAssets(ctx context.Context, projectID uuid.UUID, candidates scrape.CandidateAssets) (scrape.StoredAssets, error) {
	stored := scrape.StoredAssets{Screenshot: candidates.Screenshot}

	if candidates.Logo != "" {
		if logo := p.storeImageURL(ctx, projectID, models.AssetTypeLogo, candidates.Logo); logo != "" {
			stored.Logo = logo
		}
	}

	for _, img := range candidates.Images {
		if kept := p.storeImageURL(ctx, projectID, models.AssetTypeImage, img); kept != "" {
			stored.Images = append(stored.Images, kept)
		}
	}

	if len(stored.Images) == 0 {
		stored.Images = append([]string(nil), FallbackImages...)
	}

	return stored, nil
}

// storeImageURL validates a remote image URL, writes its provenance record,
// and returns the URL to keep, or "" to drop it.
func (p *Pipeline) storeImageURL(ctx context.Context, projectID uuid.UUID, assetType models.AssetType, rawURL string) string {
	// Inline data URIs are never stored as asset references; logos
	// extracted from inline SVGs are the one exception, passed through
	// as-is without a record.
	if strings.HasPrefix(rawURL, "data:") {
		if assetType == models.AssetTypeLogo {
			return rawURL
		}
		return ""
	}

	// Unsplash URLs are known-good; normalize the sizing parameters.
	if strings.Contains(rawURL, "images.unsplash.com") {
		if !strings.Contains(rawURL, "?") {
			rawURL += "?w=1200&q=80"
		}
		p.record(ctx, projectID, assetType, rawURL, nil)
		return rawURL
	}

	if !hasImageExtension(rawURL) {
		slog.Debug("dropping asset without image extension", "url", rawURL)
		return ""
	}

	p.record(ctx, projectID, assetType, rawURL, nil)
	return rawURL
}

// record writes one provenance row; failures are logged, never propagated.
func (p *Pipeline) record(ctx context.Context, projectID uuid.UUID, assetType models.AssetType, fileURL string, storageKey *string) {
	if p.records == nil {
		return
	}
	err := p.records.Insert(ctx, &models.Asset{
		ProjectID:  projectID,
		Type:       assetType,
		URL:        fileURL,
		StorageKey: storageKey,
	})
	if err != nil {
		slog.Warn("failed to record asset", "project_id", projectID, "type", assetType, "error", err)
	}
}

// hasImageExtension checks the URL path against the accepted suffixes.
func hasImageExtension(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range validImageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
