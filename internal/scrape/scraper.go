// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"brandforge/internal/imaging"
	"brandforge/internal/models"
)

const (
	// maxScrapeRetries caps whole-sequence retries on network-class errors.
	maxScrapeRetries = 3

	// screenshotWait is the page wait for the primary screenshot request.
	screenshotWait = 5 * time.Second

	// fallbackWait is the longer unconditional wait used when the primary
	// screenshot fails validation.
	fallbackWait = 10 * time.Second
)

// CandidateAssets are the resolved URLs discovered by extraction, handed to
// the asset sink for persistence.
type CandidateAssets struct {
	Images     []string
	Logo       string
	Screenshot string
}

// StoredAssets are the durable URLs the sink produced. Images is never
// empty: the sink substitutes stock fallbacks when nothing survives.
type StoredAssets struct {
	Images     []string
	Logo       string
	Screenshot string
}

// AssetSink persists discovered assets and issues durable public URLs.
// Implemented by the storage package.
type AssetSink interface {
	UploadScreenshot(ctx context.Context, projectID uuid.UUID, data []byte) (string, error)
	StoreProjectAssets(ctx context.Context, projectID uuid.UUID, candidates CandidateAssets) (StoredAssets, error)
}

// LogStore records scrape audit entries. Implemented by the store package.
type LogStore interface {
	Insert(ctx context.Context, entry *models.ScrapeLog) error
}

// Scraper orchestrates the full acquisition sequence: markup fetch,
// best-effort screenshot with validation and fallback, palette extraction,
// asset extraction and persistence, and audit logging.
type Scraper struct {
	client  *Client
	assets  AssetSink
	logs    LogStore
	metrics *Metrics

	// genConfigured mirrors whether the generation service credentials are
	// present; scraping a project the pipeline can never generate for is
	// refused up front.
	genConfigured bool

	// Injectable for tests.
	validate func(data []byte) bool
	palette  func(data []byte) ([]models.RGB, error)
	sleep    func(time.Duration)
}

// NewScraper wires a scraping orchestrator.
func NewScraper(client *Client, assets AssetSink, logs LogStore, metrics *Metrics, genConfigured bool) *Scraper {
	return &Scraper{
		client:        client,
		assets:        assets,
		logs:          logs,
		metrics:       metrics,
		genConfigured: genConfigured,
		validate: func(data []byte) bool {
			return imaging.Validate(data, imaging.DefaultTimeout)
		},
		palette: func(data []byte) ([]models.RGB, error) {
			return imaging.Palette(data, imaging.PaletteSize, imaging.DefaultTimeout)
		},
		sleep: time.Sleep,
	}
}

// Scrape runs the acquisition sequence for target and returns the extracted
// site style. It fails only on configuration, invalid-url, quota-exceeded,
// or exhausted network errors; screenshot and palette failures degrade to a
// reduced asset set. Exactly one audit log entry is written per call.
func (s *Scraper) Scrape(ctx context.Context, target string, projectID uuid.UUID, brand string) (*models.SiteStyle, error) {
	start := time.Now()
	retries := 0
	target = strings.TrimSpace(target)

	fail := func(err error) (*models.SiteStyle, error) {
		s.metrics.IncScrape("failure")
		s.metrics.IncError(errorTypeLabel(err))
		s.writeLog(ctx, projectID, target, false, models.AssetsFound{}, []string{err.Error()}, start, retries)
		return nil, err
	}

	if !s.client.Configured() {
		return fail(ErrConfiguration{Missing: "SCRAPE_API_KEY"})
	}
	if !s.genConfigured {
		return fail(ErrConfiguration{Missing: "AI_API_KEY"})
	}
	if !ValidateURL(target) {
		return fail(ErrInvalidURL{URL: target})
	}

	var result *models.ScrapeResult
	var err error
	for attempt := 1; attempt <= maxScrapeRetries; attempt++ {
		result, err = s.attempt(ctx, target, projectID)
		if err == nil {
			break
		}
		var netErr ErrNetwork
		if !errors.As(err, &netErr) {
			// Quota, validation, and generic scrape errors are final.
			return fail(err)
		}
		if attempt == maxScrapeRetries {
			return fail(fmt.Errorf("scrape retries exhausted: %w", err))
		}
		retries++
		s.metrics.IncRetries()
		slog.Warn("scrape network error, retrying",
			"url", target,
			"attempt", attempt,
			"error", err,
		)
		s.sleep(time.Duration(attempt) * retryDelay)
	}

	style := s.buildStyle(ctx, target, projectID, brand, result)

	s.metrics.IncScrape("success")
	s.writeLog(ctx, projectID, target, true, models.AssetsFound{
		Colors:     len(style.Colors),
		Fonts:      len(style.Fonts),
		Images:     len(style.Images),
		Logo:       style.Logo != "",
		Screenshot: style.Screenshot != "",
	}, nil, start, retries)

	return style, nil
}

// attempt performs one pass of the two-request sequence: markup first, then
// a best-effort screenshot with validation, one fallback, upload, and
// palette extraction. Only the markup request can fail the attempt.
func (s *Scraper) attempt(ctx context.Context, target string, projectID uuid.UUID) (*models.ScrapeResult, error) {
	html, err := s.client.FetchHTML(ctx, target)
	if err != nil {
		return nil, err
	}

	result := &models.ScrapeResult{
		HTML:      html,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	shot, err := s.client.FetchScreenshot(ctx, target, screenshotWait, true)
	if err != nil || len(shot) == 0 {
		slog.Warn("screenshot request failed, continuing with markup only",
			"url", target,
			"error", err,
		)
		return result, nil
	}

	if !s.validate(shot) {
		slog.Warn("screenshot failed validation, retrying with longer wait", "url", target)
		shot, err = s.client.FetchScreenshot(ctx, target, fallbackWait, false)
		if err != nil || len(shot) == 0 || !s.validate(shot) {
			slog.Warn("screenshot fallback rejected, continuing without screenshot", "url", target)
			return result, nil
		}
	}

	screenshotURL, err := s.assets.UploadScreenshot(ctx, projectID, shot)
	if err != nil {
		slog.Warn("screenshot upload failed, continuing without screenshot",
			"url", target,
			"error", err,
		)
		return result, nil
	}
	result.Screenshot = screenshotURL

	palette, err := s.palette(shot)
	if err != nil {
		slog.Warn("palette extraction failed, continuing without palette",
			"url", target,
			"error", err,
		)
		return result, nil
	}
	result.Palette = palette

	return result, nil
}

// buildStyle parses the markup, runs the extraction heuristics, resolves
// every discovered URL against the page URL, and persists the surviving
// assets. Sub-failures here degrade, never propagate.
func (s *Scraper) buildStyle(ctx context.Context, target string, projectID uuid.UUID, brand string, result *models.ScrapeResult) *models.SiteStyle {
	var fonts []string
	candidates := ImageCandidates{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		slog.Warn("markup parse failed, continuing with empty asset set", "url", target, "error", err)
	} else {
		fonts = ExtractFonts(doc)
		candidates = FindImages(doc, brand)
	}

	var images []string
	if hero := ResolveURL(target, candidates.HeroImage); hero != "" {
		images = append(images, hero)
	}
	for _, img := range candidates.FeatureImages {
		if resolved := ResolveURL(target, img); resolved != "" {
			images = append(images, resolved)
		}
	}

	stored, err := s.assets.StoreProjectAssets(ctx, projectID, CandidateAssets{
		Images:     images,
		Logo:       ResolveURL(target, candidates.Logo),
		Screenshot: result.Screenshot,
	})
	if err != nil {
		slog.Warn("asset persistence failed, keeping unstored URLs",
			"url", target,
			"error", err,
		)
		stored = StoredAssets{Images: images, Screenshot: result.Screenshot}
	}

	return &models.SiteStyle{
		Colors:     PaletteColors(result.Palette),
		Fonts:      fonts,
		Images:     stored.Images,
		Logo:       stored.Logo,
		Screenshot: stored.Screenshot,
		Palette:    result.Palette,
	}
}

// writeLog appends one audit record; log failures are reported but never
// surfaced to the caller.
func (s *Scraper) writeLog(ctx context.Context, projectID uuid.UUID, target string, success bool, found models.AssetsFound, errs []string, start time.Time, retries int) {
	entry := &models.ScrapeLog{
		ProjectID:   projectID,
		URL:         target,
		Success:     success,
		AssetsFound: found,
		Errors:      errs,
		DurationMS:  time.Since(start).Milliseconds(),
		Retries:     retries,
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		slog.Error("failed to store scrape log", "project_id", projectID, "error", err)
	}
}

// PaletteColors renders palette entries as CSS rgb() strings, preserving
// dominance order.
func PaletteColors(palette []models.RGB) []string {
	if len(palette) == 0 {
		return nil
	}
	colors := make([]string, 0, len(palette))
	for _, c := range palette {
		colors = append(colors, fmt.Sprintf("rgb(%d, %d, %d)", c[0], c[1], c[2]))
	}
	return colors
}
