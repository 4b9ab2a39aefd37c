// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"brandforge/internal/ai"
	"brandforge/internal/cache"
	"brandforge/internal/models"
	"brandforge/internal/scrape"
	"brandforge/internal/store"
)

// API groups the JSON endpoints for project management, scraping, and page
// generation. pageCache may be nil when Valkey is not configured.
type API struct {
	projects  *store.ProjectStore
	versions  *store.VersionStore
	logs      *store.ScrapeLogStore
	scraper   *scrape.Scraper
	generator *ai.Generator
	pageCache *cache.PageCache
}

// NewAPI creates the API handler group.
func NewAPI(projects *store.ProjectStore, versions *store.VersionStore, logs *store.ScrapeLogStore, scraper *scrape.Scraper, generator *ai.Generator, pageCache *cache.PageCache) *API {
	return &API{
		projects:  projects,
		versions:  versions,
		logs:      logs,
		scraper:   scraper,
		generator: generator,
		pageCache: pageCache,
	}
}

// createProjectRequest is the body for POST /api/projects.
type createProjectRequest struct {
	Name      string `json:"name"`
	SourceURL string `json:"source_url"`
	Brand     string `json:"brand"`
}

// CreateProject registers a new landing-page project for a source website.
func (a *API) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := validateProject(req.Name, req.SourceURL, req.Brand); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p := &models.Project{
		Name:      strings.TrimSpace(req.Name),
		SourceURL: strings.TrimSpace(req.SourceURL),
		Status:    models.ProjectStatusNew,
	}
	if brand := strings.TrimSpace(req.Brand); brand != "" {
		p.Brand = &brand
	}

	created, err := a.projects.Create(r.Context(), p)
	if err != nil {
		slog.Error("create project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	slog.Info("project created", "project_id", created.ID, "url", created.SourceURL)
	writeJSON(w, http.StatusCreated, created)
}

// ListProjects returns all projects, newest first.
func (a *API) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.projects.List(r.Context())
	if err != nil {
		slog.Error("list projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProject returns a single project by ID.
func (a *API) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	p, err := a.projects.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find project failed", "error", err, "project_id", id)
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ScrapeProject runs the scrape pipeline against the project's source URL
// and stores the extracted style on success. The project status moves
// new → scraping → scraped, or to failed when every retry is exhausted.
func (a *API) ScrapeProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	p, err := a.projects.FindByID(ctx, id)
	if err != nil {
		slog.Error("find project failed", "error", err, "project_id", id)
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	if err := a.projects.UpdateStatus(ctx, id, models.ProjectStatusScraping); err != nil {
		slog.Error("update status failed", "error", err, "project_id", id)
		writeError(w, http.StatusInternalServerError, "failed to update project")
		return
	}

	brand := ""
	if p.Brand != nil {
		brand = *p.Brand
	}

	style, err := a.scraper.Scrape(ctx, p.SourceURL, p.ID, brand)
	if err != nil {
		slog.Error("scrape failed", "error", err, "project_id", id, "url", p.SourceURL)
		if stErr := a.projects.UpdateStatus(ctx, id, models.ProjectStatusFailed); stErr != nil {
			slog.Error("update status failed", "error", stErr, "project_id", id)
		}
		writeError(w, http.StatusBadGateway, "scrape failed: "+err.Error())
		return
	}

	if err := a.projects.UpdateStyle(ctx, id, style); err != nil {
		slog.Error("store style failed", "error", err, "project_id", id)
		writeError(w, http.StatusInternalServerError, "failed to store style")
		return
	}
	if err := a.projects.UpdateStatus(ctx, id, models.ProjectStatusScraped); err != nil {
		slog.Error("update status failed", "error", err, "project_id", id)
	}

	writeJSON(w, http.StatusOK, style)
}

// ScrapeLogs returns the scrape audit trail for a project, newest first.
func (a *API) ScrapeLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	logs, err := a.logs.ListByProject(r.Context(), id)
	if err != nil {
		slog.Error("list scrape logs failed", "error", err, "project_id", id)
		writeError(w, http.StatusInternalServerError, "failed to list scrape logs")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
