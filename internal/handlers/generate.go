// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"brandforge/internal/models"
)

// generateRequest is the body for POST /api/projects/{id}/generate.
type generateRequest struct {
	Prompt string `json:"prompt"`
}

// editRequest is the body for POST /api/projects/{id}/edit.
type editRequest struct {
	Instructions string `json:"instructions"`
	Model        string `json:"model"`
}

// generateResponse wraps the generation result with the stored version.
// Error is set when the model call failed and fallback markup was used.
type generateResponse struct {
	Version *models.Version `json:"version"`
	Error   string          `json:"error,omitempty"`
}

// GenerateProject generates a fresh landing page for the project from its
// extracted style and stores it as the new current version. When the model
// fails after all retries, the default template is stored instead and the
// error is reported alongside the version.
func (a *API) GenerateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validatePrompt(req.Prompt); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

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
	if p.Style == nil {
		writeError(w, http.StatusConflict, "project has no extracted style; scrape it first")
		return
	}

	result := a.generator.Generate(ctx, req.Prompt, p.Style, p.Style.Screenshot)
	if result.Error != "" {
		slog.Warn("generation degraded to fallback", "project_id", id, "error", result.Error)
	}

	version, err := a.storeVersion(r, id, result.HTML, req.Prompt, a.generator.VisionModel())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store version")
		return
	}

	if err := a.projects.UpdateStatus(ctx, id, models.ProjectStatusGenerated); err != nil {
		slog.Error("update status failed", "error", err, "project_id", id)
	}

	slog.Info("page generated", "project_id", id, "version", version.Number, "fallback", result.Error != "")
	writeJSON(w, http.StatusCreated, generateResponse{Version: version, Error: result.Error})
}

// EditProject applies edit instructions to the project's current version
// and stores the result as a new version. When the model fails after all
// retries, the current markup is re-stored unchanged and the error is
// reported alongside the version.
func (a *API) EditProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req editRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateInstructions(req.Instructions); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

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

	current, err := a.versions.Current(ctx, id)
	if err != nil {
		slog.Error("load current version failed", "error", err, "project_id", id)
		writeError(w, http.StatusInternalServerError, "failed to load current version")
		return
	}
	if current == nil {
		writeError(w, http.StatusConflict, "project has no generated page to edit")
		return
	}

	screenshot := ""
	if p.Style != nil {
		screenshot = p.Style.Screenshot
	}

	model := req.Model
	if model == "" {
		model = a.generator.EditModel()
	}

	result := a.generator.Edit(ctx, current.HTML, req.Instructions, screenshot, model)
	if result.Error != "" {
		slog.Warn("edit degraded to unchanged markup", "project_id", id, "error", result.Error)
	}

	version, err := a.storeVersion(r, id, result.HTML, req.Instructions, model)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store version")
		return
	}

	slog.Info("page edited", "project_id", id, "version", version.Number, "fallback", result.Error != "")
	writeJSON(w, http.StatusCreated, generateResponse{Version: version, Error: result.Error})
}

// ListVersions returns the full version chain for a project, newest first.
func (a *API) ListVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	versions, err := a.versions.ListByProject(r.Context(), id)
	if err != nil {
		slog.Error("list versions failed", "error", err, "project_id", id)
		writeError(w, http.StatusInternalServerError, "failed to list versions")
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

// storeVersion appends a new current version and invalidates the page cache.
func (a *API) storeVersion(r *http.Request, projectID uuid.UUID, html, prompt, model string) (*models.Version, error) {
	ctx := r.Context()

	v := &models.Version{
		ProjectID: projectID,
		HTML:      html,
		Prompt:    &prompt,
		Model:     &model,
	}

	created, err := a.versions.Create(ctx, v)
	if err != nil {
		slog.Error("store version failed", "error", err, "project_id", projectID)
		return nil, err
	}

	if a.pageCache != nil {
		a.pageCache.Invalidate(ctx, projectID)
	}
	return created, nil
}
