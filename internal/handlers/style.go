// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
)

// styleOverrideRequest is the body for PUT /api/projects/{id}/style.
// Empty fields leave the corresponding style value untouched.
type styleOverrideRequest struct {
	DominantColor string `json:"dominant_color"`
	PrimaryFont   string `json:"primary_font"`
}

// GetStyle returns the project's extracted style.
func (a *API) GetStyle(w http.ResponseWriter, r *http.Request) {
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
	if p.Style == nil {
		writeError(w, http.StatusNotFound, "project has no extracted style")
		return
	}
	writeJSON(w, http.StatusOK, p.Style)
}

// PutStyle merges user-selected overrides into the project's style. The
// stored style is replaced as a whole; only the dominant color and primary
// font can be overridden, and empty selections keep the existing values.
func (a *API) PutStyle(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req styleOverrideRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateStyleOverride(req.DominantColor, req.PrimaryFont); msg != "" {
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

	merged := p.Style.Merge(req.DominantColor, req.PrimaryFont)
	if err := a.projects.UpdateStyle(ctx, id, &merged); err != nil {
		slog.Error("store style failed", "error", err, "project_id", id)
		writeError(w, http.StatusInternalServerError, "failed to store style")
		return
	}

	slog.Info("style overridden", "project_id", id,
		"dominant_color", merged.DominantColor, "primary_font", merged.PrimaryFont)
	writeJSON(w, http.StatusOK, merged)
}
