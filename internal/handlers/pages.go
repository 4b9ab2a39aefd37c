// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
)

// ServePage serves the current version of a project's generated page as
// HTML. Results are cached in Valkey and invalidated whenever a new version
// is stored.
func (a *API) ServePage(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if a.pageCache != nil {
		if cached, found := a.pageCache.Get(ctx, id); found {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(cached)
			return
		}
	}

	current, err := a.versions.Current(ctx, id)
	if err != nil {
		slog.Error("load current version failed", "error", err, "project_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if current == nil {
		http.NotFound(w, r)
		return
	}

	if a.pageCache != nil {
		a.pageCache.Set(ctx, id, []byte(current.HTML))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(current.HTML))
}
