// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/clearcut-app/content-api/internal/model"
)

// ListTags handles GET /tags. Counts cover published posts only. A store
// failure degrades to an empty tag list rather than an error; tags are an
// auxiliary navigation surface.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.ListTagsWithCount(r.Context())
	if err != nil {
		slog.Warn("tag listing failed, serving empty set",
			"category", "content", "error", err)
		tags = nil
	}
	if tags == nil {
		tags = []model.TagWithCount{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{"tags": tags})
}
