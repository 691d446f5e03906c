// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clearcut-app/content-api/internal/content"
	"github.com/clearcut-app/content-api/internal/translate"
)

// autoTranslateRequest is the body of POST /posts/{id}/auto-translate.
type autoTranslateRequest struct {
	TargetLanguages []string `json:"target_languages"`
}

// autoTranslateResponse reports granular per-language outcomes so callers
// can tell "nothing changed" from "some languages failed" from "cancelled
// mid-run".
type autoTranslateResponse struct {
	Translations translationOutcomes `json:"translations"`
	Status       string              `json:"status"`
	Languages    []string            `json:"languages,omitempty"`
}

type translationOutcomes struct {
	Successful []string `json:"successful"`
	Failed     []string `json:"failed"`
	Skipped    []string `json:"skipped"`
}

// AutoTranslate handles POST /posts/{id}/auto-translate.
func (h *Handler) AutoTranslate(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || postID < 1 {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req autoTranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.translator.Run(r.Context(), postID, req.TargetLanguages)
	if err != nil {
		var vErr translate.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeErrorMessage(w, http.StatusUnprocessableEntity, vErr.Error())
		case errors.Is(err, translate.ErrRunInProgress):
			writeErrorMessage(w, http.StatusConflict, "A translation run is already in progress for this post")
		case errors.Is(err, content.ErrNotFound):
			writeErrorMessage(w, http.StatusNotFound, "Post not found")
		default:
			slog.Error("translation run failed", "category", "translate",
				"post_id", postID, "error", err)
			writeErrorMessage(w, http.StatusInternalServerError, "Translation failed")
		}
		return
	}

	WriteJSON(w, http.StatusOK, autoTranslateResponse{
		Translations: translationOutcomes{
			Successful: result.Successful,
			Failed:     result.Failed,
			Skipped:    result.Skipped,
		},
		Status:    result.Status,
		Languages: result.Languages,
	})
}
