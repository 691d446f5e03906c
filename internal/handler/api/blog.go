// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clearcut-app/content-api/internal/content"
	"github.com/clearcut-app/content-api/internal/model"
)

// listPostsResponse is the wire shape of GET /blog.
type listPostsResponse struct {
	Posts      []postJSON         `json:"posts"`
	TotalPages int                `json:"total_pages"`
	Pagination content.Pagination `json:"pagination"`
}

// ListPosts handles GET /blog?language=&page=&limit=&tag=&search=.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := content.Filter{
		Language: q.Get("language"),
		Page:     parsePositiveInt(q.Get("page"), 1),
		Limit:    parsePositiveInt(q.Get("limit"), h.defaultPageSize),
		Tag:      q.Get("tag"),
		Search:   q.Get("search"),
	}
	if f.Language == "" {
		f.Language = h.defaultLanguage
	}
	if f.Limit > h.maxPageSize {
		f.Limit = h.maxPageSize
	}

	result := h.content.ListPosts(r.Context(), f)

	WriteJSON(w, http.StatusOK, listPostsResponse{
		Posts:      postsToJSON(result.Posts, false),
		TotalPages: result.Pagination.Pages,
		Pagination: result.Pagination,
	})
}

// postDetailResponse is the wire shape of GET /blog/{slug}.
type postDetailResponse struct {
	Post               postJSON            `json:"post"`
	RelatedPosts       []postJSON          `json:"related_posts"`
	AvailableLanguages []model.LanguageRef `json:"available_languages"`
	CurrentLanguage    string              `json:"current_language"`
}

// GetPost handles GET /blog/{slug}?language=.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	language := r.URL.Query().Get("language")
	if language == "" {
		language = h.defaultLanguage
	}

	detail, err := h.content.GetPostBySlug(r.Context(), slug, language)
	if err != nil {
		writeErrorMessage(w, http.StatusNotFound, "Blog post not found")
		return
	}

	WriteJSON(w, http.StatusOK, postDetailResponse{
		Post:               postToJSON(detail.Post, true),
		RelatedPosts:       postsToJSON(detail.Related, false),
		AvailableLanguages: detail.AvailableLanguages,
		CurrentLanguage:    detail.CurrentLanguage,
	})
}

// parsePositiveInt parses s as a positive integer, returning def for empty,
// malformed, or non-positive input.
func parsePositiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
