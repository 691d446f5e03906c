// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON handlers for the blog content API.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/clearcut-app/content-api/internal/content"
	"github.com/clearcut-app/content-api/internal/model"
	"github.com/clearcut-app/content-api/internal/translate"
)

// contentService is the delivery layer surface the handlers use.
type contentService interface {
	ListPosts(ctx context.Context, f content.Filter) *content.ListResult
	GetPostBySlug(ctx context.Context, slug, language string) (*content.PostDetail, error)
}

// translator runs a batch translation job for one post.
type translator interface {
	Run(ctx context.Context, postID int64, targets []string) (*translate.Result, error)
}

// tagLister lists tags with published-post counts.
type tagLister interface {
	ListTagsWithCount(ctx context.Context) ([]model.TagWithCount, error)
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	content         contentService
	translator      translator
	tags            tagLister
	defaultLanguage string
	defaultPageSize int
	maxPageSize     int
}

// Options tunes handler behavior. Zero values fall back to sane defaults.
type Options struct {
	DefaultLanguage string
	DefaultPageSize int
	MaxPageSize     int
}

// NewHandler creates the API handler.
func NewHandler(content contentService, translator translator, tags tagLister, opts Options) *Handler {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "en"
	}
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = 10
	}
	if opts.MaxPageSize < 1 {
		opts.MaxPageSize = 50
	}
	return &Handler{
		content:         content,
		translator:      translator,
		tags:            tags,
		defaultLanguage: opts.DefaultLanguage,
		defaultPageSize: opts.DefaultPageSize,
		maxPageSize:     opts.MaxPageSize,
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeErrorMessage writes the flat {"error": "..."} shape the blog
// endpoints use.
func writeErrorMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]string{"error": message})
}

// postJSON is the wire shape of an enriched post.
type postJSON struct {
	ID              int64          `json:"id"`
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Excerpt         string         `json:"excerpt"`
	Content         string         `json:"content,omitempty"`
	FeaturedImage   string         `json:"featured_image,omitempty"`
	Language        string         `json:"language"`
	PublishedAt     *time.Time     `json:"published_at,omitempty"`
	MetaTitle       string         `json:"meta_title,omitempty"`
	MetaDescription string         `json:"meta_description,omitempty"`
	Author          postAuthorJSON `json:"author"`
	Tags            []model.Tag    `json:"tags"`
}

type postAuthorJSON struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// postToJSON converts an enriched post. Listings omit the full body;
// withContent is set only on the detail view.
func postToJSON(p content.PostItem, withContent bool) postJSON {
	out := postJSON{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Excerpt:         p.Excerpt,
		FeaturedImage:   p.FeaturedImage,
		Language:        p.Language,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		Author: postAuthorJSON{
			Name:   p.AuthorName,
			Avatar: p.AuthorAvatar,
		},
		Tags: p.Tags,
	}
	if withContent {
		out.Content = p.Body
	}
	if !p.PublishedAt.IsZero() {
		t := p.PublishedAt
		out.PublishedAt = &t
	}
	return out
}

func postsToJSON(items []content.PostItem, withContent bool) []postJSON {
	out := make([]postJSON, 0, len(items))
	for _, p := range items {
		out = append(out, postToJSON(p, withContent))
	}
	return out
}
