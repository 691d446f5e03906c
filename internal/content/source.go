// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the resilient content delivery layer: a store
// adapter and a behaviorally identical in-memory fallback behind one Source
// interface, plus the delivery service that arbitrates between them.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clearcut-app/content-api/internal/model"
	"github.com/clearcut-app/content-api/internal/store"
)

// Row is a post joined with one language's translation, as served by a
// Source. Both the store adapter and the fallback generator produce rows of
// this shape so that callers cannot tell the two paths apart.
type Row struct {
	ID              int64
	Slug            string
	FeaturedImage   string
	Status          string
	PublishedAt     time.Time
	Language        string
	Title           string
	Body            string
	Format          string
	MetaTitle       string
	MetaDescription string
	AuthorID        int64
	AuthorName      string
	AuthorAvatar    string
}

// Filter selects and paginates a post listing. Language is required;
// Tag and Search are optional. Page is 1-based and Limit is at least 1.
type Filter struct {
	Language string
	Page     int
	Limit    int
	Tag      string
	Search   string
}

// Source serves post content. Implementations must apply identical
// filter, search, ordering, and pagination semantics.
type Source interface {
	// ListPosts returns one page of published posts plus the total count of
	// the filtered set before pagination.
	ListPosts(ctx context.Context, f Filter) ([]Row, int64, error)

	// GetPostBySlug returns a published post in the given language,
	// degrading to the default-language rendition when the requested one
	// is missing, or ErrNotFound when the slug has no rendition at all.
	GetPostBySlug(ctx context.Context, slug, language string) (*Row, error)

	// TagsFor returns the tags attached to a post.
	TagsFor(ctx context.Context, postID int64) ([]model.Tag, error)

	// Related returns up to limit published posts sharing at least one tag
	// with the given post, in the same language, excluding the post itself.
	Related(ctx context.Context, postID int64, language string, limit int) ([]Row, error)

	// Languages returns the language codes for which the post has a
	// translation.
	Languages(ctx context.Context, postID int64) ([]string, error)
}

// storeSource adapts the store query layer to the Source interface. Any
// store-level failure is collapsed into ErrStoreUnavailable; the adapter
// never retries — fallback is the orchestrator's job.
type storeSource struct {
	queries *store.Queries
}

// NewStoreSource creates the primary Source backed by the relational store.
func NewStoreSource(queries *store.Queries) Source {
	return &storeSource{queries: queries}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

func rowFromStore(r store.PostRow) Row {
	row := Row{
		ID:              r.ID,
		Slug:            r.Slug,
		Status:          r.Status,
		Language:        r.LanguageCode,
		Title:           r.Title,
		Body:            r.Content,
		Format:          r.Format,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		AuthorID:        r.AuthorID,
		AuthorName:      r.AuthorName,
		AuthorAvatar:    r.AuthorAvatar,
	}
	if r.FeaturedImage.Valid {
		row.FeaturedImage = r.FeaturedImage.String
	}
	if r.PublishedAt.Valid {
		row.PublishedAt = r.PublishedAt.Time
	}
	return row
}

func (s *storeSource) ListPosts(ctx context.Context, f Filter) ([]Row, int64, error) {
	params := store.ListPublishedPostsParams{
		LanguageCode: f.Language,
		TagSlug:      f.Tag,
		Search:       f.Search,
		Limit:        int64(f.Limit),
		Offset:       int64((f.Page - 1) * f.Limit),
	}

	total, err := s.queries.CountPublishedPosts(ctx, params)
	if err != nil {
		return nil, 0, storeErr("count posts", err)
	}

	rows, err := s.queries.ListPublishedPosts(ctx, params)
	if err != nil {
		return nil, 0, storeErr("list posts", err)
	}

	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, rowFromStore(r))
	}
	return result, total, nil
}

func (s *storeSource) GetPostBySlug(ctx context.Context, slug, language string) (*Row, error) {
	r, err := s.queries.GetPublishedPostBySlug(ctx, slug, language)
	if errors.Is(err, sql.ErrNoRows) {
		// Degrade to the default-language rendition before reporting a miss
		def, derr := s.queries.GetDefaultLanguage(ctx)
		switch {
		case errors.Is(derr, sql.ErrNoRows):
			return nil, ErrNotFound
		case derr != nil:
			return nil, storeErr("get default language", derr)
		case def.Code == language:
			return nil, ErrNotFound
		}
		r, err = s.queries.GetPublishedPostBySlug(ctx, slug, def.Code)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
	}
	if err != nil {
		return nil, storeErr("get post by slug", err)
	}
	row := rowFromStore(r)
	return &row, nil
}

func (s *storeSource) TagsFor(ctx context.Context, postID int64) ([]model.Tag, error) {
	tags, err := s.queries.GetTagsForPost(ctx, postID)
	if err != nil {
		return nil, storeErr("tags for post", err)
	}
	return tags, nil
}

func (s *storeSource) Related(ctx context.Context, postID int64, language string, limit int) ([]Row, error) {
	rows, err := s.queries.GetRelatedPosts(ctx, store.GetRelatedPostsParams{
		PostID:       postID,
		LanguageCode: language,
		Limit:        int64(limit),
	})
	if err != nil {
		return nil, storeErr("related posts", err)
	}
	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, rowFromStore(r))
	}
	return result, nil
}

func (s *storeSource) Languages(ctx context.Context, postID int64) ([]string, error) {
	codes, err := s.queries.ListTranslationLanguages(ctx, postID)
	if err != nil {
		return nil, storeErr("translation languages", err)
	}
	return codes, nil
}
