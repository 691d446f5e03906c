// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/clearcut-app/content-api/internal/model"
)

// RelatedPostsLimit caps the related_posts list on the detail view.
const RelatedPostsLimit = 2

// LanguageCatalog provides the closed language catalog. Lookup failure is
// tolerated: callers degrade to a single-language default.
type LanguageCatalog interface {
	Active(ctx context.Context) ([]model.Language, error)
}

// PostItem is an enriched row: excerpt derived, body rendered, tags attached.
type PostItem struct {
	Row
	Excerpt string
	Tags    []model.Tag
}

// Pagination describes one page of a filtered listing. Total counts the
// full filtered set before limit/offset; Pages is ceil(Total/PerPage).
type Pagination struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

// ListResult is the response of the list operation.
type ListResult struct {
	Posts      []PostItem
	Pagination Pagination
}

// PostDetail is the response of the detail operation.
type PostDetail struct {
	Post               PostItem
	Related            []PostItem
	AvailableLanguages []model.LanguageRef
	CurrentLanguage    string
}

// Service is the content delivery orchestrator. It tries the primary
// (store-backed) source first and transparently falls back to the static
// dataset on any store failure; list and detail callers never see a store
// outage as an error.
type Service struct {
	primary  Source
	fallback Source
	catalog  LanguageCatalog
	log      *slog.Logger
}

// NewService creates the delivery orchestrator.
func NewService(primary, fallback Source, catalog LanguageCatalog, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{primary: primary, fallback: fallback, catalog: catalog, log: log}
}

// ListPosts returns one page of published posts. The store path is
// attempted first; any failure switches the whole request to the fallback
// dataset with identical filter semantics. Per-item enrichment failures
// degrade only the affected item.
func (s *Service) ListPosts(ctx context.Context, f Filter) *ListResult {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 1
	}

	src := s.primary
	rows, total, err := src.ListPosts(ctx, f)
	if err != nil {
		s.log.Warn("store list failed, serving fallback content",
			"category", "store", "language", f.Language, "error", err)
		src = s.fallback
		rows, total, _ = src.ListPosts(ctx, f)
	}

	posts := make([]PostItem, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, s.enrich(ctx, src, r))
	}

	return &ListResult{
		Posts: posts,
		Pagination: Pagination{
			Total:   total,
			Page:    f.Page,
			PerPage: f.Limit,
			Pages:   TotalPages(total, f.Limit),
		},
	}
}

// GetPostBySlug returns a post detail with related posts and the set of
// languages the post is available in. A store failure or miss degrades to
// the fallback dataset; ErrNotFound is returned only when the slug is
// absent from both.
func (s *Service) GetPostBySlug(ctx context.Context, slug, language string) (*PostDetail, error) {
	src := s.primary
	row, err := src.GetPostBySlug(ctx, slug, language)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("store detail failed, trying fallback content",
				"category", "store", "slug", slug, "error", err)
		}
		src = s.fallback
		row, err = src.GetPostBySlug(ctx, slug, language)
		if err != nil {
			return nil, ErrNotFound
		}
	}

	detail := &PostDetail{
		Post:            s.enrich(ctx, src, *row),
		CurrentLanguage: row.Language,
	}

	related, err := src.Related(ctx, row.ID, row.Language, RelatedPostsLimit)
	if err != nil {
		s.log.Warn("related posts lookup failed",
			"category", "content", "post_id", row.ID, "error", err)
	}
	for _, r := range related {
		detail.Related = append(detail.Related, s.enrich(ctx, src, r))
	}

	detail.AvailableLanguages = s.availableLanguages(ctx, src, row.ID, language)
	return detail, nil
}

// enrich derives the excerpt, renders the body, and attaches tags. A tag
// lookup failure degrades that single item to an empty tag list; it never
// fails the containing response.
func (s *Service) enrich(ctx context.Context, src Source, r Row) PostItem {
	item := PostItem{Row: r}
	item.Body = RenderBody(r.Body, r.Format)
	item.Excerpt = Excerpt(item.Body, DefaultExcerptLength)

	tags, err := src.TagsFor(ctx, r.ID)
	if err != nil {
		s.log.Warn("tag enrichment failed for post",
			"category", "content", "post_id", r.ID, "error", err)
		tags = nil
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	item.Tags = tags
	return item
}

// availableLanguages resolves the languages a post is translated into,
// annotated from the catalog. Any lookup failure degrades to the requested
// language alone, marked as default.
func (s *Service) availableLanguages(ctx context.Context, src Source, postID int64, requested string) []model.LanguageRef {
	fallbackRefs := []model.LanguageRef{{Code: requested, IsDefault: true}}

	codes, err := src.Languages(ctx, postID)
	if err != nil || len(codes) == 0 {
		if err != nil {
			s.log.Warn("translation languages lookup failed",
				"category", "content", "post_id", postID, "error", err)
		}
		return fallbackRefs
	}

	catalog, err := s.catalog.Active(ctx)
	if err != nil {
		s.log.Warn("language catalog lookup failed",
			"category", "content", "error", err)
		return fallbackRefs
	}

	byCode := make(map[string]model.Language, len(catalog))
	for _, l := range catalog {
		byCode[l.Code] = l
	}

	refs := make([]model.LanguageRef, 0, len(codes))
	for _, code := range codes {
		ref := model.LanguageRef{Code: code}
		if l, ok := byCode[code]; ok {
			ref.Name = l.Name
			ref.IsDefault = l.IsDefault
		}
		refs = append(refs, ref)
	}
	return refs
}
