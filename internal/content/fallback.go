// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"sort"
	"time"

	"github.com/clearcut-app/content-api/internal/model"
)

// fallbackPost is one entry of the static fallback dataset.
type fallbackPost struct {
	id            int64
	slug          string
	featuredImage string
	publishedAt   time.Time
	tags          []model.Tag
	translations  map[string]fallbackTranslation
}

type fallbackTranslation struct {
	title string
	body  string
}

// fallbackSource serves a fixed in-memory dataset shaped exactly like store
// query results. It never errors and applies the same filter, search,
// ordering, and pagination rules as the store path, which is what makes
// degradation transparent to callers.
type fallbackSource struct {
	posts []fallbackPost
}

// NewFallbackSource creates the degraded-mode Source.
func NewFallbackSource() Source {
	return &fallbackSource{posts: fallbackPosts}
}

const (
	fallbackAuthorID     = 1
	fallbackAuthorName   = "Clearcut Team"
	fallbackAuthorAvatar = "/images/avatars/team.png"
)

var fallbackTags = struct {
	tutorials, ecommerce, design, automation, product model.Tag
}{
	tutorials:  model.Tag{ID: 1, Name: "tutorials", Slug: "tutorials"},
	ecommerce:  model.Tag{ID: 2, Name: "e-commerce", Slug: "e-commerce"},
	design:     model.Tag{ID: 3, Name: "design", Slug: "design"},
	automation: model.Tag{ID: 4, Name: "automation", Slug: "automation"},
	product:    model.Tag{ID: 5, Name: "product", Slug: "product"},
}

func fbDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

var fallbackPosts = []fallbackPost{
	{
		id: 1, slug: "remove-background-from-product-photos",
		publishedAt: fbDate(2026, time.July, 28),
		tags:        []model.Tag{fallbackTags.tutorials, fallbackTags.ecommerce},
		translations: map[string]fallbackTranslation{
			"en": {
				title: "How to Remove the Background from Product Photos",
				body: "<p>Clean product shots sell. This guide walks through preparing " +
					"e-commerce images with transparent backgrounds in under a minute.</p>",
			},
			"es": {
				title: "Cómo quitar el fondo de las fotos de producto",
				body: "<p>Las fotos de producto limpias venden. Esta guía explica cómo " +
					"preparar imágenes con fondo transparente en menos de un minuto.</p>",
			},
		},
	},
	{
		id: 2, slug: "transparent-png-for-logos",
		publishedAt: fbDate(2026, time.July, 21),
		tags:        []model.Tag{fallbackTags.tutorials, fallbackTags.design},
		translations: map[string]fallbackTranslation{
			"en": {
				title: "Transparent PNGs for Logos: A Practical Guide",
				body: "<p>Logos need crisp edges. Here is how automated matting handles " +
					"fine details like thin strokes and gradients.</p>",
			},
		},
	},
	{
		id: 3, slug: "batch-processing-image-workflows",
		publishedAt: fbDate(2026, time.July, 14),
		tags:        []model.Tag{fallbackTags.ecommerce, fallbackTags.automation},
		translations: map[string]fallbackTranslation{
			"en": {
				title: "Batch Processing for High-Volume Image Workflows",
				body: "<p>When you have thousands of SKUs, one-by-one editing does not " +
					"scale. Learn how to wire background removal into your pipeline.</p>",
			},
		},
	},
	{
		id: 4, slug: "portrait-cutouts-hair-detail",
		publishedAt: fbDate(2026, time.July, 7),
		tags:        []model.Tag{fallbackTags.design},
		translations: map[string]fallbackTranslation{
			"en": {
				title: "Portrait Cutouts: Getting Hair Right",
				body: "<p>Hair is the hardest part of any cutout. We explain how modern " +
					"segmentation models keep flyaway strands intact.</p>",
			},
			"es": {
				title: "Recortes de retrato: el pelo bien hecho",
				body: "<p>El pelo es la parte más difícil de cualquier recorte. " +
					"Explicamos cómo los modelos modernos conservan cada mechón.</p>",
			},
		},
	},
	{
		id: 5, slug: "white-background-marketplace-rules",
		publishedAt: fbDate(2026, time.June, 30),
		tags:        []model.Tag{fallbackTags.ecommerce, fallbackTags.product},
		translations: map[string]fallbackTranslation{
			"en": {
				title: "White Background Rules on Major Marketplaces",
				body: "<p>Amazon, eBay, and Etsy each have their own image rules. " +
					"This cheat sheet covers the background requirements that matter.</p>",
			},
		},
	},
	{
		id: 6, slug: "photo-editing-api-integration",
		publishedAt: fbDate(2026, time.June, 23),
		tags:        []model.Tag{fallbackTags.automation, fallbackTags.product},
		translations: map[string]fallbackTranslation{
			"en": {
				title: "Integrating a Photo Editing API into Your Stack",
				body: "<p>From upload to webhook, this post covers the moving parts of " +
					"an automated image editing integration.</p>",
			},
		},
	},
	{
		id: 7, slug: "social-media-profile-pictures",
		publishedAt: fbDate(2026, time.June, 16),
		tags:        []model.Tag{fallbackTags.design, fallbackTags.tutorials},
		translations: map[string]fallbackTranslation{
			"en": {
				title: "Better Profile Pictures with Clean Backgrounds",
				body: "<p>A distracting background ruins a good portrait. Three quick " +
					"edits that make any profile picture look professional.</p>",
			},
		},
	},
}

// row materializes the post in the given language. Returns false when the
// post has no translation for it.
func (p *fallbackPost) row(language string) (Row, bool) {
	t, ok := p.translations[language]
	if !ok {
		return Row{}, false
	}
	return Row{
		ID:            p.id,
		Slug:          p.slug,
		FeaturedImage: p.featuredImage,
		Status:        model.PostStatusPublished,
		PublishedAt:   p.publishedAt,
		Language:      language,
		Title:         t.title,
		Body:          t.body,
		Format:        model.FormatHTML,
		AuthorID:      fallbackAuthorID,
		AuthorName:    fallbackAuthorName,
		AuthorAvatar:  fallbackAuthorAvatar,
	}, true
}

func (p *fallbackPost) tagSlugs() []string {
	slugs := make([]string, 0, len(p.tags))
	for _, t := range p.tags {
		slugs = append(slugs, t.Slug)
	}
	return slugs
}

func (s *fallbackSource) ListPosts(_ context.Context, f Filter) ([]Row, int64, error) {
	var rows []Row
	for i := range s.posts {
		p := &s.posts[i]
		r, ok := p.row(f.Language)
		if !ok {
			continue
		}
		if !matchesTag(p.tagSlugs(), f.Tag) {
			continue
		}
		if !matchesSearch(r.Title, r.Body, f.Search) {
			continue
		}
		rows = append(rows, r)
	}
	sortRows(rows)
	page, total := paginate(rows, f.Page, f.Limit)
	return page, total, nil
}

func (s *fallbackSource) GetPostBySlug(_ context.Context, slug, language string) (*Row, error) {
	for i := range s.posts {
		p := &s.posts[i]
		if p.slug != slug {
			continue
		}
		// Serve the requested language when present, otherwise degrade to
		// the canonical (English) rendition of the same post.
		if r, ok := p.row(language); ok {
			return &r, nil
		}
		if r, ok := p.row("en"); ok {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fallbackSource) TagsFor(_ context.Context, postID int64) ([]model.Tag, error) {
	for i := range s.posts {
		if s.posts[i].id == postID {
			return append([]model.Tag(nil), s.posts[i].tags...), nil
		}
	}
	return nil, nil
}

func (s *fallbackSource) Related(_ context.Context, postID int64, language string, limit int) ([]Row, error) {
	var target *fallbackPost
	for i := range s.posts {
		if s.posts[i].id == postID {
			target = &s.posts[i]
			break
		}
	}
	if target == nil {
		return nil, nil
	}

	targetSlugs := target.tagSlugs()
	var rows []Row
	for i := range s.posts {
		p := &s.posts[i]
		if p.id == postID {
			continue
		}
		shared := false
		for _, slug := range p.tagSlugs() {
			if matchesTag(targetSlugs, slug) {
				shared = true
				break
			}
		}
		if !shared {
			continue
		}
		if r, ok := p.row(language); ok {
			rows = append(rows, r)
		}
	}
	sortRows(rows)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *fallbackSource) Languages(_ context.Context, postID int64) ([]string, error) {
	for i := range s.posts {
		if s.posts[i].id == postID {
			codes := make([]string, 0, len(s.posts[i].translations))
			for code := range s.posts[i].translations {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			return codes, nil
		}
	}
	return nil, nil
}
