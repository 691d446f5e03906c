// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clearcut-app/content-api/internal/model"
	"github.com/clearcut-app/content-api/internal/util"
)

// CreateLanguageParams creates a catalog language.
type CreateLanguageParams struct {
	Code      string
	Name      string
	IsDefault bool
	IsActive  bool
}

// CreateLanguage inserts a language into the catalog.
func (q *Queries) CreateLanguage(ctx context.Context, p CreateLanguageParams) error {
	now := time.Now()
	_, err := q.db.ExecContext(ctx, `INSERT INTO languages (code, name, is_default, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`, p.Code, p.Name, p.IsDefault, p.IsActive, now, now)
	return err
}

// CreateAuthor inserts an author and returns its id.
func (q *Queries) CreateAuthor(ctx context.Context, name, avatar string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO authors (name, avatar) VALUES (?, ?)`, name, avatar)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CreatePostParams creates a post shell; translations are written separately.
type CreatePostParams struct {
	Slug          string
	FeaturedImage string
	AuthorID      int64
	Status        string
	PublishedAt   time.Time
}

// CreatePost inserts a post and returns its id.
func (q *Queries) CreatePost(ctx context.Context, p CreatePostParams) (int64, error) {
	now := time.Now()
	var featured sql.NullString
	if p.FeaturedImage != "" {
		featured = sql.NullString{String: p.FeaturedImage, Valid: true}
	}
	var published sql.NullTime
	if !p.PublishedAt.IsZero() {
		published = sql.NullTime{Time: p.PublishedAt, Valid: true}
	}
	res, err := q.db.ExecContext(ctx, `INSERT INTO posts (slug, featured_image, author_id, status, created_at, updated_at, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, p.Slug, featured, p.AuthorID, p.Status, now, now, published)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CreateTag inserts a tag and returns its id.
func (q *Queries) CreateTag(ctx context.Context, name, slug string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO tags (name, slug) VALUES (?, ?)`, name, slug)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AddTagToPost links a tag to a post.
func (q *Queries) AddTagToPost(ctx context.Context, postID, tagID int64) error {
	_, err := q.db.ExecContext(ctx, `INSERT OR IGNORE INTO post_tags (post_id, tag_id) VALUES (?, ?)`, postID, tagID)
	return err
}

// Seed installs the language catalog and a small demo post set. It is
// idempotent: if any language exists the catalog is left alone, and if any
// post exists the demo content is skipped.
func Seed(ctx context.Context, db *sql.DB) error {
	q := New(db)

	if _, err := q.GetDefaultLanguage(ctx); errors.Is(err, sql.ErrNoRows) {
		for _, l := range model.SeedLanguages {
			if err := q.CreateLanguage(ctx, CreateLanguageParams{
				Code: l.Code, Name: l.Name, IsDefault: l.IsDefault, IsActive: true,
			}); err != nil {
				return fmt.Errorf("seeding language %s: %w", l.Code, err)
			}
		}
		slog.Info("seeded language catalog", "languages", len(model.SeedLanguages))
	} else if err != nil {
		return fmt.Errorf("checking language catalog: %w", err)
	}

	count, err := q.CountPosts(ctx)
	if err != nil {
		return fmt.Errorf("counting posts: %w", err)
	}
	if count > 0 {
		slog.Info("posts already exist, skipping demo seed")
		return nil
	}

	return seedDemoPosts(ctx, q)
}

type demoPost struct {
	slug    string
	title   string
	content string
	tags    []string
	daysAgo int
}

var demoPosts = []demoPost{
	{
		slug:  "remove-background-from-product-photos",
		title: "How to Remove the Background from Product Photos",
		content: "<p>Clean product shots sell. This guide walks through preparing " +
			"e-commerce images with transparent backgrounds in under a minute.</p>",
		tags:    []string{"tutorials", "e-commerce"},
		daysAgo: 3,
	},
	{
		slug:  "transparent-png-for-logos",
		title: "Transparent PNGs for Logos: A Practical Guide",
		content: "<p>Logos need crisp edges. Here is how automated matting handles " +
			"fine details like thin strokes and gradients.</p>",
		tags:    []string{"tutorials", "design"},
		daysAgo: 10,
	},
	{
		slug:  "batch-processing-image-workflows",
		title: "Batch Processing for High-Volume Image Workflows",
		content: "<p>When you have thousands of SKUs, one-by-one editing does not " +
			"scale. Learn how to wire background removal into your pipeline.</p>",
		tags:    []string{"e-commerce", "automation"},
		daysAgo: 17,
	},
	{
		slug:  "portrait-cutouts-hair-detail",
		title: "Portrait Cutouts: Getting Hair Right",
		content: "<p>Hair is the hardest part of any cutout. We explain how modern " +
			"segmentation models keep flyaway strands intact.</p>",
		tags:    []string{"design"},
		daysAgo: 24,
	},
}

func seedDemoPosts(ctx context.Context, q *Queries) error {
	authorID, err := q.CreateAuthor(ctx, "Clearcut Team", "/images/avatars/team.png")
	if err != nil {
		return fmt.Errorf("seeding author: %w", err)
	}

	tagIDs := make(map[string]int64)
	for _, p := range demoPosts {
		for _, tag := range p.tags {
			if _, ok := tagIDs[tag]; ok {
				continue
			}
			id, err := q.CreateTag(ctx, tag, util.Slugify(tag))
			if err != nil {
				return fmt.Errorf("seeding tag %s: %w", tag, err)
			}
			tagIDs[tag] = id
		}
	}

	for _, p := range demoPosts {
		postID, err := q.CreatePost(ctx, CreatePostParams{
			Slug:        p.slug,
			AuthorID:    authorID,
			Status:      model.PostStatusPublished,
			PublishedAt: time.Now().AddDate(0, 0, -p.daysAgo),
		})
		if err != nil {
			return fmt.Errorf("seeding post %s: %w", p.slug, err)
		}
		if err := q.UpsertTranslation(ctx, UpsertTranslationParams{
			PostID:       postID,
			LanguageCode: "en",
			Title:        p.title,
			Content:      p.content,
			Format:       model.FormatHTML,
			UpdatedAt:    time.Now(),
		}); err != nil {
			return fmt.Errorf("seeding translation for %s: %w", p.slug, err)
		}
		for _, tag := range p.tags {
			if err := q.AddTagToPost(ctx, postID, tagIDs[tag]); err != nil {
				return fmt.Errorf("tagging post %s: %w", p.slug, err)
			}
		}
	}

	slog.Info("seeded demo posts", "posts", len(demoPosts))
	return nil
}
