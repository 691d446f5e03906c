// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post represents a blog post. Language-specific fields (title, body,
// meta tags) live in Translation; Post carries only language-neutral data.
type Post struct {
	ID            int64          `json:"id"`
	Slug          string         `json:"slug"`
	FeaturedImage sql.NullString `json:"featured_image,omitempty"`
	AuthorID      int64          `json:"author_id"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	PublishedAt   sql.NullTime   `json:"published_at,omitempty"`
}

// IsPublished returns true if the post is published.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Author represents a post author. Authors are referenced by posts but
// owned by the account system.
type Author struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
