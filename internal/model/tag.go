// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Tag represents a content tag. Tags are language-neutral and shared
// across all translations of a post.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagWithCount pairs a tag with the number of published posts carrying it.
type TagWithCount struct {
	Tag
	Count int64 `json:"count"`
}
