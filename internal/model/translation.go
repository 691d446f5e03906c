// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Translation content formats
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Translation holds the language-specific fields of a post. A translation
// is keyed by (post_id, language_code) and is either fully present or fully
// absent; the canonical-language translation must exist before any other
// language can be created.
type Translation struct {
	PostID          int64     `json:"post_id"`
	LanguageCode    string    `json:"language_code"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Format          string    `json:"format"` // html, markdown
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsCurrentAgainst reports whether the translation is at least as fresh as
// the canonical translation it was derived from.
func (t *Translation) IsCurrentAgainst(canonical *Translation) bool {
	return !t.UpdatedAt.Before(canonical.UpdatedAt)
}
