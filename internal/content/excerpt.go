// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultExcerptLength is the maximum excerpt length in characters.
const DefaultExcerptLength = 150

// stripPolicy removes every tag, leaving plain text only.
var stripPolicy = bluemonday.StrictPolicy()

// Excerpt derives a plain-text summary from raw rich content: markup is
// stripped, whitespace collapsed, and the result truncated to maxLen
// characters. Truncation never splits a word — the cut moves back to the
// last whitespace boundary and an ellipsis is appended. Empty input yields
// an empty string.
func Excerpt(raw string, maxLen int) string {
	if raw == "" || maxLen <= 0 {
		return ""
	}

	text := stripPolicy.Sanitize(raw)
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace) + "..."
}
