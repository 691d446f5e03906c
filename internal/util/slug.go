// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugMultiDash    = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a string into a URL-safe slug: accents are stripped,
// the result is lowercased and non-alphanumeric runs collapse to single
// hyphens.
func Slugify(s string) string {
	// Decompose and drop combining marks so "café" becomes "cafe".
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if normalized, _, err := transform.String(t, s); err == nil {
		s = normalized
	}

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalidChars.ReplaceAllString(s, "-")
	s = slugMultiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
