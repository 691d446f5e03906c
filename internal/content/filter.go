// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"sort"
	"strings"
)

// The helpers in this file define the single authoritative implementation of
// list filtering, ordering, and pagination used by the fallback path. The
// store path expresses the same rules in SQL; parity between the two is
// covered by tests so the caller cannot distinguish data provenance.

// matchesSearch reports whether the query occurs, case-insensitively, in the
// title or body.
func matchesSearch(title, body, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(title), q) ||
		strings.Contains(strings.ToLower(body), q)
}

// matchesTag reports whether any of the post's tag slugs equals the filter.
func matchesTag(tagSlugs []string, tag string) bool {
	if tag == "" {
		return true
	}
	for _, s := range tagSlugs {
		if s == tag {
			return true
		}
	}
	return false
}

// sortRows orders rows by published_at DESC, id DESC — the documented
// stable order for all list responses.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].PublishedAt.Equal(rows[j].PublishedAt) {
			return rows[i].PublishedAt.After(rows[j].PublishedAt)
		}
		return rows[i].ID > rows[j].ID
	})
}

// paginate returns the page window for 1-based page and limit ≥ 1, plus the
// total size of the full set.
func paginate(rows []Row, page, limit int) ([]Row, int64) {
	total := int64(len(rows))
	start := (page - 1) * limit
	if start >= len(rows) {
		return nil, total
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total
}

// TotalPages computes ceil(total/limit) for limit ≥ 1.
func TotalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
