// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "errors"

var (
	// ErrStoreUnavailable reports that the backing store could not serve a
	// query: unreachable, timed out, or returned a malformed row. The
	// delivery layer reacts by falling back, never by surfacing it.
	ErrStoreUnavailable = errors.New("content store unavailable")

	// ErrNotFound reports that a post is absent from both the store and the
	// fallback dataset.
	ErrNotFound = errors.New("post not found")
)
