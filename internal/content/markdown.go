// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"log/slog"

	"github.com/yuin/goldmark"

	"github.com/clearcut-app/content-api/internal/model"
)

// RenderBody converts a translation body to HTML. Markdown-format bodies are
// rendered with goldmark; HTML bodies pass through untouched. Rendering
// failure degrades to the raw body rather than failing the response.
func RenderBody(body, format string) string {
	if format != model.FormatMarkdown {
		return body
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		slog.Warn("markdown render failed, serving raw body", "error", err)
		return body
	}
	return buf.String()
}
