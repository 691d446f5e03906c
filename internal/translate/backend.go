// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/clearcut-app/content-api/internal/model"
	"github.com/clearcut-app/content-api/internal/store"
)

// OpenAIBackendConfig configures the OpenAI-backed translation backend.
type OpenAIBackendConfig struct {
	APIKey  string
	BaseURL string // optional override for OpenAI-compatible endpoints
	Model   string
}

// OpenAIBackend translates chunks with a single chat completion per chunk
// and persists the results. Languages whose stored translation is already
// at least as fresh as the canonical content are reported as skipped
// without being sent to the model.
type OpenAIBackend struct {
	client  openai.Client
	model   string
	queries *store.Queries
	log     *slog.Logger
}

// NewOpenAIBackend creates the production translation backend.
func NewOpenAIBackend(cfg OpenAIBackendConfig, queries *store.Queries, log *slog.Logger) *OpenAIBackend {
	if log == nil {
		log = slog.Default()
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIBackend{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		queries: queries,
		log:     log,
	}
}

// translatedFields is the per-language payload the model must return.
type translatedFields struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

// TranslateChunk implements Backend. It issues one network call carrying
// the chunk's pending language list and the canonical content.
func (b *OpenAIBackend) TranslateChunk(ctx context.Context, job ChunkJob) (*ChunkResult, error) {
	statuses := make(map[string]Outcome, len(job.Languages))

	var pending []string
	for _, lang := range job.Languages {
		existing, err := b.queries.GetTranslation(ctx, job.Post.ID, lang)
		switch {
		case err == nil && existing.IsCurrentAgainst(&job.Canonical):
			statuses[lang] = OutcomeSkipped
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("checking translation %s: %w", lang, err)
		default:
			pending = append(pending, lang)
		}
	}

	if len(pending) > 0 {
		translated, err := b.complete(ctx, job, pending)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		for _, lang := range pending {
			fields, ok := translated[lang]
			if !ok || fields.Title == "" || fields.Content == "" {
				b.log.Warn("model returned incomplete translation",
					"category", "translate", "post_id", job.Post.ID, "language", lang)
				statuses[lang] = OutcomeFailed
				continue
			}
			err := b.queries.UpsertTranslation(ctx, store.UpsertTranslationParams{
				PostID:          job.Post.ID,
				LanguageCode:    lang,
				Title:           fields.Title,
				Content:         fields.Content,
				Format:          job.Canonical.Format,
				MetaTitle:       fields.MetaTitle,
				MetaDescription: fields.MetaDescription,
				UpdatedAt:       now,
			})
			if err != nil {
				b.log.Warn("persisting translation failed",
					"category", "translate", "post_id", job.Post.ID, "language", lang, "error", err)
				statuses[lang] = OutcomeFailed
				continue
			}
			statuses[lang] = OutcomeTranslated
		}
	}

	return &ChunkResult{Statuses: statuses}, nil
}

// complete performs the chunk's single chat completion and parses the
// per-language JSON payload.
func (b *OpenAIBackend) complete(ctx context.Context, job ChunkJob, langs []string) (map[string]translatedFields, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(translationSystemPrompt),
			openai.UserMessage(buildChunkPrompt(job.Canonical, langs)),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("translation call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("translation call: no choices returned")
	}

	return parseChunkResponse(resp.Choices[0].Message.Content)
}

const translationSystemPrompt = `You are a professional translator for a software product blog.
You translate HTML or Markdown content while preserving its markup structure exactly.

Respond with a single JSON object (no markdown code fences, no extra text) keyed by
ISO 639-1 language code. For every requested language provide:

{
  "<code>": {
    "title": "translated title",
    "content": "translated body with markup preserved",
    "meta_title": "translated meta title",
    "meta_description": "translated meta description"
  }
}

Rules:
- Translate every requested language; do not omit any.
- Never translate HTML tag names, attributes, URLs, or code blocks.
- Keep the tone of the original.
- Respond ONLY with the JSON object.`

func buildChunkPrompt(canonical model.Translation, langs []string) string {
	var sb strings.Builder
	sb.WriteString("Target languages: ")
	sb.WriteString(strings.Join(langs, ", "))
	sb.WriteString("\n\nTitle: ")
	sb.WriteString(canonical.Title)
	if canonical.MetaTitle != "" {
		sb.WriteString("\nMeta title: ")
		sb.WriteString(canonical.MetaTitle)
	}
	if canonical.MetaDescription != "" {
		sb.WriteString("\nMeta description: ")
		sb.WriteString(canonical.MetaDescription)
	}
	sb.WriteString("\n\nContent:\n")
	sb.WriteString(canonical.Content)
	return sb.String()
}

// parseChunkResponse extracts the per-language JSON from the model output,
// tolerating stray code fences or surrounding prose.
func parseChunkResponse(response string) (map[string]translatedFields, error) {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	out := make(map[string]translatedFields)
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		start := strings.Index(response, "{")
		end := strings.LastIndex(response, "}")
		if start >= 0 && end > start {
			if err2 := json.Unmarshal([]byte(response[start:end+1]), &out); err2 != nil {
				return nil, fmt.Errorf("could not parse translation response: %w", err2)
			}
			return out, nil
		}
		return nil, fmt.Errorf("no JSON found in translation response: %w", err)
	}
	return out, nil
}
