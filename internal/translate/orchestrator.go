// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/clearcut-app/content-api/internal/content"
	"github.com/clearcut-app/content-api/internal/model"
	"github.com/clearcut-app/content-api/internal/store"
)

// LanguageCatalog supplies the closed set of languages a run may target.
type LanguageCatalog interface {
	Active(ctx context.Context) ([]model.Language, error)
}

// Defaults for the run configuration.
const (
	DefaultBatchSize    = 5
	DefaultChunkDelay   = time.Second
	DefaultChunkTimeout = 60 * time.Second
)

// Config tunes a run. Zero values fall back to the defaults above.
type Config struct {
	// BatchSize is the fixed chunk size B.
	BatchSize int

	// ChunkDelay is inserted between completed chunks, never after the last.
	// It is the backpressure knob protecting the translation backend.
	ChunkDelay time.Duration

	// ChunkTimeout bounds each chunk's network call. A chunk exceeding it is
	// a chunk failure, not a stalled pipeline.
	ChunkTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.ChunkDelay <= 0 {
		c.ChunkDelay = DefaultChunkDelay
	}
	if c.ChunkTimeout <= 0 {
		c.ChunkTimeout = DefaultChunkTimeout
	}
	return c
}

// Orchestrator runs batch translation jobs. Chunks are processed strictly
// sequentially — never in parallel — to bound load on the translation
// backend; that is a deliberate policy, not a limitation.
type Orchestrator struct {
	backend Backend
	queries *store.Queries
	catalog LanguageCatalog
	cfg     Config
	runs    *runRegistry
	log     *slog.Logger
}

// NewOrchestrator creates a run orchestrator.
func NewOrchestrator(backend Backend, queries *store.Queries, catalog LanguageCatalog, cfg Config, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		backend: backend,
		queries: queries,
		catalog: catalog,
		cfg:     cfg.withDefaults(),
		runs:    newRunRegistry(),
		log:     log,
	}
}

// Run translates a post into the target languages. Targets are partitioned,
// in input order, into chunks of the configured batch size; cancellation of
// ctx takes effect at chunk boundaries and aborts the in-flight call.
// Returns ErrRunInProgress when the post already has an active run, a
// ValidationError before any network call for bad input, or
// content.ErrNotFound for an unknown post.
func (o *Orchestrator) Run(ctx context.Context, postID int64, targets []string) (*Result, error) {
	if !o.runs.tryAcquire(postID) {
		return nil, ErrRunInProgress
	}
	defer o.runs.release(postID)

	job, err := o.validate(ctx, postID, targets)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Status:     StatusCompleted,
		Successful: []string{},
		Failed:     []string{},
		Skipped:    []string{},
	}

	chunks := chunkLanguages(targets, o.cfg.BatchSize)
	o.log.Info("translation run started", "category", "translate",
		"post_id", postID, "languages", len(targets), "chunks", len(chunks))

	for i, chunk := range chunks {
		if ctx.Err() != nil {
			result.Status = StatusCancelled
			break
		}

		o.runChunk(ctx, ChunkJob{Post: job.Post, Canonical: job.Canonical, Languages: chunk}, result)
		if result.Status == StatusCancelled {
			break
		}

		if i < len(chunks)-1 {
			if !o.sleepBetweenChunks(ctx) {
				result.Status = StatusCancelled
				break
			}
		}
	}

	o.reconcile(postID, result)
	o.log.Info("translation run finished", "category", "translate",
		"post_id", postID, "status", result.Status,
		"successful", len(result.Successful), "failed", len(result.Failed),
		"skipped", len(result.Skipped))
	return result, nil
}

// validate fails fast, before any network call, when the post is missing,
// the target list is empty, malformed, or outside the active language
// catalog, or the canonical translation does not exist.
func (o *Orchestrator) validate(ctx context.Context, postID int64, targets []string) (*ChunkJob, error) {
	if len(targets) == 0 {
		return nil, ValidationError("target_languages must not be empty")
	}

	catalog, err := o.catalog.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading language catalog: %w", err)
	}
	active := make(map[string]bool, len(catalog))
	for _, l := range catalog {
		active[l.Code] = true
	}

	for _, code := range targets {
		if _, err := language.Parse(code); err != nil {
			return nil, ValidationError(fmt.Sprintf("invalid language code %q", code))
		}
		if !active[code] {
			return nil, ValidationError(fmt.Sprintf("language %q is not in the active catalog", code))
		}
	}

	post, err := o.queries.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, content.ErrNotFound
		}
		return nil, fmt.Errorf("loading post: %w", err)
	}

	defaultLang, err := o.queries.GetDefaultLanguage(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading default language: %w", err)
	}

	canonical, err := o.queries.GetTranslation(ctx, postID, defaultLang.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ValidationError("post has no canonical translation")
		}
		return nil, fmt.Errorf("loading canonical translation: %w", err)
	}

	return &ChunkJob{Post: post, Canonical: canonical}, nil
}

// runChunk issues the chunk's single network call and folds the outcome into
// the running totals. A failed call counts every language of the chunk as
// failed and the run continues — unless the failure was caused by the run's
// own cancellation, in which case nothing is counted and the run transitions
// to cancelled at this boundary.
func (o *Orchestrator) runChunk(ctx context.Context, job ChunkJob, result *Result) {
	cctx, cancel := context.WithTimeout(ctx, o.cfg.ChunkTimeout)
	defer cancel()

	res, err := o.backend.TranslateChunk(cctx, job)
	if err != nil {
		if ctx.Err() != nil {
			result.Status = StatusCancelled
			return
		}
		o.log.Warn("translation chunk failed", "category", "translate",
			"post_id", job.Post.ID, "languages", job.Languages, "error", err)
		result.Failed = append(result.Failed, job.Languages...)
		return
	}

	for _, lang := range job.Languages {
		switch res.Statuses[lang] {
		case OutcomeTranslated:
			result.Successful = append(result.Successful, lang)
		case OutcomeSkipped:
			result.Skipped = append(result.Skipped, lang)
		default:
			result.Failed = append(result.Failed, lang)
		}
	}
}

// sleepBetweenChunks waits the configured delay. Returns false when the run
// was cancelled during the wait.
func (o *Orchestrator) sleepBetweenChunks(ctx context.Context) bool {
	timer := time.NewTimer(o.cfg.ChunkDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// reconcile re-fetches the post's persisted translation list so the caller's
// view reflects the store rather than local bookkeeping. It runs on its own
// short context because the run's context may already be cancelled.
func (o *Orchestrator) reconcile(postID int64, result *Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	langs, err := o.queries.ListTranslationLanguages(ctx, postID)
	if err != nil {
		o.log.Warn("translation list reconciliation failed",
			"category", "translate", "post_id", postID, "error", err)
		return
	}
	result.Languages = langs
}

// chunkLanguages partitions targets, in input order, into fixed-size chunks.
func chunkLanguages(targets []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(targets); start += size {
		end := start + size
		if end > len(targets) {
			end = len(targets)
		}
		chunks = append(chunks, targets[start:end])
	}
	return chunks
}
