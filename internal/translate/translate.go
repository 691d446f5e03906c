// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate implements the batch translation orchestrator: it chunks
// a target-language set, drives the AI translation backend one chunk at a
// time under cancellation, and aggregates per-language outcomes.
package translate

import (
	"context"
	"errors"

	"github.com/clearcut-app/content-api/internal/model"
)

// Terminal run statuses. Cancelled is deliberately distinct from a run that
// completed with failures.
const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Per-language outcomes reported by the backend.
type Outcome string

const (
	OutcomeTranslated Outcome = "translated"
	OutcomeFailed     Outcome = "failed"
	OutcomeSkipped    Outcome = "skipped"
)

// ErrRunInProgress reports that another translation run is active for the
// same post. Concurrent runs on one post are rejected rather than queued.
var ErrRunInProgress = errors.New("translation run already in progress for this post")

// ValidationError reports a request that fails fast before any network call.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// ChunkJob is the unit of work the backend receives: one chunk of target
// languages plus the post's canonical content.
type ChunkJob struct {
	Post      model.Post
	Canonical model.Translation
	Languages []string
}

// ChunkResult enumerates, per language, whether it was translated, failed,
// or skipped (already up to date). The orchestrator does not second-guess
// the backend's classification.
type ChunkResult struct {
	Statuses map[string]Outcome
}

// Backend performs one network call per chunk. A returned error means the
// whole chunk failed; per-language outcomes are only available on success.
type Backend interface {
	TranslateChunk(ctx context.Context, job ChunkJob) (*ChunkResult, error)
}

// Result is the terminal state of a run. The three slices partition the
// processed languages; their combined length never exceeds the target count
// and equals it exactly when Status is StatusCompleted.
type Result struct {
	Status     string
	Successful []string
	Failed     []string
	Skipped    []string

	// Languages is the post's translation list re-fetched from the store
	// after the run, so callers see persisted state rather than optimistic
	// local bookkeeping.
	Languages []string
}
