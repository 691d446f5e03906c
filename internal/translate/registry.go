// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import "sync"

// runRegistry guards against two concurrent translation runs on the same
// post id within this process.
type runRegistry struct {
	mu     sync.Mutex
	active map[int64]struct{}
}

func newRunRegistry() *runRegistry {
	return &runRegistry{active: make(map[int64]struct{})}
}

// tryAcquire reserves the post for a run. Returns false when a run is
// already active.
func (r *runRegistry) tryAcquire(postID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.active[postID]; busy {
		return false
	}
	r.active[postID] = struct{}{}
	return true
}

func (r *runRegistry) release(postID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, postID)
}
