// Package resolver turns package specifiers into a single best-match package using a
// lazily built package index.
package resolver

import (
	"context"
	"sync"
	"time"

	slogcontext "github.com/veqryn/slog-context"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/sackd/internal/engine/sack"
	"go.trai.ch/zerr"
)

// Handle owns the loaded package index. It is built on first use and dropped by Invalidate.
type Handle struct {
	loader ports.RepositoryLoader

	mu   sync.Mutex
	sack *sack.Sack
}

// NewHandle creates an unloaded handle backed by loader.
func NewHandle(loader ports.RepositoryLoader) *Handle {
	return &Handle{loader: loader}
}

// Get returns the loaded index, building it synchronously if needed.
// A failed build leaves the handle unloaded.
func (h *Handle) Get(ctx context.Context) (*sack.Sack, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sack != nil {
		return h.sack, nil
	}

	start := time.Now()
	pkgs, err := h.loader.LoadAll(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexBuildFailed.Error())
	}
	h.sack = sack.New(pkgs)

	slogcontext.FromCtx(ctx).Debug("package index built",
		"packages", h.sack.Len(),
		"duration", time.Since(start),
	)
	return h.sack, nil
}

// Invalidate drops the loaded index. The next Get rebuilds it.
func (h *Handle) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sack = nil
}

// Loaded reports whether an index is currently held.
func (h *Handle) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sack != nil
}
