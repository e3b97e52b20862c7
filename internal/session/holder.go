// Package session keeps the device's single authenticated-profile slot. At
// most one session exists at a time; it survives restarts until an explicit
// logout clears it.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dialtag/dialtag/internal/profile"
)

// Holder caches the current session in process and writes every change
// through to the durable store.
type Holder struct {
	mu     sync.RWMutex
	store  Store
	p      profile.Profile
	active bool
}

// NewHolder restores the session slot from the store. An absent or corrupt
// stored session degrades to "no session"; only store connectivity failures
// are returned as errors.
func NewHolder(ctx context.Context, store Store, logger *slog.Logger) (*Holder, error) {
	h := &Holder{store: store}

	p, active, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			if logger != nil {
				logger.Warn("discarding corrupt stored session", "error", err)
			}
			// Best effort: drop the bad value so the next restore is clean.
			_ = store.Clear(ctx)
			return h, nil
		}
		return nil, err
	}

	h.p = p
	h.active = active
	return h, nil
}

// Start makes the given profile the current session, overwriting any prior one.
func (h *Holder) Start(ctx context.Context, p profile.Profile) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Save(ctx, p); err != nil {
		return err
	}
	h.p = p
	h.active = true
	return nil
}

// End clears the session. Ending with no active session is not an error.
func (h *Holder) End(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Clear(ctx); err != nil {
		return err
	}
	h.p = profile.Profile{}
	h.active = false
	return nil
}

// Current returns the session's profile, if any. It never fails.
func (h *Holder) Current() (profile.Profile, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.p, h.active
}
