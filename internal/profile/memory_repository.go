package profile

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu        sync.RWMutex
	byID      map[string]Profile
	byContact map[string]string
	order     []string
}

// NewMemoryRepository builds an in-memory profile store for tests and
// development fallback.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:      make(map[string]Profile),
		byContact: make(map[string]string),
	}
}

func (r *memoryRepository) Create(_ context.Context, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byContact[p.ContactNumber]; exists {
		return ErrDuplicateContact
	}
	r.byID[p.ID] = p
	r.byContact[p.ContactNumber] = p.ID
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) FindByContact(_ context.Context, contactNumber string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byContact[contactNumber]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *memoryRepository) All(_ context.Context) ([]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profiles := make([]Profile, 0, len(r.order))
	for _, id := range r.order {
		profiles = append(profiles, r.byID[id])
	}
	return profiles, nil
}
