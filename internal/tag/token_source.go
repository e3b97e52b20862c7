package tag

import (
	"context"
	"errors"

	"github.com/dialtag/dialtag/internal/profile"
)

var (
	// ErrPermissionDenied is returned when the scanning hardware refuses access.
	ErrPermissionDenied = errors.New("camera permission denied")
	// ErrNoTokenFound is returned when a scan attempt produced no token.
	ErrNoTokenFound = errors.New("no code found")
)

// TokenSource produces at most one opaque token per scan attempt. The real
// implementation lives in the mobile client next to the camera; this service
// only ever sees the resulting token.
type TokenSource interface {
	Next(ctx context.Context) (string, error)
}

// SimulatedSource stands in for a camera scan during development: it yields
// the earliest registered profile's identifier, or ErrNoTokenFound when the
// store is empty.
type SimulatedSource struct {
	repo profile.Repository
}

// NewSimulatedSource builds a TokenSource backed by the profile store.
func NewSimulatedSource(repo profile.Repository) *SimulatedSource {
	return &SimulatedSource{repo: repo}
}

func (s *SimulatedSource) Next(ctx context.Context) (string, error) {
	profiles, err := s.repo.All(ctx)
	if err != nil {
		return "", err
	}
	if len(profiles) == 0 {
		return "", ErrNoTokenFound
	}
	return profiles[0].ID, nil
}
