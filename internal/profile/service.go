package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minSecretLength = 6

// IDGenerator produces collision-resistant opaque profile identifiers. It is
// injected so the random source can be swapped out in tests.
type IDGenerator func() string

// UUIDGenerator is the default IDGenerator.
func UUIDGenerator() string {
	return uuid.NewString()
}

// Service manages the profile lifecycle: registration and credential checks.
type Service struct {
	repo Repository
	ids  IDGenerator
}

// NewService creates a profile service backed by the given repository.
func NewService(repo Repository, ids IDGenerator) *Service {
	if ids == nil {
		ids = UUIDGenerator
	}
	return &Service{repo: repo, ids: ids}
}

// Register validates the input, hashes the secret and stores a new profile.
// The contact number must not be registered already.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Profile, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return Profile{}, errors.New("full name is required")
	}
	if strings.TrimSpace(input.ContactNumber) == "" {
		return Profile{}, errors.New("contact number is required")
	}
	if len(input.Secret) < minSecretLength {
		return Profile{}, errors.New("password must be at least 6 characters")
	}
	if input.Secret != input.ConfirmSecret {
		return Profile{}, errors.New("passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Secret), bcrypt.DefaultCost)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		ID:                 s.ids(),
		FullName:           input.FullName,
		ContactNumber:      input.ContactNumber,
		EmergencyNumber:    input.EmergencyNumber,
		SecretHash:         hash,
		AllowEmergencyCall: input.AllowEmergencyCall,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}

	return p, nil
}

// Authenticate verifies a contact number and secret pair. An unknown contact
// number and a wrong secret both produce ErrInvalidCredentials so callers
// cannot probe which numbers are registered.
func (s *Service) Authenticate(ctx context.Context, contactNumber, secret string) (Profile, error) {
	p, err := s.repo.FindByContact(ctx, contactNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, ErrInvalidCredentials
		}
		return Profile{}, err
	}
	if err := bcrypt.CompareHashAndPassword(p.SecretHash, []byte(secret)); err != nil {
		return Profile{}, ErrInvalidCredentials
	}
	return p, nil
}

// GetByID resolves a profile by its identifier.
func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	return s.repo.FindByID(ctx, id)
}
