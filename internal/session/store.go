package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/dialtag/dialtag/internal/profile"
)

// currentSessionKey holds the single device-wide session slot.
const currentSessionKey = "currentSession"

// ErrCorrupt marks a stored session that could not be decoded. Holder treats
// it as "no session"; it is never surfaced to users.
var ErrCorrupt = errors.New("stored session is corrupt")

// Store persists the single current session across restarts.
type Store interface {
	Save(ctx context.Context, p profile.Profile) error
	Load(ctx context.Context) (profile.Profile, bool, error)
	Clear(ctx context.Context) error
}

// RedisStore keeps the session as a JSON profile under a fixed key.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, p profile.Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, currentSessionKey, payload, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context) (profile.Profile, bool, error) {
	raw, err := s.client.Get(ctx, currentSessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("load session: %w", err)
	}
	var p profile.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return profile.Profile{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return p, true, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, currentSessionKey).Err()
}

// MemoryStore is an in-process session store for tests and development fallback.
type MemoryStore struct {
	mu     sync.Mutex
	p      profile.Profile
	active bool
}

// NewMemoryStore builds an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
	s.active = true
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (profile.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p, s.active, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = profile.Profile{}
	s.active = false
	return nil
}
