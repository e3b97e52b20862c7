package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix = "profile:id:"
	contactKeyPrefix = "profile:contact:"
	profileOrderKey  = "profile:ids"
)

// RedisRepository implements Repository on a Redis keyspace. Each profile is a
// JSON value under profile:id:<id>; profile:contact:<number> indexes the
// contact number and is claimed with SETNX, so the uniqueness check and the
// claim are a single atomic step rather than a read-then-write.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository builds a Redis-backed profile repository.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Create(ctx context.Context, p Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	claimed, err := r.client.SetNX(ctx, contactKeyPrefix+p.ContactNumber, p.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("claim contact number: %w", err)
	}
	if !claimed {
		return ErrDuplicateContact
	}

	if err := r.client.Set(ctx, profileKeyPrefix+p.ID, payload, 0).Err(); err != nil {
		r.client.Del(ctx, contactKeyPrefix+p.ContactNumber) // best effort rollback
		return fmt.Errorf("store profile: %w", err)
	}
	if err := r.client.RPush(ctx, profileOrderKey, p.ID).Err(); err != nil {
		return fmt.Errorf("record insertion order: %w", err)
	}
	return nil
}

func (r *RedisRepository) FindByID(ctx context.Context, id string) (Profile, error) {
	return r.get(ctx, profileKeyPrefix+id)
}

func (r *RedisRepository) FindByContact(ctx context.Context, contactNumber string) (Profile, error) {
	id, err := r.client.Get(ctx, contactKeyPrefix+contactNumber).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("lookup contact index: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *RedisRepository) All(ctx context.Context) ([]Profile, error) {
	ids, err := r.client.LRange(ctx, profileOrderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list profile ids: %w", err)
	}
	profiles := make([]Profile, 0, len(ids))
	for _, id := range ids {
		p, err := r.get(ctx, profileKeyPrefix+id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *RedisRepository) get(ctx context.Context, key string) (Profile, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("decode stored profile: %w", err)
	}
	return p, nil
}
