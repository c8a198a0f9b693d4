package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const preferenceTTL = 365 * 24 * time.Hour

// PreferenceRepository mirrors visitors' locale choice in redis.
type PreferenceRepository struct {
	rdb *redis.Client
}

func NewPreferenceRepository(rdb *redis.Client) *PreferenceRepository {
	return &PreferenceRepository{rdb: rdb}
}

func preferenceKey(visitorID string) string {
	return "tptech:locale:" + visitorID
}

func (r *PreferenceRepository) LoadLocale(ctx context.Context, visitorID string) (string, error) {
	v, err := r.rdb.Get(ctx, preferenceKey(visitorID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (r *PreferenceRepository) SaveLocale(ctx context.Context, visitorID, locale string) error {
	return r.rdb.Set(ctx, preferenceKey(visitorID), locale, preferenceTTL).Err()
}
