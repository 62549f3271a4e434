package cached

import (
	"context"
	"time"

	"github.com/okembo/profilehub/internal/cache"
	"github.com/okembo/profilehub/internal/models"
	pgrepo "github.com/okembo/profilehub/internal/repositories/postgres"
)

const keyPrefix = "profile:"

// ProfileRepository decorates a ProfileRepository with a read-through
// cache. Cache failures degrade to the inner store; an upsert refreshes
// the owner's entry so the post-save reload sees the row the store now
// holds.
type ProfileRepository struct {
	inner pgrepo.ProfileRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewProfileRepository(inner pgrepo.ProfileRepository, c cache.Cache, ttl time.Duration) *ProfileRepository {
	return &ProfileRepository{inner: inner, cache: c, ttl: ttl}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	key := keyPrefix + userID

	var p models.Profile
	if hit, err := r.cache.GetJSON(ctx, key, &p); err == nil && hit {
		return &p, nil
	}

	row, err := r.inner.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	_ = r.cache.SetJSON(ctx, key, row, r.ttl)
	return row, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	if err := r.inner.Upsert(ctx, p); err != nil {
		return err
	}
	// write-through so the post-save reload never sees a stale entry;
	// if the set fails, drop the key instead
	key := keyPrefix + p.UserID
	if err := r.cache.SetJSON(ctx, key, p, r.ttl); err != nil {
		_ = r.cache.Del(ctx, key)
	}
	return nil
}
