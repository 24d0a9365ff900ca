package providerRepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Philip2024394/website-massage--sub045/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const availableProvidersKey = "providers:available"

// availablePoolTTL bounds how stale a cached rebroadcast pool may be.
const availablePoolTTL = 15 * time.Second

// cachedProviderRepo fronts a ProviderRepository with a short-lived Redis
// cache of the available pool. Assign and release invalidate the entry; any
// cache failure falls through to the backing store.
type cachedProviderRepo struct {
	inner  ProviderRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProviderRepo wraps inner with Redis caching of ListAvailable.
func NewCachedProviderRepo(inner ProviderRepository, cache *redis.Client, logger *zap.Logger) ProviderRepository {
	return &cachedProviderRepo{
		inner:  inner,
		cache:  cache,
		ttl:    availablePoolTTL,
		logger: logger,
	}
}

func (r *cachedProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *cachedProviderRepo) ListAvailable(ctx context.Context) ([]models.Provider, error) {
	if data, err := r.cache.Get(ctx, availableProvidersKey).Result(); err == nil {
		var providers []models.Provider
		if err := json.Unmarshal([]byte(data), &providers); err == nil {
			return providers, nil
		}
	}

	providers, err := r.inner.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(providers); err == nil {
		if err := r.cache.Set(ctx, availableProvidersKey, data, r.ttl).Err(); err != nil {
			r.logger.Debug("failed to cache available providers", zap.Error(err))
		}
	}
	return providers, nil
}

func (r *cachedProviderRepo) Assign(ctx context.Context, providerID, bookingID string) error {
	if err := r.inner.Assign(ctx, providerID, bookingID); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedProviderRepo) ReleaseIfAssigned(ctx context.Context, providerID, bookingID string) (bool, error) {
	released, err := r.inner.ReleaseIfAssigned(ctx, providerID, bookingID)
	if err != nil {
		return false, err
	}
	if released {
		r.invalidate(ctx)
	}
	return released, nil
}

func (r *cachedProviderRepo) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, availableProvidersKey).Err(); err != nil {
		r.logger.Debug("failed to invalidate provider pool cache", zap.Error(err))
	}
}
