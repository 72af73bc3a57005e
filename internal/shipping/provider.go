package shipping

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/logger"
	"github.com/sivermarket/siver-backend/pkg/redis"
)

// rateCache is the subset of the redis client the provider needs.
type rateCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// CachedRateProvider serves the bracket table from Redis, falling back to the
// database on a miss. The table is validated before it is served or cached.
type CachedRateProvider struct {
	repo  Repository
	cache rateCache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCachedRateProvider builds the provider. A nil cache degrades to straight
// DB reads, which keeps SQLite dev runs working without Redis.
func NewCachedRateProvider(repo Repository, cache *redis.Client, ttl time.Duration, logg *logger.Logger) *CachedRateProvider {
	p := &CachedRateProvider{repo: repo, ttl: ttl, logg: logg}
	if cache != nil {
		p.cache = cache
	}
	return p
}

func (p *CachedRateProvider) cacheKey() string {
	if p.cache == nil {
		return ""
	}
	return p.cache.CacheKey("shipping", "brackets")
}

// Brackets returns the validated rate table, cache-first.
func (p *CachedRateProvider) Brackets(ctx context.Context) ([]models.ShippingRateBracket, error) {
	if p.cache != nil {
		raw, err := p.cache.Get(ctx, p.cacheKey())
		if err == nil && raw != "" {
			var brackets []models.ShippingRateBracket
			if jsonErr := json.Unmarshal([]byte(raw), &brackets); jsonErr == nil {
				return brackets, nil
			}
			// Corrupt cache entry; drop it and reload from the DB.
			_ = p.cache.Del(ctx, p.cacheKey())
		} else if err != nil && !redis.IsNil(err) && p.logg != nil {
			p.logg.Warn(p.logg.WithField(ctx, "error", err.Error()), "rate cache read failed, falling back to db")
		}
	}

	brackets, err := p.repo.ListBrackets(ctx)
	if err != nil {
		return nil, err
	}
	if err := ValidateBrackets(brackets); err != nil {
		return nil, err
	}
	SortBrackets(brackets)

	if p.cache != nil {
		if encoded, err := json.Marshal(brackets); err == nil {
			if err := p.cache.Set(ctx, p.cacheKey(), string(encoded), p.ttl); err != nil && p.logg != nil {
				p.logg.Warn(p.logg.WithField(ctx, "error", err.Error()), "rate cache write failed")
			}
		}
	}
	return brackets, nil
}

// Invalidate drops the cached table after an admin edit.
func (p *CachedRateProvider) Invalidate(ctx context.Context) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Del(ctx, p.cacheKey()); err != nil && p.logg != nil {
		p.logg.Warn(p.logg.WithField(ctx, "error", err.Error()), "rate cache invalidation failed")
	}
}
