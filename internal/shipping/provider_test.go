package shipping

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sivermarket/siver-backend/pkg/db/models"
)

type fakeCache struct {
	values map[string]string
	gets   int
	sets   int
	dels   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.gets++
	v, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.sets++
	f.values[key] = value.(string)
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	f.dels++
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeCache) CacheKey(parts ...string) string {
	return "sv:cache:" + strings.Join(parts, ":")
}

func TestCachedRateProviderCacheMissLoadsAndStores(t *testing.T) {
	repo := &stubRepo{brackets: testBrackets()}
	cache := newFakeCache()
	p := &CachedRateProvider{repo: repo, cache: cache, ttl: time.Minute}

	brackets, err := p.Brackets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(brackets) != 2 {
		t.Fatalf("expected 2 brackets, got %d", len(brackets))
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache write after miss")
	}
}

func TestCachedRateProviderCacheHitSkipsDB(t *testing.T) {
	cache := newFakeCache()
	encoded, _ := json.Marshal(testBrackets())
	cache.values[cache.CacheKey("shipping", "brackets")] = string(encoded)

	// repo with no brackets proves the DB was not consulted
	p := &CachedRateProvider{repo: &stubRepo{}, cache: cache, ttl: time.Minute}

	brackets, err := p.Brackets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(brackets) != 2 {
		t.Fatalf("expected cached brackets, got %d", len(brackets))
	}
	if cache.sets != 0 {
		t.Fatalf("unexpected cache write on hit")
	}
}

func TestCachedRateProviderRejectsInvalidTable(t *testing.T) {
	repo := &stubRepo{brackets: []models.ShippingRateBracket{
		{MinWeightKg: 0, MaxWeightKg: 1, Position: 0},
		{MinWeightKg: 3, MaxWeightKg: 5, Position: 1}, // gap
	}}
	p := &CachedRateProvider{repo: repo, cache: newFakeCache(), ttl: time.Minute}

	if _, err := p.Brackets(context.Background()); err == nil {
		t.Fatalf("expected validation error for gapped table")
	}
}

func TestCachedRateProviderWorksWithoutCache(t *testing.T) {
	p := &CachedRateProvider{repo: &stubRepo{brackets: testBrackets()}, ttl: time.Minute}

	brackets, err := p.Brackets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(brackets) != 2 {
		t.Fatalf("expected brackets from db")
	}
}

func TestCachedRateProviderInvalidate(t *testing.T) {
	cache := newFakeCache()
	cache.values[cache.CacheKey("shipping", "brackets")] = "[]"
	p := &CachedRateProvider{repo: &stubRepo{brackets: testBrackets()}, cache: cache, ttl: time.Minute}

	p.Invalidate(context.Background())
	if len(cache.values) != 0 {
		t.Fatalf("cache entry survived invalidation")
	}
}
