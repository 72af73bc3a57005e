package redis

import (
	"testing"

	"github.com/sivermarket/siver-backend/pkg/config"
)

func TestBuildKeyNamespacesAndSkipsBlanks(t *testing.T) {
	c := &Client{}
	if got := c.IdempotencyKey("po", "abc"); got != "sv:idempotency:po:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := c.CacheKey("shipping", "", "rates"); got != "sv:cache:shipping:rates" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 5})
	if err != nil {
		t.Fatalf("optionsFromConfig: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr: %s", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db: %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("pool size not applied: %d", opts.PoolSize)
	}
}
