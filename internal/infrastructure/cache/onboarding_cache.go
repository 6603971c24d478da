package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const onboardingFlagTTL = 30 * time.Second

// OnboardingFlagCache shortcuts the per-request onboarding_complete read the
// gating middleware performs. A nil client degrades to a permanent miss.
type OnboardingFlagCache struct {
	client *redis.Client
}

func NewOnboardingFlagCache(client *redis.Client) *OnboardingFlagCache {
	return &OnboardingFlagCache{client: client}
}

func flagKey(uniqueID string) string {
	return fmt.Sprintf("onboarding:%s", uniqueID)
}

// Get returns (value, hit). Cache errors count as misses; the caller falls
// back to the store read.
func (c *OnboardingFlagCache) Get(ctx context.Context, uniqueID string) (bool, bool) {
	if c == nil || c.client == nil {
		return false, false
	}
	val, err := c.client.Get(ctx, flagKey(uniqueID)).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

func (c *OnboardingFlagCache) Set(ctx context.Context, uniqueID string, complete bool) {
	if c == nil || c.client == nil {
		return
	}
	val := "0"
	if complete {
		val = "1"
	}
	_ = c.client.Set(ctx, flagKey(uniqueID), val, onboardingFlagTTL).Err()
}

// Invalidate drops the cached flag after onboarding submission so the gate
// sees the flip immediately.
func (c *OnboardingFlagCache) Invalidate(ctx context.Context, uniqueID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, flagKey(uniqueID)).Err()
}
