// Package cache keeps job skill tests in Redis so candidates opening a test do not hit
// PostgreSQL for the questions on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recruitment-workers/internal/common/metrics"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "skilltest:job:"

// SkillTestCache stores SkillTestBundle values as JSON.
type SkillTestCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ repository.SkillTestCache = (*SkillTestCache)(nil)

func NewSkillTestCache(client redis.Cmdable, ttl time.Duration) *SkillTestCache {
	return &SkillTestCache{client: client, ttl: ttl}
}

func key(jobID string) string {
	return keyPrefix + jobID
}

func (c *SkillTestCache) Get(ctx context.Context, jobID string) (*models.SkillTestBundle, error) {
	raw, err := c.client.Get(ctx, key(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.SkillTestCacheLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		metrics.SkillTestCacheLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("redis get %s: %w", key(jobID), err)
	}

	var bundle models.SkillTestBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		// a corrupt entry is treated as a miss and overwritten on the next Set
		metrics.SkillTestCacheLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}
	metrics.SkillTestCacheLookups.WithLabelValues("hit").Inc()
	return &bundle, nil
}

func (c *SkillTestCache) Set(ctx context.Context, bundle *models.SkillTestBundle) error {
	raw, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encode skill test: %w", err)
	}
	if err := c.client.Set(ctx, key(bundle.Test.JobID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key(bundle.Test.JobID), err)
	}
	return nil
}

func (c *SkillTestCache) Invalidate(ctx context.Context, jobID string) error {
	if err := c.client.Del(ctx, key(jobID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key(jobID), err)
	}
	return nil
}
