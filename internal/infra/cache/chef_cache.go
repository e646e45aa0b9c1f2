package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ChefCache holds serialized public chef summaries. A nil client turns every
// call into a miss or a no-op.
type ChefCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewChefCache(client *redis.Client, ttl time.Duration) *ChefCache {
	return &ChefCache{client: client, ttl: ttl}
}

func chefKey(chefID uint) string {
	return fmt.Sprintf("chef_summary:%d", chefID)
}

// versionKey is bumped on every invalidation. Readers filling the cache
// after a miss only write if it has not moved since before their DB read.
func versionKey(chefID uint) string {
	return fmt.Sprintf("chef_summary_ver:%d", chefID)
}

func (c *ChefCache) enabled() bool {
	return c != nil && c.client != nil
}

// Get decodes the cached summary into dst and reports whether it was found.
func (c *ChefCache) Get(ctx context.Context, chefID uint, dst any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}

	val, err := c.client.Get(ctx, chefKey(chefID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get chef summary from redis: %w", err)
	}

	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal chef summary: %w", err)
	}
	return true, nil
}

func (c *ChefCache) Set(ctx context.Context, chefID uint, v any) error {
	if !c.enabled() {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal chef summary: %w", err)
	}
	if err := c.client.Set(ctx, chefKey(chefID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set chef summary in redis: %w", err)
	}
	return nil
}

// Version returns the invalidation counter of chefID. Read it before loading
// the summary from the database and pass it to SetIfVersion.
func (c *ChefCache) Version(ctx context.Context, chefID uint) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}

	v, err := c.client.Get(ctx, versionKey(chefID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get chef summary version from redis: %w", err)
	}
	return v, nil
}

// SetIfVersion stores v only while the version is still ver. It reports
// whether v was stored; false means an invalidation happened in between.
func (c *ChefCache) SetIfVersion(ctx context.Context, chefID uint, v any, ver int64) (bool, error) {
	if !c.enabled() {
		return false, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("failed to marshal chef summary: %w", err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, versionKey(chefID)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != ver {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, chefKey(chefID), data, c.ttl)
			return nil
		})
		stored = err == nil
		return err
	}, versionKey(chefID))

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to set chef summary in redis: %w", err)
	}
	return stored, nil
}

// Invalidate drops the cached summary and bumps its version.
func (c *ChefCache) Invalidate(ctx context.Context, chefID uint) error {
	if !c.enabled() {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, chefKey(chefID))
		p.Incr(ctx, versionKey(chefID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate chef summary in redis: %w", err)
	}
	return nil
}
