package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/builderstack/appserver/internal/model"
)

// InstancesKey holds the JSON encoded result of the last successful listing.
const InstancesKey = "lakebase:instances"

// GetInstances returns the cached instance records.
// Returns ErrCacheMiss if nothing is cached.
func (c *Cache) GetInstances(ctx context.Context) ([]model.InstanceRecord, error) {
	raw, err := c.client.Get(ctx, InstancesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return decodeInstances(raw)
}

// SetInstances caches records for ttl.
func (c *Cache) SetInstances(ctx context.Context, records []model.InstanceRecord, ttl time.Duration) error {
	raw, err := encodeInstances(records)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, InstancesKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateInstances drops the cached listing.
func (c *Cache) InvalidateInstances(ctx context.Context) error {
	if err := c.client.Del(ctx, InstancesKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func encodeInstances(records []model.InstanceRecord) ([]byte, error) {
	if records == nil {
		records = []model.InstanceRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode instances: %w", err)
	}
	return raw, nil
}

func decodeInstances(raw []byte) ([]model.InstanceRecord, error) {
	var records []model.InstanceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode cached instances: %w", err)
	}
	if records == nil {
		records = []model.InstanceRecord{}
	}
	return records, nil
}
