package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

const CatalogKey = "photographers:catalog"

// CatalogCache keeps the joined photographer catalog in Redis as one JSON
// document under CatalogKey.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// Get reports a miss with ok == false and a nil error.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Photographer, bool, error) {
	raw, err := c.client.Get(ctx, CatalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get catalog from cache: %w", err)
	}

	var catalog []domain.Photographer
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached catalog: %w", err)
	}

	return catalog, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, catalog []domain.Photographer) error {
	raw, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := c.client.Set(ctx, CatalogKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set catalog in cache: %w", err)
	}

	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, CatalogKey).Err(); err != nil {
		return fmt.Errorf("failed to delete catalog from cache: %w", err)
	}
	return nil
}
