package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/partsdesk/partsdesk/internal/model"
)

// Catalog cache keys and TTL. The catalog is read-mostly, so a short
// TTL is the only invalidation mechanism.
const (
	featuredPartsKey = "catalog:featured"
	categoriesKey    = "catalog:categories"
	manufacturersKey = "catalog:manufacturers"
	partKeyPrefix    = "catalog:part:"
	catalogTTL       = 5 * time.Minute
)

// ErrCacheMiss is returned when a key is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// GetFeaturedParts retrieves the cached featured-parts list.
func (c *Cache) GetFeaturedParts(ctx context.Context) ([]*model.Part, error) {
	var parts []*model.Part
	if err := c.getJSON(ctx, featuredPartsKey, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// SetFeaturedParts caches the featured-parts list.
func (c *Cache) SetFeaturedParts(ctx context.Context, parts []*model.Part) error {
	return c.setJSON(ctx, featuredPartsKey, parts)
}

// GetPart retrieves a cached part by identifier.
func (c *Cache) GetPart(ctx context.Context, identifier string) (*model.Part, error) {
	var part model.Part
	if err := c.getJSON(ctx, partKeyPrefix+identifier, &part); err != nil {
		return nil, err
	}
	return &part, nil
}

// SetPart caches a part under its identifier.
func (c *Cache) SetPart(ctx context.Context, identifier string, part *model.Part) error {
	return c.setJSON(ctx, partKeyPrefix+identifier, part)
}

// GetCategories retrieves the cached category list.
func (c *Cache) GetCategories(ctx context.Context) ([]string, error) {
	var values []string
	if err := c.getJSON(ctx, categoriesKey, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// SetCategories caches the category list.
func (c *Cache) SetCategories(ctx context.Context, values []string) error {
	return c.setJSON(ctx, categoriesKey, values)
}

// GetManufacturers retrieves the cached manufacturer list.
func (c *Cache) GetManufacturers(ctx context.Context) ([]string, error) {
	var values []string
	if err := c.getJSON(ctx, manufacturersKey, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// SetManufacturers caches the manufacturer list.
func (c *Cache) SetManufacturers(ctx context.Context, values []string) error {
	return c.setJSON(ctx, manufacturersKey, values)
}

func (c *Cache) getJSON(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *Cache) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, catalogTTL).Err()
}
