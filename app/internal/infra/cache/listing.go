package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domproperty "example.com/property-listing/app/internal/domain/property"
)

const listingPrefix = "listing:"

// ListingCache keeps serialized featured/latest listings in Redis.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

func (c *ListingCache) Get(ctx context.Context, key string) ([]*domproperty.Property, bool, error) {
	raw, err := c.client.Get(ctx, listingPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var items []*domproperty.Property
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *ListingCache) Set(ctx context.Context, key string, items []*domproperty.Property) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listingPrefix+key, raw, c.ttl).Err()
}

// Invalidate drops every cached listing.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, listingPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
