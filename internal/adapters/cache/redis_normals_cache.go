package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"roadtrip-weather-service/internal/domain"
	"roadtrip-weather-service/internal/ports"
)

// RedisNormalsCache is a read-through cache in front of a WeatherStore.
// Normals change at most once per ingestion run, so entries carry a long TTL
// and a cache failure degrades to the backing store instead of erroring.
type RedisNormalsCache struct {
	Client  *redis.Client
	Backing ports.WeatherStore
	TTL     time.Duration
}

func NewRedisNormalsCache(client *redis.Client, backing ports.WeatherStore, ttl time.Duration) *RedisNormalsCache {
	return &RedisNormalsCache{
		Client:  client,
		Backing: backing,
		TTL:     ttl,
	}
}

func normalsKey(cityKey string) string {
	return "normals:" + cityKey
}

// Fetch normals for one city, consulting Redis before the backing store.
func (c *RedisNormalsCache) ListNormals(ctx context.Context, cityKey string) ([]domain.WeatherRecord, error) {
	if c.Backing == nil {
		return nil, errors.New("normals cache: backing store is nil")
	}

	if strings.TrimSpace(cityKey) == "" {
		return nil, errors.New("list normals: city key must not be empty")
	}

	if c.Client != nil {
		raw, err := c.Client.Get(ctx, normalsKey(cityKey)).Bytes()
		if err == nil {
			var records []domain.WeatherRecord
			if err := json.Unmarshal(raw, &records); err == nil {
				return records, nil
			}
			log.Printf("normals cache: corrupt entry for %q, falling through", cityKey)
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("normals cache read failed: %v", err)
		}
	}

	records, err := c.Backing.ListNormals(ctx, cityKey)
	if err != nil {
		return nil, fmt.Errorf("normals cache: backing store: %w", err)
	}

	if c.Client != nil && len(records) > 0 {
		if raw, err := json.Marshal(records); err == nil {
			if err := c.Client.Set(ctx, normalsKey(cityKey), raw, c.TTL).Err(); err != nil {
				log.Printf("normals cache write failed: %v", err)
			}
		}
	}

	return records, nil
}

// Store normals in the backing store and refresh the cached entry.
func (c *RedisNormalsCache) PutNormals(ctx context.Context, cityKey string, records []domain.WeatherRecord) error {
	if c.Backing == nil {
		return errors.New("normals cache: backing store is nil")
	}

	if err := c.Backing.PutNormals(ctx, cityKey, records); err != nil {
		return fmt.Errorf("normals cache: backing store put: %w", err)
	}

	if c.Client != nil {
		if err := c.Client.Del(ctx, normalsKey(cityKey)).Err(); err != nil {
			log.Printf("normals cache invalidate failed: %v", err)
		}
	}

	return nil
}
