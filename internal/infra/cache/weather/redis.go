package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// RedisCache кэш показаний в Redis (JSON)
type RedisCache struct {
	client redis.Cmdable
}

// NewRedisCache создает кэш поверх клиента Redis
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

// Get читает показания по ключу
func (c *RedisCache) Get(ctx context.Context, key string) (*domain.WeatherReading, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrCache, key, err)
	}

	var reading domain.WeatherReading
	if err := json.Unmarshal(value, &reading); err != nil {
		return nil, fmt.Errorf("%w: unmarshal %s: %v", ErrCache, key, err)
	}

	return &reading, nil
}

// Set сохраняет показания с TTL
func (c *RedisCache) Set(ctx context.Context, key string, reading *domain.WeatherReading, ttl time.Duration) error {
	value, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrCache, key, err)
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, key, err)
	}

	return nil
}
