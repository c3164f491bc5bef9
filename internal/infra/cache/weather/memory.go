package weather

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

type memoryEntry struct {
	reading   domain.WeatherReading
	expiresAt time.Time
}

// MemoryCache кэш показаний в памяти процесса, используется без Redis
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache создает пустой кэш в памяти
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.WeatherReading, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, ErrCacheMiss
	}

	reading := entry.reading
	return &reading, nil
}

// Set сохраняет показания и удаляет просроченные записи
func (c *MemoryCache) Set(_ context.Context, key string, reading *domain.WeatherReading, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = memoryEntry{reading: *reading, expiresAt: now.Add(ttl)}
	return nil
}
