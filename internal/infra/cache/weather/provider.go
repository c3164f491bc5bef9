package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// CachedProvider кэширует показания провайдера по точке и часу.
// Ошибки кэша логируются и не мешают обращению к провайдеру.
type CachedProvider struct {
	next    Provider
	cache   Cache
	ttl     time.Duration
	metrics Metrics
	log     Logger
}

// NewCachedProvider оборачивает провайдер кэшем. metrics может быть nil.
func NewCachedProvider(next Provider, cache Cache, ttl time.Duration, metrics Metrics, log Logger) *CachedProvider {
	return &CachedProvider{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		log:     log,
	}
}

// Forecast возвращает показания из кэша или запрашивает провайдер и сохраняет результат
func (p *CachedProvider) Forecast(ctx context.Context, lat, lng float64, at time.Time) (*domain.WeatherReading, error) {
	hour := domain.ForecastHour(at)
	key := Key(lat, lng, hour)

	reading, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		p.observe("hit")
		return reading, nil
	case errors.Is(err, ErrCacheMiss):
		p.observe("miss")
	default:
		p.observe("error")
		p.log.Warn("Weather cache: get %s failed: %v", key, err)
	}

	reading, err = p.next.Forecast(ctx, lat, lng, hour)
	if err != nil {
		return nil, err
	}

	// показания сохраняются под часом, который вернул провайдер
	key = Key(lat, lng, reading.At)
	if err := p.cache.Set(ctx, key, reading, p.ttl); err != nil {
		p.log.Warn("Weather cache: set %s failed: %v", key, err)
	}

	return reading, nil
}

func (p *CachedProvider) observe(result string) {
	if p.metrics != nil {
		p.metrics.ObserveWeatherCache(result)
	}
}

// Key ключ кэша: координаты с точностью до 3 знаков и час прогноза domain.ForecastHour
func Key(lat, lng float64, at time.Time) string {
	return fmt.Sprintf("weather:%.3f:%.3f:%s", lat, lng, domain.ForecastHour(at).Format(time.RFC3339))
}
