package weather

import (
	"context"
	"time"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// Provider источник прогноза погоды
type Provider interface {
	Forecast(ctx context.Context, lat, lng float64, at time.Time) (*domain.WeatherReading, error)
}

// Cache хранилище закэшированных показаний
type Cache interface {
	Get(ctx context.Context, key string) (*domain.WeatherReading, error)
	Set(ctx context.Context, key string, reading *domain.WeatherReading, ttl time.Duration) error
}

// Metrics учет попаданий в кэш
type Metrics interface {
	ObserveWeatherCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
