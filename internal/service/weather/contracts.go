package weather

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// Provider источник прогноза погоды
type Provider interface {
	Forecast(ctx context.Context, lat, lng float64, at time.Time) (*domain.WeatherReading, error)
}

// RouteRepository источник маршрутов (для точки старта)
type RouteRepository interface {
	GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error)
}

// SlotFinder поиск доступных слотов-кандидатов
type SlotFinder interface {
	ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]*domain.Slot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
