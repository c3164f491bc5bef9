package create_booking

//go:generate go run go.uber.org/mock/mockgen -source=./contract.go -destination=./mocks/contract_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// CatalogRepository источник инструкторов и маршрутов
type CatalogRepository interface {
	GetInstructor(ctx context.Context, id uuid.UUID) (*domain.Instructor, error)
	GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error)
}

// SlotLedger учет мест в слотах
type SlotLedger interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	Reserve(ctx context.Context, slotID uuid.UUID, participants int) (*domain.SlotHandle, error)
	Release(ctx context.Context, handle *domain.SlotHandle) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
}

// PricingEngine серверный расчет стоимости
type PricingEngine interface {
	Price(instructor *domain.Instructor, route *domain.Route, options domain.Options, participants int) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учет попыток бронирования по состояниям
type Metrics interface {
	ObserveBookingAttempt(state string)
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
