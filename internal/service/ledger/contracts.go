package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListAvailable(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.Slot, error)
	ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]*domain.Slot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	Reserve(ctx context.Context, slotID uuid.UUID, participants int) (int, error)
	Release(ctx context.Context, slotID uuid.UUID, participants int) (int, error)
	BulkCreate(ctx context.Context, slots []*domain.Slot) error
}

// Metrics учет операций с местами
type Metrics interface {
	ObserveReservation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
