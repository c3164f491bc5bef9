package get_instructor

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

type CatalogService interface {
	GetInstructor(ctx context.Context, id uuid.UUID) (*domain.Instructor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
