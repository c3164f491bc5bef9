package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория инструкторов и маршрутов
type CatalogRepository interface {
	ListInstructors(ctx context.Context, filter domain.InstructorFilter) ([]*domain.Instructor, error)
	GetInstructor(ctx context.Context, id uuid.UUID) (*domain.Instructor, error)
	UpsertInstructor(ctx context.Context, instructor *domain.Instructor) (*domain.Instructor, error)
	ListRoutes(ctx context.Context) ([]*domain.Route, error)
	GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error)
	UpsertRoute(ctx context.Context, route *domain.Route) (*domain.Route, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
