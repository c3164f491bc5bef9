package list_instructors

import (
	"context"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

type CatalogService interface {
	ListInstructors(ctx context.Context, filter domain.InstructorFilter) ([]*domain.Instructor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
