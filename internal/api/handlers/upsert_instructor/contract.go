package upsert_instructor

import (
	"context"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
)

type CatalogService interface {
	UpsertInstructor(ctx context.Context, in *catalog.InstructorInput) (*domain.Instructor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
