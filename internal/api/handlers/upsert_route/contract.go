package upsert_route

import (
	"context"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
)

type CatalogService interface {
	UpsertRoute(ctx context.Context, in *catalog.RouteInput) (*domain.Route, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
