package get_weather

import (
	"context"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/service/weather"
)

type WeatherAssessor interface {
	Assess(ctx context.Context, req *weather.Request) (*domain.WeatherObservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
