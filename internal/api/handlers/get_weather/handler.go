package get_weather

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/service/weather"
)

const (
	msgInvalidCoordinates  = "некорректные координаты"
	msgInvalidDatetime     = "некорректное время, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
	msgInvalidRouteID      = "некорректный ID маршрута"
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidRequest      = "некорректные параметры запроса"
	msgRouteNotFound       = "маршрут не найден"
)

// minuteLayout формат времени без секунд и зоны, трактуется как UTC
const minuteLayout = "2006-01-02T15:04"

type Handler struct {
	assessor WeatherAssessor
	logger   Logger
}

func NewHandler(assessor WeatherAssessor, logger Logger) *Handler {
	return &Handler{
		assessor: assessor,
		logger:   logger,
	}
}

// Handle GET /api/v1/weather?lat=&lng=&datetime=&route_id=&instructor_id=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lat, err := handlers.QueryFloat64(r, "lat")
	if err != nil {
		h.logger.Warn("GET /weather - Invalid lat: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	lng, err := handlers.QueryFloat64(r, "lng")
	if err != nil {
		h.logger.Warn("GET /weather - Invalid lng: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	at, err := parseDatetime(r.URL.Query().Get("datetime"))
	if err != nil {
		h.logger.Warn("GET /weather - Invalid datetime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	routeID, err := handlers.QueryUUID(r, "route_id")
	if err != nil {
		h.logger.Warn("GET /weather - Invalid route_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRouteID)
		return
	}

	instructorID, err := handlers.QueryUUID(r, "instructor_id")
	if err != nil {
		h.logger.Warn("GET /weather - Invalid instructor_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	observation, err := h.assessor.Assess(r.Context(), &weather.Request{
		Lat:          lat,
		Lng:          lng,
		At:           at,
		RouteID:      routeID,
		InstructorID: instructorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrInvalidInput):
			h.logger.Warn("GET /weather - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, weather.ErrRouteNotFound):
			h.logger.Warn("GET /weather - Route not found: route_id=%v", routeID)
			handlers.RespondNotFound(w, msgRouteNotFound)

		default:
			h.logger.Error("GET /weather - Failed to assess weather: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromObservation(observation))
}

// parseDatetime принимает RFC3339 или YYYY-MM-DDTHH:MM (UTC)
func parseDatetime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("datetime is required")
	}
	if t, err := time.Parse(domain.DateTimeFormat, value); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(minuteLayout, value, time.UTC)
}
