package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/SUP-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidDate         = "некорректная дата, ожидается YYYY-MM-DD"
	msgDateInPast          = "дата уже прошла"
	msgInvalidRouteID      = "некорректный ID маршрута"
	msgInvalidInstructorID = "некорректный ID инструктора"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&route_id=&instructor_id=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routeID, err := handlers.QueryUUID(r, "route_id")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid route_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRouteID)
		return
	}

	instructorID, err := handlers.QueryUUID(r, "instructor_id")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid instructor_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		Date:         r.URL.Query().Get("date"),
		RouteID:      routeID,
		InstructorID: instructorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Date in the past: %s", r.URL.Query().Get("date"))
			handlers.RespondBadRequest(w, msgDateInPast)

		default:
			h.logger.Error("GET /availability - Failed to get availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainSlots(result.Slots))
}
