package upsert_route

import (
	"errors"
	"net/http"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRoute       = "некорректные данные маршрута"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/routes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpsertRouteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/routes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	route, err := h.service.UpsertRoute(r.Context(), req.ToServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /admin/routes - Invalid route: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRoute)

		default:
			h.logger.Error("PUT /admin/routes - Failed to upsert route: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/routes - Route saved: route_id=%s", route.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainRoute(route))
}
