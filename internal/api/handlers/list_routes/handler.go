package list_routes

import (
	"net/http"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/routes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.ListRoutes(r.Context())
	if err != nil {
		h.logger.Error("GET /routes - Failed to list routes: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]handlers.RouteResponse, 0, len(routes))
	for _, route := range routes {
		response = append(response, handlers.FromDomainRoute(route))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
