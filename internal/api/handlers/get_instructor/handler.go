package get_instructor

import (
	"errors"
	"net/http"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgNotFound            = "инструктор не найден"
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

// Handle GET /api/v1/instructors/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.logger.Warn("GET /instructors/{id} - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	instructor, err := h.service.GetInstructor(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrInstructorNotFound) {
			h.logger.Warn("GET /instructors/{id} - Instructor not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /instructors/{id} - Failed to get instructor: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainInstructor(instructor))
}
