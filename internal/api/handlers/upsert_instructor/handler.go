package upsert_instructor

import (
	"errors"
	"net/http"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInstructor  = "некорректные данные инструктора"
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

// Handle PUT /api/v1/admin/instructors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpsertInstructorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/instructors - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	instructor, err := h.service.UpsertInstructor(r.Context(), req.ToServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /admin/instructors - Invalid instructor: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInstructor)

		default:
			h.logger.Error("PUT /admin/instructors - Failed to upsert instructor: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/instructors - Instructor saved: instructor_id=%s", instructor.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainInstructor(instructor))
}
