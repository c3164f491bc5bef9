package list_instructors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
)

const (
	msgInvalidPrice  = "некорректный фильтр цены"
	msgInvalidRating = "некорректный фильтр рейтинга"
	msgInvalidFilter = "некорректные параметры фильтра"
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

// Handle GET /api/v1/instructors?tag=&min_price=&max_price=&min_rating=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	minPrice, err := handlers.QueryInt64(r, "min_price")
	if err != nil {
		h.logger.Warn("GET /instructors - Invalid min_price: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPrice)
		return
	}

	maxPrice, err := handlers.QueryInt64(r, "max_price")
	if err != nil {
		h.logger.Warn("GET /instructors - Invalid max_price: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPrice)
		return
	}

	minRating, err := handlers.QueryFloat64(r, "min_rating")
	if err != nil {
		h.logger.Warn("GET /instructors - Invalid min_rating: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRating)
		return
	}

	filter := domain.InstructorFilter{
		Tag:       strings.TrimSpace(r.URL.Query().Get("tag")),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		MinRating: minRating,
	}

	instructors, err := h.service.ListInstructors(r.Context(), filter)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("GET /instructors - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /instructors - Failed to list instructors: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]handlers.InstructorResponse, 0, len(instructors))
	for _, i := range instructors {
		response = append(response, handlers.FromDomainInstructor(i))
	}

	h.logger.Info("GET /instructors - Returned %d instructors, tag=%q", len(response), filter.Tag)
	handlers.RespondJSON(w, http.StatusOK, response)
}
