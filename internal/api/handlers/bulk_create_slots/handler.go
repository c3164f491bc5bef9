package bulk_create_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlots       = "некорректное расписание слотов"
)

type Handler struct {
	ledger SlotLedger
	logger Logger
}

func NewHandler(ledger SlotLedger, logger Logger) *Handler {
	return &Handler{
		ledger: ledger,
		logger: logger,
	}
}

// Handle POST /api/v1/admin/slots/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slots, err := h.ledger.BulkCreate(r.Context(), req.ToServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidInput):
			h.logger.Warn("POST /admin/slots/bulk - Invalid slots: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlots)

		default:
			h.logger.Error("POST /admin/slots/bulk - Failed to create slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots/bulk - Created %d slots", len(slots))
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainSlots(slots))
}
