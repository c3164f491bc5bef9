package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SUP-BookingService/internal/usecase/create_booking"
)

// HeaderIdempotencyKey заголовок с ключом идемпотентности
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные бронирования"
	msgInstructorInactive  = "инструктор сейчас не принимает бронирования"
	msgSlotMismatch        = "слот не относится к выбранному инструктору или маршруту"
	msgSlotStarted         = "прогулка уже началась"
	msgInstructorNotFound  = "инструктор не найден"
	msgRouteNotFound       = "маршрут не найден"
	msgSlotNotFound        = "слот не найден"
	msgPriceMismatch       = "цена изменилась, обновите страницу"
	msgSlotFull            = "в слоте недостаточно свободных мест"
	msgIdempotencyConflict = "ключ идемпотентности уже использован для другого бронирования"
	msgBookingFailed       = "не удалось сохранить бронирование, попробуйте позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	idempotencyKey := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(idempotencyKey))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInstructorInactive):
			h.logger.Warn("POST /bookings - Instructor inactive: instructor_id=%s", req.InstructorID)
			handlers.RespondBadRequest(w, msgInstructorInactive)

		case errors.Is(err, createBooking.ErrSlotMismatch):
			h.logger.Warn("POST /bookings - Slot mismatch: slot_id=%s, instructor_id=%s, route_id=%s",
				req.SlotID, req.InstructorID, req.RouteID)
			handlers.RespondBadRequest(w, msgSlotMismatch)

		case errors.Is(err, createBooking.ErrSlotStarted):
			h.logger.Warn("POST /bookings - Slot already started: slot_id=%s", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotStarted)

		case errors.Is(err, createBooking.ErrInstructorNotFound):
			h.logger.Warn("POST /bookings - Instructor not found: instructor_id=%s", req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, createBooking.ErrRouteNotFound):
			h.logger.Warn("POST /bookings - Route not found: route_id=%s", req.RouteID)
			handlers.RespondNotFound(w, msgRouteNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%s", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrPriceMismatch):
			h.logger.Warn("POST /bookings - Price mismatch: %v", err)
			handlers.RespondConflict(w, handlers.KindPriceMismatch, msgPriceMismatch)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: slot_id=%s, participants=%d", req.SlotID, req.Participants)
			handlers.RespondConflict(w, handlers.KindSlotFull, msgSlotFull)

		case errors.Is(err, createBooking.ErrIdempotencyKeyReused):
			h.logger.Warn("POST /bookings - Idempotency key reused: key=%s", idempotencyKey)
			handlers.RespondConflict(w, handlers.KindConflict, msgIdempotencyConflict)

		case errors.Is(err, createBooking.ErrBookingFailed):
			h.logger.Error("POST /bookings - Booking failed: slot_id=%s, error=%v", req.SlotID, err)
			handlers.RespondServiceUnavailable(w, msgBookingFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_id=%s, error=%v", req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
		h.logger.Info("POST /bookings - Replayed booking: booking_id=%s", result.ID)
	} else {
		h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, slot_id=%s, price_total=%d",
			result.ID, result.SlotID, result.PriceTotal)
	}

	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
