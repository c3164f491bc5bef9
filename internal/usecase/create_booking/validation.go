package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/pkg/validate"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.InstructorID == uuid.Nil {
		return fmt.Errorf("%w: instructor_id is required", ErrInvalidInput)
	}

	if req.RouteID == uuid.Nil {
		return fmt.Errorf("%w: route_id is required", ErrInvalidInput)
	}

	if req.SlotID == uuid.Nil {
		return fmt.Errorf("%w: slot_id is required", ErrInvalidInput)
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSlot проверяет, что слот относится к запросу и его еще можно бронировать
func validateSlot(slot *domain.Slot, req *Request, now time.Time) error {
	if slot.InstructorID != req.InstructorID || slot.RouteID != req.RouteID {
		return ErrSlotMismatch
	}

	if slot.HasStarted(now) {
		return ErrSlotStarted
	}

	if req.Participants > slot.Capacity {
		return fmt.Errorf("%w: participants must not exceed slot capacity %d", ErrInvalidInput, slot.Capacity)
	}

	return nil
}

// sameRequest проверяет, что повтор по ключу идемпотентности совпадает с исходным запросом.
// Цена сравнивается, только если клиент ее передал.
func sameRequest(b *domain.Booking, req *Request) bool {
	if req.PriceTotal != nil && *req.PriceTotal != b.PriceTotal {
		return false
	}

	return b.SlotID == req.SlotID &&
		b.InstructorID == req.InstructorID &&
		b.RouteID == req.RouteID &&
		b.Participants == req.Participants &&
		b.Options == req.Options &&
		b.CustomerName == req.CustomerName &&
		b.Phone == req.Phone &&
		b.Messenger == req.Messenger
}
