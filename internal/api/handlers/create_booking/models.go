package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	createBooking "github.com/m04kA/SUP-BookingService/internal/usecase/create_booking"
)

// OptionsRequest дополнительные опции
type OptionsRequest struct {
	Photo  bool `json:"photo"`
	Drybag bool `json:"drybag"`
	Vest   bool `json:"vest"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	InstructorID uuid.UUID      `json:"instructor_id"`
	RouteID      uuid.UUID      `json:"route_id"`
	SlotID       uuid.UUID      `json:"slot_id"`
	CustomerName string         `json:"customer_name"`
	Phone        string         `json:"phone"`
	Messenger    string         `json:"messenger"`
	Participants int            `json:"participants"`
	Options      OptionsRequest `json:"options"`
	PriceTotal   *int64         `json:"price_total"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *CreateBookingRequest) ToUseCaseRequest(idempotencyKey string) *createBooking.Request {
	req := &createBooking.Request{
		InstructorID: r.InstructorID,
		RouteID:      r.RouteID,
		SlotID:       r.SlotID,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Messenger:    r.Messenger,
		Participants: r.Participants,
		Options: domain.Options{
			Photo:  r.Options.Photo,
			Drybag: r.Options.Drybag,
			Vest:   r.Options.Vest,
		},
		PriceTotal: r.PriceTotal,
	}
	if idempotencyKey != "" {
		req.IdempotencyKey = &idempotencyKey
	}
	return req
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID           uuid.UUID      `json:"id"`
	InstructorID uuid.UUID      `json:"instructor_id"`
	RouteID      uuid.UUID      `json:"route_id"`
	SlotID       uuid.UUID      `json:"slot_id"`
	Participants int            `json:"participants"`
	Options      OptionsRequest `json:"options"`
	PriceTotal   int64          `json:"price_total"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}

// FromUseCaseResponse конвертирует use case response в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:           resp.ID,
		InstructorID: resp.InstructorID,
		RouteID:      resp.RouteID,
		SlotID:       resp.SlotID,
		Participants: resp.Participants,
		Options: OptionsRequest{
			Photo:  resp.Options.Photo,
			Drybag: resp.Options.Drybag,
			Vest:   resp.Options.Vest,
		},
		PriceTotal: resp.PriceTotal,
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt,
	}
}
