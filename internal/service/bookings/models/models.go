package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования (админка)
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// OptionsResponse дополнительные опции
type OptionsResponse struct {
	Photo  bool `json:"photo"`
	Drybag bool `json:"drybag"`
	Vest   bool `json:"vest"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           uuid.UUID       `json:"id"`
	InstructorID uuid.UUID       `json:"instructor_id"`
	RouteID      uuid.UUID       `json:"route_id"`
	SlotID       uuid.UUID       `json:"slot_id"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	Messenger    string          `json:"messenger,omitempty"`
	Participants int             `json:"participants"`
	Options      OptionsResponse `json:"options"`
	PriceTotal   int64           `json:"price_total"`
	Status       string          `json:"status"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:           b.ID,
		InstructorID: b.InstructorID,
		RouteID:      b.RouteID,
		SlotID:       b.SlotID,
		CustomerName: b.CustomerName,
		Phone:        b.Phone,
		Messenger:    b.Messenger,
		Participants: b.Participants,
		Options: OptionsResponse{
			Photo:  b.Options.Photo,
			Drybag: b.Options.Drybag,
			Vest:   b.Options.Vest,
		},
		PriceTotal:  b.PriceTotal,
		Status:      string(b.Status),
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
