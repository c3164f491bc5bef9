package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid проверяет, что статус входит в перечисление
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Options дополнительные платные опции бронирования
type Options struct {
	Photo  bool // Фото/видео
	Drybag bool // Гидромешок
	Vest   bool // Спасательный жилет
}

// Booking бронирование прогулки
type Booking struct {
	ID           uuid.UUID
	InstructorID uuid.UUID
	RouteID      uuid.UUID
	SlotID       uuid.UUID
	CustomerName string
	Phone        string
	Messenger    string
	Participants int
	Options      Options
	PriceTotal   int64
	Status       BookingStatus

	// ReservationToken токен резерва мест в слоте, уникален для бронирования
	ReservationToken uuid.UUID
	// IdempotencyKey ключ идемпотентности клиента (необязательный)
	IdempotencyKey *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Отмена выполняется отдельной операцией, потому что возвращает места в слот.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch {
	case b.Status == StatusPending && next == StatusConfirmed:
		return true
	case next == StatusCancelled:
		return b.CanBeCancelled()
	}
	return false
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}
