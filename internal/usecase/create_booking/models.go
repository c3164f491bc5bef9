package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// Состояния попытки бронирования для метрик
const (
	StateReceived  = "received"
	StateValidated = "validated"
	StateReserved  = "reserved"
	StatePersisted = "persisted"
	StateConfirmed = "confirmed"
	StateRejected  = "rejected"
	StateReleased  = "released"
	StateReplayed  = "replayed"
)

// Config параметры оркестратора
type Config struct {
	PersistAttempts     int           // Попыток сохранить бронирование с одним токеном резерва
	CompensationTimeout time.Duration // Таймаут возврата мест после неудачи
}

// Request модель запроса на создание бронирования
type Request struct {
	InstructorID   uuid.UUID
	RouteID        uuid.UUID
	SlotID         uuid.UUID
	CustomerName   string `validate:"required,max=100"`
	Phone          string `validate:"required,phone"`
	Messenger      string `validate:"max=64"`
	Participants   int    `validate:"min=1,max=50"`
	Options        domain.Options
	PriceTotal     *int64  `validate:"omitempty,gte=0"` // Цена, которую видел клиент (опционально)
	IdempotencyKey *string `validate:"omitempty,min=1,max=128"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           uuid.UUID
	InstructorID uuid.UUID
	RouteID      uuid.UUID
	SlotID       uuid.UUID
	Participants int
	Options      domain.Options
	PriceTotal   int64
	Status       string
	Replayed     bool // true, если возвращено ранее созданное бронирование
	CreatedAt    time.Time
}

func responseFromBooking(b *domain.Booking, replayed bool) *Response {
	return &Response{
		ID:           b.ID,
		InstructorID: b.InstructorID,
		RouteID:      b.RouteID,
		SlotID:       b.SlotID,
		Participants: b.Participants,
		Options:      b.Options,
		PriceTotal:   b.PriceTotal,
		Status:       string(b.Status),
		Replayed:     replayed,
		CreatedAt:    b.CreatedAt,
	}
}
