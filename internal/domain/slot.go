package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus статус слота
type SlotStatus string

const (
	SlotStatusActive SlotStatus = "active"
	SlotStatusClosed SlotStatus = "closed"
)

// Slot бронируемый интервал (инструктор, маршрут, время) с ограниченной вместимостью.
// Remaining уменьшается только успешным бронированием и увеличивается только отменой,
// 0 <= Remaining <= Capacity.
type Slot struct {
	ID           uuid.UUID
	InstructorID uuid.UUID
	RouteID      uuid.UUID
	StartAt      time.Time
	EndAt        time.Time
	Capacity     int
	Remaining    int
	Status       SlotStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBookable возвращает true, если слот активен и в нем есть свободные места
func (s *Slot) IsBookable() bool {
	return s.Status == SlotStatusActive && s.Remaining > 0
}

// HasStarted возвращает true, если слот уже начался к моменту now
func (s *Slot) HasStarted(now time.Time) bool {
	return !now.Before(s.StartAt)
}

// SlotHandle результат успешного резервирования мест в слоте.
// Token однозначно идентифицирует резерв и делает сохранение бронирования идемпотентным.
type SlotHandle struct {
	SlotID       uuid.UUID
	Participants int
	Token        uuid.UUID
	Remaining    int
}

// AvailabilityFilter фильтр доступных слотов на дату
type AvailabilityFilter struct {
	Date         time.Time
	RouteID      *uuid.UUID
	InstructorID *uuid.UUID
}

// DayBounds возвращает границы суток (UTC) для даты фильтра
func (f AvailabilityFilter) DayBounds() (time.Time, time.Time) {
	d := f.Date.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// CandidateFilter фильтр слотов-кандидатов в ограниченном окне времени
type CandidateFilter struct {
	InstructorID *uuid.UUID
	RouteID      *uuid.UUID
	From         time.Time
	To           time.Time
	Exclude      *uuid.UUID
	Limit        int
}
