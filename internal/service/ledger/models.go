package ledger

import (
	"time"

	"github.com/google/uuid"
)

// NewSlot описание слота для пакетного создания
type NewSlot struct {
	InstructorID uuid.UUID
	RouteID      uuid.UUID
	StartAt      time.Time
	EndAt        time.Time
	Capacity     int
}
