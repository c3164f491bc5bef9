package bulk_create_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
)

// SlotRequest описание одного слота
type SlotRequest struct {
	InstructorID uuid.UUID `json:"instructor_id"`
	RouteID      uuid.UUID `json:"route_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Capacity     int       `json:"capacity"`
}

// BulkCreateSlotsRequest HTTP request model
type BulkCreateSlotsRequest struct {
	Slots []SlotRequest `json:"slots"`
}

func (r *BulkCreateSlotsRequest) ToServiceInput() []ledger.NewSlot {
	items := make([]ledger.NewSlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		items = append(items, ledger.NewSlot{
			InstructorID: s.InstructorID,
			RouteID:      s.RouteID,
			StartAt:      s.StartAt.UTC(),
			EndAt:        s.EndAt.UTC(),
			Capacity:     s.Capacity,
		})
	}
	return items
}
