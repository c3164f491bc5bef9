package bulk_create_slots

import (
	"context"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
)

type SlotLedger interface {
	BulkCreate(ctx context.Context, items []ledger.NewSlot) ([]*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
