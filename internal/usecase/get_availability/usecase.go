package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	ledger       SlotLedger
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ledger SlotLedger, logger Logger) *UseCase {
	return &UseCase{
		ledger:       ledger,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, route=%v, instructor=%v", req.Date, req.RouteID, req.InstructorID)

	// 1. Валидация даты
	date, err := parseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Прошедшие даты не бронируются
	now := uc.timeProvider.Now()
	if isDateInPast(date, now) {
		uc.logger.Warn("GetAvailability: date %s is in the past", req.Date)
		return nil, ErrInvalidDate
	}

	// 3. Получаем доступные слоты
	slots, err := uc.ledger.ListAvailable(ctx, domain.AvailabilityFilter{
		Date:         date,
		RouteID:      req.RouteID,
		InstructorID: req.InstructorID,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list slots for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. Сегодня показываем только еще не начавшиеся слоты
	result := make([]*domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.HasStarted(now) {
			continue
		}
		result = append(result, slot)
	}

	uc.logger.Info("GetAvailability: found %d slots for date=%s", len(result), req.Date)

	return &Response{
		Date:  date,
		Slots: result,
	}, nil
}
