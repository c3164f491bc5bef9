package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func seed(t *testing.T, store *memory.Store, routeID uuid.UUID, start time.Time, remaining int) *domain.Slot {
	t.Helper()
	slot := &domain.Slot{
		ID:           uuid.New(),
		InstructorID: uuid.New(),
		RouteID:      routeID,
		StartAt:      start,
		EndAt:        start.Add(90 * time.Minute),
		Capacity:     6,
		Remaining:    remaining,
		Status:       domain.SlotStatusActive,
	}
	require.NoError(t, store.Slots().BulkCreate(context.Background(), []*domain.Slot{slot}))
	return slot
}

func newUseCase(store *memory.Store, now time.Time) *UseCase {
	log := logger.NewNop()
	uc := NewUseCase(ledger.NewService(store.Slots(), nil, log), log)
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func TestExecute_ListsBookableSlotsOfDay(t *testing.T) {
	store := memory.NewStore()
	route := uuid.New()
	day := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)

	late := seed(t, store, route, day.Add(17*time.Hour), 6)
	early := seed(t, store, route, day.Add(9*time.Hour), 2)
	seed(t, store, route, day.Add(12*time.Hour), 0)
	seed(t, store, route, day.Add(33*time.Hour), 6)
	seed(t, store, uuid.New(), day.Add(10*time.Hour), 6)

	uc := newUseCase(store, day.Add(-time.Hour))
	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-07-02", RouteID: &route})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, early.ID, resp.Slots[0].ID)
	assert.Equal(t, late.ID, resp.Slots[1].ID)
}

func TestExecute_TodayHidesStartedSlots(t *testing.T) {
	store := memory.NewStore()
	route := uuid.New()
	day := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)

	seed(t, store, route, day.Add(9*time.Hour), 6)
	evening := seed(t, store, route, day.Add(18*time.Hour), 6)

	uc := newUseCase(store, day.Add(12*time.Hour))
	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-07-02"})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, evening.ID, resp.Slots[0].ID)
}

func TestExecute_DateValidation(t *testing.T) {
	uc := newUseCase(memory.NewStore(), time.Date(2026, 7, 2, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: "02.07.2026"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: "2026-07-01"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
