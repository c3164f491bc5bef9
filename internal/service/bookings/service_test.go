package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/SUP-BookingService/internal/service/bookings/models"
	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

type fixture struct {
	svc   *Service
	store *memory.Store
	slot  *domain.Slot
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNop()

	start := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Hour)
	slot := &domain.Slot{
		ID:           uuid.New(),
		InstructorID: uuid.New(),
		RouteID:      uuid.New(),
		StartAt:      start,
		EndAt:        start.Add(90 * time.Minute),
		Capacity:     6,
		Remaining:    4,
		Status:       domain.SlotStatusActive,
	}
	require.NoError(t, store.Slots().BulkCreate(context.Background(), []*domain.Slot{slot}))

	ledgerSvc := ledger.NewService(store.Slots(), nil, log)
	return &fixture{
		svc:   NewService(store.Bookings(), ledgerSvc, store.TxManager(), log),
		store: store,
		slot:  slot,
	}
}

func (f *fixture) createBooking(t *testing.T, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		ID:               uuid.New(),
		InstructorID:     f.slot.InstructorID,
		RouteID:          f.slot.RouteID,
		SlotID:           f.slot.ID,
		CustomerName:     "Иван",
		Phone:            "+7 988 123-45-67",
		Participants:     2,
		PriceTotal:       6400,
		Status:           status,
		ReservationToken: uuid.New(),
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) remaining(t *testing.T) int {
	t.Helper()
	slot, err := f.store.Slots().GetByID(context.Background(), f.slot.ID)
	require.NoError(t, err)
	return slot.Remaining
}

func TestService_GetByID(t *testing.T) {
	f := newFixture(t)
	b := f.createBooking(t, domain.StatusConfirmed)

	got, err := f.svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, "confirmed", got.Status)
	assert.Equal(t, int64(6400), got.PriceTotal)

	_, err = f.svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_CancelReleasesSeats(t *testing.T) {
	f := newFixture(t)
	b := f.createBooking(t, domain.StatusConfirmed)

	got, err := f.svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.NotNil(t, got.CancelledAt)
	assert.Equal(t, 6, f.remaining(t))
}

func TestService_CancelTwiceIsRejected(t *testing.T) {
	f := newFixture(t)
	b := f.createBooking(t, domain.StatusPending)

	_, err := f.svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 6, f.remaining(t))
}

func TestService_CancelUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, 4, f.remaining(t))
}

func TestService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.createBooking(t, domain.StatusPending)
	got, err := f.svc.UpdateStatus(ctx, pending.ID, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)

	_, err = f.svc.UpdateStatus(ctx, pending.ID, &models.UpdateStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.UpdateStatus(ctx, pending.ID, &models.UpdateStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.UpdateStatus(ctx, uuid.New(), &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	cancelled, err := f.svc.UpdateStatus(ctx, pending.ID, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, 6, f.remaining(t))
}
