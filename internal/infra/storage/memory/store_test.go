package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/SUP-BookingService/pkg/ptr"
)

func seedSlot(t *testing.T, store *Store, start time.Time, capacity, remaining int) *domain.Slot {
	t.Helper()
	s := &domain.Slot{
		ID:           uuid.New(),
		InstructorID: uuid.New(),
		RouteID:      uuid.New(),
		StartAt:      start,
		EndAt:        start.Add(90 * time.Minute),
		Capacity:     capacity,
		Remaining:    remaining,
		Status:       domain.SlotStatusActive,
	}
	require.NoError(t, store.Slots().BulkCreate(context.Background(), []*domain.Slot{s}))
	return s
}

func TestSlotRepository_ConcurrentReserveOnLastSeat(t *testing.T) {
	store := NewStore()
	s := seedSlot(t, store, time.Now().Add(24*time.Hour), 6, 1)
	repo := store.Slots()

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		full    int
	)
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.Reserve(context.Background(), s.ID, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case assert.ErrorIs(t, err, slot.ErrCapacityExceeded):
				full++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, full)

	got, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Remaining)
}

func TestSlotRepository_ReleaseRestoresAndCaps(t *testing.T) {
	store := NewStore()
	s := seedSlot(t, store, time.Now().Add(time.Hour), 6, 5)
	repo := store.Slots()
	ctx := context.Background()

	remaining, err := repo.Reserve(ctx, s.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	remaining, err = repo.Release(ctx, s.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)

	remaining, err = repo.Release(ctx, s.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 6, remaining)
}

func TestSlotRepository_ListAvailable(t *testing.T) {
	store := NewStore()
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	late := seedSlot(t, store, day.Add(17*time.Hour), 6, 6)
	early := seedSlot(t, store, day.Add(9*time.Hour), 6, 2)
	seedSlot(t, store, day.Add(12*time.Hour), 6, 0)
	seedSlot(t, store, day.Add(33*time.Hour), 6, 6)

	got, err := store.Slots().ListAvailable(context.Background(), domain.AvailabilityFilter{Date: day.Add(15 * time.Hour)})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)
}

func TestSlotRepository_ReserveClosedAndUnknown(t *testing.T) {
	store := NewStore()
	s := seedSlot(t, store, time.Now().Add(time.Hour), 6, 6)
	closed := store.slots[s.ID]
	closed.Status = domain.SlotStatusClosed
	store.slots[s.ID] = closed

	_, err := store.Slots().Reserve(context.Background(), s.ID, 1)
	assert.ErrorIs(t, err, slot.ErrSlotClosed)

	_, err = store.Slots().Reserve(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, slot.ErrSlotNotFound)
}

func TestBookingRepository_CreateIsIdempotentPerToken(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	b := &domain.Booking{ID: uuid.New(), ReservationToken: uuid.New(), Status: domain.StatusPending, IdempotencyKey: ptr.Ptr("k1")}
	first, err := repo.Create(ctx, b)
	require.NoError(t, err)

	retry := &domain.Booking{ID: uuid.New(), ReservationToken: b.ReservationToken, Status: domain.StatusPending}
	second, err := repo.Create(ctx, retry)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	dup := &domain.Booking{ID: uuid.New(), ReservationToken: uuid.New(), IdempotencyKey: ptr.Ptr("k1")}
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, booking.ErrDuplicateIdempotencyKey)

	byKey, err := repo.GetByIdempotencyKey(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, b.ID, byKey.ID)
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	b := &domain.Booking{ID: uuid.New(), ReservationToken: uuid.New(), Status: domain.StatusConfirmed}
	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.StatusCancelled))
	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.NotNil(t, got.CancelledAt)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), domain.StatusCancelled), booking.ErrBookingNotFound)
}

func TestCatalogRepository_ListInstructors(t *testing.T) {
	store := NewStore()
	repo := store.Catalog()
	ctx := context.Background()

	for _, i := range []*domain.Instructor{
		{ID: uuid.New(), Name: "Б", Rating: 4.7, BasePrice: 3000, Tags: []string{"SUP"}, IsActive: true},
		{ID: uuid.New(), Name: "А", Rating: 4.9, BasePrice: 3200, Tags: []string{"sup", "family"}, IsActive: true},
		{ID: uuid.New(), Name: "В", Rating: 5.0, BasePrice: 2800, Tags: []string{"sup"}, IsActive: false},
	} {
		_, err := repo.UpsertInstructor(ctx, i)
		require.NoError(t, err)
	}

	got, err := repo.ListInstructors(ctx, domain.InstructorFilter{Tag: "sup"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "А", got[0].Name)
	assert.Equal(t, "Б", got[1].Name)

	_, err = repo.GetInstructor(ctx, uuid.New())
	assert.ErrorIs(t, err, catalog.ErrInstructorNotFound)
}

func TestTxManager_NestedDoesNotDeadlock(t *testing.T) {
	tx := NewStore().TxManager()

	err := tx.Do(context.Background(), func(ctx context.Context) error {
		return tx.DoSerializable(ctx, func(context.Context) error { return nil })
	})
	assert.NoError(t, err)
}
