package ledger

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

func newLedger(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewService(store.Slots(), nil, logger.NewNop()), store
}

func createSlot(t *testing.T, svc *Service, capacity int) *domain.Slot {
	t.Helper()
	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Hour)
	slots, err := svc.BulkCreate(context.Background(), []NewSlot{{
		InstructorID: uuid.New(),
		RouteID:      uuid.New(),
		StartAt:      start,
		EndAt:        start.Add(90 * time.Minute),
		Capacity:     capacity,
	}})
	require.NoError(t, err)
	return slots[0]
}

func TestService_ConcurrentReserveExactlyOneWins(t *testing.T) {
	svc, _ := newLedger(t)
	slot := createSlot(t, svc, 1)

	const attempts = 32
	var (
		wins   atomic.Int32
		losses atomic.Int32
		wg     sync.WaitGroup
	)
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Reserve(context.Background(), slot.ID, 1)
			if err == nil {
				wins.Add(1)
				return
			}
			if assert.ErrorIs(t, err, ErrCapacityExceeded) {
				losses.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(attempts-1), losses.Load())

	got, err := svc.Get(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Remaining)
}

func TestService_ReleaseRestoresRemaining(t *testing.T) {
	svc, _ := newLedger(t)
	slot := createSlot(t, svc, 6)
	ctx := context.Background()

	handle, err := svc.Reserve(ctx, slot.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, handle.Remaining)
	assert.NotEqual(t, uuid.Nil, handle.Token)

	require.NoError(t, svc.Release(ctx, handle))

	got, err := svc.Get(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Remaining)
}

func TestService_ReserveMoreThanRemaining(t *testing.T) {
	svc, _ := newLedger(t)
	slot := createSlot(t, svc, 3)

	_, err := svc.Reserve(context.Background(), slot.ID, 4)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	_, err = svc.Reserve(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = svc.Reserve(context.Background(), slot.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListAvailableSkipsFullSlots(t *testing.T) {
	svc, _ := newLedger(t)
	full := createSlot(t, svc, 2)
	open := createSlot(t, svc, 6)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, full.ID, 2)
	require.NoError(t, err)

	slots, err := svc.ListAvailable(ctx, domain.AvailabilityFilter{Date: open.StartAt})
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(slots))
	for _, s := range slots {
		assert.Positive(t, s.Remaining)
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, open.ID)
	assert.NotContains(t, ids, full.ID)
}

func TestService_BulkCreateValidation(t *testing.T) {
	svc, _ := newLedger(t)
	start := time.Now().Add(time.Hour)

	tests := []struct {
		name string
		item NewSlot
	}{
		{"end before start", NewSlot{InstructorID: uuid.New(), RouteID: uuid.New(), StartAt: start, EndAt: start, Capacity: 6}},
		{"zero capacity", NewSlot{InstructorID: uuid.New(), RouteID: uuid.New(), StartAt: start, EndAt: start.Add(time.Hour)}},
		{"missing route", NewSlot{InstructorID: uuid.New(), StartAt: start, EndAt: start.Add(time.Hour), Capacity: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BulkCreate(context.Background(), []NewSlot{tt.item})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.BulkCreate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
