package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
	"github.com/m04kA/SUP-BookingService/internal/service/pricing"
	"github.com/m04kA/SUP-BookingService/internal/usecase/create_booking/mocks"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
	"github.com/m04kA/SUP-BookingService/pkg/metrics"
	"github.com/m04kA/SUP-BookingService/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	clockNow  = time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	slotStart = time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC)
)

type env struct {
	uc         *UseCase
	store      *memory.Store
	metrics    *metrics.Metrics
	instructor *domain.Instructor
	route      *domain.Route
	slot       *domain.Slot
}

func newEnv(t *testing.T, remaining int) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	log := logger.NewNop()

	instructor, err := store.Catalog().UpsertInstructor(ctx, &domain.Instructor{
		ID: uuid.New(), Name: "Анна", BasePrice: 1500, Rating: 4.9, IsActive: true,
	})
	require.NoError(t, err)

	route, err := store.Catalog().UpsertRoute(ctx, &domain.Route{
		ID: uuid.New(), Title: "Река Кубань", BasePrice: 1000, DurationMinutes: 90, Difficulty: domain.DifficultyEasy,
	})
	require.NoError(t, err)

	slot := &domain.Slot{
		ID:           uuid.New(),
		InstructorID: instructor.ID,
		RouteID:      route.ID,
		StartAt:      slotStart,
		EndAt:        slotStart.Add(90 * time.Minute),
		Capacity:     6,
		Remaining:    remaining,
		Status:       domain.SlotStatusActive,
	}
	require.NoError(t, store.Slots().BulkCreate(ctx, []*domain.Slot{slot}))

	m := metrics.New("sup-test", prometheus.NewRegistry())
	uc := NewUseCase(
		store.Catalog(),
		ledger.NewService(store.Slots(), m, log),
		store.Bookings(),
		pricing.NewEngine(pricing.OptionPrices{Photo: 700, Drybag: 200, Vest: 0}),
		store.TxManager(),
		m,
		Config{PersistAttempts: 3, CompensationTimeout: time.Second},
		log,
	)
	uc.timeProvider = fixedClock{now: clockNow}

	return &env{uc: uc, store: store, metrics: m, instructor: instructor, route: route, slot: slot}
}

func (e *env) request() *Request {
	return &Request{
		InstructorID: e.instructor.ID,
		RouteID:      e.route.ID,
		SlotID:       e.slot.ID,
		CustomerName: "Иван Петров",
		Phone:        "+7 988 123-45-67",
		Participants: 2,
		Options:      domain.Options{Photo: true, Vest: true},
	}
}

func (e *env) remaining(t *testing.T) int {
	t.Helper()
	slot, err := e.store.Slots().GetByID(context.Background(), e.slot.ID)
	require.NoError(t, err)
	return slot.Remaining
}

func (e *env) attempts(state string) float64 {
	return testutil.ToFloat64(e.metrics.BookingAttemptsTotal.WithLabelValues(state))
}

func TestExecute_PricesAndConfirms(t *testing.T) {
	e := newEnv(t, 6)
	req := e.request()
	req.PriceTotal = ptr.Ptr(int64(6400))

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(6400), resp.PriceTotal)
	assert.Equal(t, "confirmed", resp.Status)
	assert.False(t, resp.Replayed)
	assert.Equal(t, 4, e.remaining(t))

	stored, err := e.store.Bookings().GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Equal(t, "Иван Петров", stored.CustomerName)

	assert.Equal(t, 1.0, e.attempts(StateConfirmed))
	assert.Equal(t, 0.0, e.attempts(StateRejected))
}

func TestExecute_WithoutClientPrice(t *testing.T) {
	e := newEnv(t, 6)

	resp, err := e.uc.Execute(context.Background(), e.request())
	require.NoError(t, err)
	assert.Equal(t, int64(6400), resp.PriceTotal)
}

func TestExecute_PriceMismatch(t *testing.T) {
	e := newEnv(t, 6)
	req := e.request()
	req.PriceTotal = ptr.Ptr(int64(6000))

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPriceMismatch)
	assert.Equal(t, 6, e.remaining(t))
	assert.Equal(t, 1.0, e.attempts(StateRejected))
}

func TestExecute_SlotFull(t *testing.T) {
	e := newEnv(t, 1)

	_, err := e.uc.Execute(context.Background(), e.request())

	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Equal(t, 1, e.remaining(t))
}

func TestExecute_ConcurrentLastSeat(t *testing.T) {
	e := newEnv(t, 1)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := e.request()
			req.Participants = 1
			_, errs[i] = e.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var ok, full int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrSlotFull):
			full++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, full)
	assert.Equal(t, 0, e.remaining(t))
}

func TestExecute_Validation(t *testing.T) {
	e := newEnv(t, 6)

	tests := []struct {
		name   string
		modify func(r *Request)
		want   error
	}{
		{"phone letters", func(r *Request) { r.Phone = "abc" }, ErrInvalidInput},
		{"phone too short", func(r *Request) { r.Phone = "123" }, ErrInvalidInput},
		{"no name", func(r *Request) { r.CustomerName = "  " }, ErrInvalidInput},
		{"zero participants", func(r *Request) { r.Participants = 0 }, ErrInvalidInput},
		{"over capacity", func(r *Request) { r.Participants = 7 }, ErrInvalidInput},
		{"no slot id", func(r *Request) { r.SlotID = uuid.Nil }, ErrInvalidInput},
		{"unknown instructor", func(r *Request) { r.InstructorID = uuid.New() }, ErrInstructorNotFound},
		{"unknown route", func(r *Request) { r.RouteID = uuid.New() }, ErrRouteNotFound},
		{"unknown slot", func(r *Request) { r.SlotID = uuid.New() }, ErrSlotNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := e.request()
			tt.modify(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 6, e.remaining(t))
}

func TestExecute_SlotMustMatchInstructorAndRoute(t *testing.T) {
	e := newEnv(t, 6)
	other, err := e.store.Catalog().UpsertRoute(context.Background(), &domain.Route{
		ID: uuid.New(), Title: "Озеро", BasePrice: 1000, DurationMinutes: 60, Difficulty: domain.DifficultyEasy,
	})
	require.NoError(t, err)

	req := e.request()
	req.RouteID = other.ID

	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotMismatch)
}

func TestExecute_SlotAlreadyStarted(t *testing.T) {
	e := newEnv(t, 6)
	e.uc.timeProvider = fixedClock{now: slotStart.Add(time.Minute)}

	_, err := e.uc.Execute(context.Background(), e.request())
	assert.ErrorIs(t, err, ErrSlotStarted)
}

func TestExecute_InactiveInstructor(t *testing.T) {
	e := newEnv(t, 6)
	e.instructor.IsActive = false
	_, err := e.store.Catalog().UpsertInstructor(context.Background(), e.instructor)
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), e.request())
	assert.ErrorIs(t, err, ErrInstructorInactive)
}

func TestExecute_IdempotencyKeyReplays(t *testing.T) {
	e := newEnv(t, 6)
	req := e.request()
	req.IdempotencyKey = ptr.Ptr("order-42")

	first, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	retry := e.request()
	retry.IdempotencyKey = ptr.Ptr("order-42")
	second, err := e.uc.Execute(context.Background(), retry)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Replayed)
	assert.Equal(t, 4, e.remaining(t))

	withPrice := e.request()
	withPrice.PriceTotal = ptr.Ptr(first.PriceTotal)
	withPrice.IdempotencyKey = ptr.Ptr("order-42")
	third, err := e.uc.Execute(context.Background(), withPrice)
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)

	changed := map[string]func(r *Request){
		"participants": func(r *Request) { r.Participants = 1 },
		"options":      func(r *Request) { r.Options = domain.Options{Drybag: true} },
		"price":        func(r *Request) { r.PriceTotal = ptr.Ptr(first.PriceTotal + 100) },
		"phone":        func(r *Request) { r.Phone = "+7 900 000-00-00" },
		"name":         func(r *Request) { r.CustomerName = "Петр Иванов" },
		"messenger":    func(r *Request) { r.Messenger = "@petr" },
	}
	for name, change := range changed {
		t.Run(name, func(t *testing.T) {
			other := e.request()
			change(other)
			other.IdempotencyKey = ptr.Ptr("order-42")

			_, err := e.uc.Execute(context.Background(), other)
			assert.ErrorIs(t, err, ErrIdempotencyKeyReused)
		})
	}
	assert.Equal(t, 4, e.remaining(t))
}

// mockEnv собирает use case на gomock-зависимостях для сценариев отказа хранилища
type mockEnv struct {
	uc       *UseCase
	catalog  *mocks.MockCatalogRepository
	ledger   *mocks.MockSlotLedger
	bookings *mocks.MockBookingRepository
	pricing  *mocks.MockPricingEngine
	tx       *mocks.MockTransactionManager
	metrics  *mocks.MockMetrics
	states   []string
	req      *Request
	handle   *domain.SlotHandle
}

func newMockEnv(t *testing.T) *mockEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &mockEnv{
		catalog:  mocks.NewMockCatalogRepository(ctrl),
		ledger:   mocks.NewMockSlotLedger(ctrl),
		bookings: mocks.NewMockBookingRepository(ctrl),
		pricing:  mocks.NewMockPricingEngine(ctrl),
		tx:       mocks.NewMockTransactionManager(ctrl),
		metrics:  mocks.NewMockMetrics(ctrl),
	}
	m.uc = NewUseCase(m.catalog, m.ledger, m.bookings, m.pricing, m.tx, m.metrics,
		Config{PersistAttempts: 3, CompensationTimeout: time.Second}, logger.NewNop())
	m.uc.timeProvider = fixedClock{now: clockNow}

	instructor := &domain.Instructor{ID: uuid.New(), BasePrice: 1500, IsActive: true}
	route := &domain.Route{ID: uuid.New(), BasePrice: 1000}
	slot := &domain.Slot{
		ID: uuid.New(), InstructorID: instructor.ID, RouteID: route.ID,
		StartAt: slotStart, EndAt: slotStart.Add(90 * time.Minute),
		Capacity: 6, Remaining: 6, Status: domain.SlotStatusActive,
	}
	m.req = &Request{
		InstructorID: instructor.ID,
		RouteID:      route.ID,
		SlotID:       slot.ID,
		CustomerName: "Иван",
		Phone:        "89881234567",
		Participants: 2,
	}
	m.handle = &domain.SlotHandle{SlotID: slot.ID, Participants: 2, Token: uuid.New(), Remaining: 4}

	m.metrics.EXPECT().ObserveBookingAttempt(gomock.Any()).
		Do(func(state string) { m.states = append(m.states, state) }).
		AnyTimes()
	m.catalog.EXPECT().GetInstructor(gomock.Any(), instructor.ID).Return(instructor, nil)
	m.catalog.EXPECT().GetRoute(gomock.Any(), route.ID).Return(route, nil)
	m.ledger.EXPECT().Get(gomock.Any(), slot.ID).Return(slot, nil)
	m.pricing.EXPECT().Price(instructor, route, domain.Options{}, 2).Return(int64(5000), nil)
	m.ledger.EXPECT().Reserve(gomock.Any(), slot.ID, 2).Return(m.handle, nil)
	m.tx.EXPECT().Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }).
		AnyTimes()

	return m
}

func TestExecute_PersistFailureReleasesSeats(t *testing.T) {
	m := newMockEnv(t)
	dbErr := errors.New("connection reset")

	m.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, dbErr).Times(3)
	m.ledger.EXPECT().Release(gomock.Any(), m.handle).Return(nil).Times(1)

	_, err := m.uc.Execute(context.Background(), m.req)

	assert.ErrorIs(t, err, ErrBookingFailed)
}

func TestExecute_RetriesWithSameToken(t *testing.T) {
	m := newMockEnv(t)
	var tokens []uuid.UUID

	gomock.InOrder(
		m.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
				tokens = append(tokens, b.ReservationToken)
				return nil, errors.New("serialization failure")
			}),
		m.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
				tokens = append(tokens, b.ReservationToken)
				return b, nil
			}),
	)
	m.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.StatusConfirmed).Return(nil)

	resp, err := m.uc.Execute(context.Background(), m.req)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, int64(5000), resp.PriceTotal)
	require.Len(t, tokens, 2)
	assert.Equal(t, m.handle.Token, tokens[0])
	assert.Equal(t, tokens[0], tokens[1])
}

func TestExecute_ConfirmFailureReleasesSeats(t *testing.T) {
	m := newMockEnv(t)

	m.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *domain.Booking) (*domain.Booking, error) { return b, nil }).
		Times(3)
	m.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.StatusConfirmed).
		Return(errors.New("deadlock detected")).Times(3)
	m.ledger.EXPECT().Release(gomock.Any(), m.handle).Return(nil)

	_, err := m.uc.Execute(context.Background(), m.req)
	assert.ErrorIs(t, err, ErrBookingFailed)
	assert.NotContains(t, m.states, StatePersisted)
	assert.Contains(t, m.states, StateReleased)
}

func TestExecute_PersistedCountedOncePerBooking(t *testing.T) {
	m := newMockEnv(t)

	gomock.InOrder(
		m.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *domain.Booking) (*domain.Booking, error) { return b, nil }),
		m.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.StatusConfirmed).
			Return(errors.New("deadlock detected")),
		m.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *domain.Booking) (*domain.Booking, error) { return b, nil }),
		m.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.StatusConfirmed).Return(nil),
	)

	_, err := m.uc.Execute(context.Background(), m.req)
	require.NoError(t, err)

	persisted := 0
	for _, state := range m.states {
		if state == StatePersisted {
			persisted++
		}
	}
	assert.Equal(t, 1, persisted)
}

func TestExecute_ReleaseSurvivesClientCancellation(t *testing.T) {
	m := newMockEnv(t)
	ctx, cancel := context.WithCancel(context.Background())

	m.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Booking) (*domain.Booking, error) {
			cancel()
			return nil, context.Canceled
		})
	m.ledger.EXPECT().Release(gomock.Any(), m.handle).
		DoAndReturn(func(ctx context.Context, _ *domain.SlotHandle) error {
			assert.NoError(t, ctx.Err())
			return nil
		})

	_, err := m.uc.Execute(ctx, m.req)
	assert.ErrorIs(t, err, ErrBookingFailed)
}

func TestExecute_DuplicateKeyRaceReturnsWinner(t *testing.T) {
	m := newMockEnv(t)
	m.req.IdempotencyKey = ptr.Ptr("order-7")

	winner := &domain.Booking{
		ID: uuid.New(), InstructorID: m.req.InstructorID, RouteID: m.req.RouteID, SlotID: m.req.SlotID,
		CustomerName: m.req.CustomerName, Phone: m.req.Phone,
		Participants: 2, PriceTotal: 5000, Status: domain.StatusConfirmed,
	}

	gomock.InOrder(
		m.bookings.EXPECT().GetByIdempotencyKey(gomock.Any(), "order-7").Return(nil, bookingRepo.ErrBookingNotFound),
		m.bookings.EXPECT().GetByIdempotencyKey(gomock.Any(), "order-7").Return(winner, nil),
	)
	m.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, bookingRepo.ErrDuplicateIdempotencyKey)
	m.ledger.EXPECT().Release(gomock.Any(), m.handle).Return(nil)

	resp, err := m.uc.Execute(context.Background(), m.req)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, resp.ID)
	assert.True(t, resp.Replayed)
}

func TestExecute_DuplicateKeyRaceWithOtherOptionsIsRejected(t *testing.T) {
	m := newMockEnv(t)
	m.req.IdempotencyKey = ptr.Ptr("order-8")

	winner := &domain.Booking{
		ID: uuid.New(), InstructorID: m.req.InstructorID, RouteID: m.req.RouteID, SlotID: m.req.SlotID,
		CustomerName: m.req.CustomerName, Phone: m.req.Phone,
		Participants: 2, Options: domain.Options{Photo: true}, PriceTotal: 5500, Status: domain.StatusConfirmed,
	}

	gomock.InOrder(
		m.bookings.EXPECT().GetByIdempotencyKey(gomock.Any(), "order-8").Return(nil, bookingRepo.ErrBookingNotFound),
		m.bookings.EXPECT().GetByIdempotencyKey(gomock.Any(), "order-8").Return(winner, nil),
	)
	m.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, bookingRepo.ErrDuplicateIdempotencyKey)
	m.ledger.EXPECT().Release(gomock.Any(), m.handle).Return(nil)

	_, err := m.uc.Execute(context.Background(), m.req)
	assert.ErrorIs(t, err, ErrIdempotencyKeyReused)
}
