package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
)

// UseCase use case для создания бронирования.
// Попытка проходит состояния Received → Validated → Reserved → Persisted → Confirmed;
// ошибка до резерва дает Rejected, ошибка после резерва возвращает места (Released).
type UseCase struct {
	catalog      CatalogRepository
	ledger       SlotLedger
	bookingRepo  BookingRepository
	pricing      PricingEngine
	txManager    TransactionManager
	metrics      Metrics
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogRepository,
	ledger SlotLedger,
	bookingRepo BookingRepository,
	pricing PricingEngine,
	txManager TransactionManager,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.PersistAttempts < 1 {
		cfg.PersistAttempts = 1
	}
	return &UseCase{
		catalog:      catalog,
		ledger:       ledger,
		bookingRepo:  bookingRepo,
		pricing:      pricing,
		txManager:    txManager,
		metrics:      metrics,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.observe(StateReceived)
	uc.logger.Info("CreateBooking: instructor=%s, route=%s, slot=%s, participants=%d",
		req.InstructorID, req.RouteID, req.SlotID, req.Participants)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, uc.reject(err)
	}

	// 2. Повтор по ключу идемпотентности возвращает ранее созданное бронирование
	if req.IdempotencyKey != nil {
		existing, err := uc.bookingRepo.GetByIdempotencyKey(ctx, *req.IdempotencyKey)
		switch {
		case err == nil:
			if !sameRequest(existing, req) {
				uc.logger.Warn("CreateBooking: idempotency key reused for another request, booking id=%s", existing.ID)
				return nil, uc.reject(ErrIdempotencyKeyReused)
			}
			uc.observe(StateReplayed)
			uc.logger.Info("CreateBooking: replaying booking id=%s for idempotency key", existing.ID)
			return responseFromBooking(existing, true), nil
		case !errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Error("CreateBooking: failed to lookup idempotency key: %v", err)
			return nil, uc.reject(fmt.Errorf("%w: failed to lookup idempotency key: %v", ErrInternal, err))
		}
	}

	// 3. Получаем инструктора, он должен принимать бронирования
	instructor, err := uc.catalog.GetInstructor(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrInstructorNotFound) {
			uc.logger.Warn("CreateBooking: instructor id=%s not found", req.InstructorID)
			return nil, uc.reject(ErrInstructorNotFound)
		}
		uc.logger.Error("CreateBooking: failed to get instructor id=%s: %v", req.InstructorID, err)
		return nil, uc.reject(fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err))
	}
	if !instructor.IsActive {
		uc.logger.Warn("CreateBooking: instructor id=%s is not active", req.InstructorID)
		return nil, uc.reject(ErrInstructorInactive)
	}

	// 4. Получаем маршрут
	route, err := uc.catalog.GetRoute(ctx, req.RouteID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRouteNotFound) {
			uc.logger.Warn("CreateBooking: route id=%s not found", req.RouteID)
			return nil, uc.reject(ErrRouteNotFound)
		}
		uc.logger.Error("CreateBooking: failed to get route id=%s: %v", req.RouteID, err)
		return nil, uc.reject(fmt.Errorf("%w: failed to get route: %v", ErrInternal, err))
	}

	// 5. Получаем слот и проверяем его принадлежность и время
	slot, err := uc.ledger.Get(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, ledger.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%s not found", req.SlotID)
			return nil, uc.reject(ErrSlotNotFound)
		}
		uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", req.SlotID, err)
		return nil, uc.reject(fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err))
	}
	if err := validateSlot(slot, req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: slot id=%s rejected: %v", req.SlotID, err)
		return nil, uc.reject(err)
	}

	uc.observe(StateValidated)

	// 6. Серверный расчет цены, цена клиента только сверяется
	total, err := uc.pricing.Price(instructor, route, req.Options, req.Participants)
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing failed: %v", err)
		return nil, uc.reject(fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	if req.PriceTotal != nil && *req.PriceTotal != total {
		uc.logger.Warn("CreateBooking: price mismatch, client=%d server=%d", *req.PriceTotal, total)
		return nil, uc.reject(fmt.Errorf("%w: expected %d, got %d", ErrPriceMismatch, total, *req.PriceTotal))
	}

	// 7. Резервируем места атомарной операцией
	handle, err := uc.ledger.Reserve(ctx, req.SlotID, req.Participants)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrCapacityExceeded), errors.Is(err, ledger.ErrSlotClosed):
			uc.logger.Warn("CreateBooking: slot id=%s is full: %v", req.SlotID, err)
			return nil, uc.reject(ErrSlotFull)
		case errors.Is(err, ledger.ErrSlotNotFound):
			uc.logger.Warn("CreateBooking: slot id=%s disappeared before reserve", req.SlotID)
			return nil, uc.reject(ErrSlotNotFound)
		default:
			uc.logger.Error("CreateBooking: failed to reserve slot id=%s: %v", req.SlotID, err)
			return nil, uc.reject(fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err))
		}
	}
	uc.observe(StateReserved)

	booking := &domain.Booking{
		ID:               uuid.New(),
		InstructorID:     req.InstructorID,
		RouteID:          req.RouteID,
		SlotID:           req.SlotID,
		CustomerName:     req.CustomerName,
		Phone:            req.Phone,
		Messenger:        req.Messenger,
		Participants:     req.Participants,
		Options:          req.Options,
		PriceTotal:       total,
		Status:           domain.StatusPending,
		ReservationToken: handle.Token,
		IdempotencyKey:   req.IdempotencyKey,
	}

	// 8. Сохраняем бронирование (pending → confirmed), повторяя попытки с тем же токеном
	confirmed, err := uc.persist(ctx, booking)
	if err != nil {
		// Проигравший в гонке за ключ идемпотентности возвращает свои места и бронирование победителя
		if errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey) {
			uc.compensate(ctx, handle)
			return uc.replayWinner(ctx, req)
		}

		uc.logger.Error("CreateBooking: failed to persist booking for slot id=%s: %v", req.SlotID, err)
		uc.compensate(ctx, handle)
		return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
	}

	uc.observe(StateConfirmed)
	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%d, remaining=%d",
		confirmed.ID, confirmed.PriceTotal, handle.Remaining)

	return responseFromBooking(confirmed, false), nil
}

// persist сохраняет бронирование в транзакции. Повторы идемпотентны по ReservationToken.
func (uc *UseCase) persist(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	var lastErr error

	for attempt := 1; attempt <= uc.cfg.PersistAttempts; attempt++ {
		var result *domain.Booking
		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				return err
			}

			if created.Status == domain.StatusPending {
				if err := uc.bookingRepo.UpdateStatus(txCtx, created.ID, domain.StatusConfirmed); err != nil {
					return err
				}
				created.Status = domain.StatusConfirmed
			}

			result = created
			return nil
		})
		if err == nil {
			uc.observe(StatePersisted)
			return result, nil
		}

		lastErr = err
		if errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey) || ctx.Err() != nil {
			break
		}
		uc.logger.Warn("CreateBooking: persist attempt %d/%d failed for token=%s: %v",
			attempt, uc.cfg.PersistAttempts, booking.ReservationToken, err)
	}

	return nil, lastErr
}

// compensate возвращает места в слот. Выполняется и при отмене запроса клиентом.
func (uc *UseCase) compensate(ctx context.Context, handle *domain.SlotHandle) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.CompensationTimeout)
	defer cancel()

	if err := uc.ledger.Release(releaseCtx, handle); err != nil {
		uc.logger.Error("CreateBooking: failed to release slot id=%s token=%s: %v", handle.SlotID, handle.Token, err)
		return
	}

	uc.observe(StateReleased)
	uc.logger.Warn("CreateBooking: released %d seats in slot id=%s token=%s",
		handle.Participants, handle.SlotID, handle.Token)
}

func (uc *UseCase) replayWinner(ctx context.Context, req *Request) (*Response, error) {
	winner, err := uc.bookingRepo.GetByIdempotencyKey(ctx, *req.IdempotencyKey)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load booking for duplicate idempotency key: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
	}
	if !sameRequest(winner, req) {
		return nil, ErrIdempotencyKeyReused
	}

	uc.observe(StateReplayed)
	uc.logger.Info("CreateBooking: concurrent duplicate, returning booking id=%s", winner.ID)
	return responseFromBooking(winner, true), nil
}

func (uc *UseCase) reject(err error) error {
	uc.observe(StateRejected)
	return err
}

func (uc *UseCase) observe(state string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBookingAttempt(state)
	}
}
