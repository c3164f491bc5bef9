package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SUP-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	ledger      SlotLedger
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	ledger SlotLedger,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		ledger:      ledger,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование и возвращает места в слот в одной транзакции.
// Повторная отмена возвращает ErrCannotCancel.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	var cancelled *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Блокируем бронирование
		booking, err := s.bookingRepo.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем, можно ли отменить
		if !booking.CanBeCancelled() {
			return ErrCannotCancel
		}

		// 3. Меняем статус
		if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 4. Возвращаем места
		handle := &domain.SlotHandle{
			SlotID:       booking.SlotID,
			Participants: booking.Participants,
			Token:        booking.ReservationToken,
		}
		if err := s.ledger.Release(ctx, handle); err != nil {
			return fmt.Errorf("%w: Cancel - release failed: %v", ErrInternal, err)
		}

		cancelled, err = s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%s not found", id)
		case errors.Is(err, ErrCannotCancel):
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled", id)
		default:
			s.logger.Error("Cancel: failed to cancel booking id=%s: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s, released %d seats in slot id=%s",
		id, cancelled.Participants, cancelled.SlotID)
	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus обновляет статус бронирования (админка).
// Переход в cancelled выполняется через Cancel, чтобы вернуть места.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", id, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if newStatus == domain.StatusCancelled {
		return s.Cancel(ctx, id)
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if booking.Status == newStatus {
			updated = booking
			return nil
		}
		if !booking.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		updated, err = s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrInvalidTransition) {
			s.logger.Warn("UpdateStatus: booking id=%s: %v", id, err)
		} else {
			s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", id, newStatus)
	return models.FromDomainBooking(updated), nil
}
