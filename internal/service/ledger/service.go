package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	slotRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/slot"
)

// Результаты операций для метрик
const (
	opReserve = "reserve"
	opRelease = "release"

	resultOK               = "ok"
	resultCapacityExceeded = "capacity_exceeded"
	resultNotFound         = "not_found"
	resultClosed           = "closed"
	resultError            = "error"
)

// Service учет свободных мест в слотах.
// Резерв выполняется одной атомарной операцией хранилища, проверка вместимости и уменьшение
// remaining неразделимы.
type Service struct {
	repo    SlotRepository
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса слотов. metrics может быть nil.
func NewService(repo SlotRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// ListAvailable возвращает активные слоты со свободными местами на дату, по возрастанию времени начала
func (s *Service) ListAvailable(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.Slot, error) {
	slots, err := s.repo.ListAvailable(ctx, filter)
	if err != nil {
		s.logger.Error("ListAvailable: repository error for date=%s: %v", filter.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}
	return slots, nil
}

// ListCandidates возвращает доступные слоты в окне времени
func (s *Service) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]*domain.Slot, error) {
	slots, err := s.repo.ListCandidates(ctx, filter)
	if err != nil {
		s.logger.Error("ListCandidates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCandidates - repository error: %v", ErrInternal, err)
	}
	return slots, nil
}

// Get получает слот по ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetSlot: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return slot, nil
}

// Reserve занимает participants мест в слоте.
// Решение о вместимости принимается в момент записи, а не по ранее прочитанному remaining.
func (s *Service) Reserve(ctx context.Context, slotID uuid.UUID, participants int) (*domain.SlotHandle, error) {
	if participants < domain.MinParticipants {
		return nil, fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}

	remaining, err := s.repo.Reserve(ctx, slotID, participants)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrCapacityExceeded):
			s.observe(opReserve, resultCapacityExceeded)
			s.logger.Warn("Reserve: slot id=%s has less than %d seats", slotID, participants)
			return nil, ErrCapacityExceeded
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.observe(opReserve, resultNotFound)
			return nil, ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotClosed):
			s.observe(opReserve, resultClosed)
			return nil, ErrSlotClosed
		default:
			s.observe(opReserve, resultError)
			s.logger.Error("Reserve: repository error for slot id=%s: %v", slotID, err)
			return nil, fmt.Errorf("%w: Reserve - repository error: %v", ErrInternal, err)
		}
	}

	s.observe(opReserve, resultOK)
	handle := &domain.SlotHandle{
		SlotID:       slotID,
		Participants: participants,
		Token:        uuid.New(),
		Remaining:    remaining,
	}
	s.logger.Info("Reserve: slot id=%s reserved %d seats, remaining=%d, token=%s", slotID, participants, remaining, handle.Token)

	return handle, nil
}

// Release возвращает места резерва в слот (не больше capacity)
func (s *Service) Release(ctx context.Context, handle *domain.SlotHandle) error {
	remaining, err := s.repo.Release(ctx, handle.SlotID, handle.Participants)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.observe(opRelease, resultNotFound)
			return ErrSlotNotFound
		}
		s.observe(opRelease, resultError)
		s.logger.Error("Release: repository error for slot id=%s: %v", handle.SlotID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.observe(opRelease, resultOK)
	s.logger.Info("Release: slot id=%s released %d seats, remaining=%d, token=%s",
		handle.SlotID, handle.Participants, remaining, handle.Token)

	return nil
}

// BulkCreate создает слоты расписания. remaining равен capacity, статус active.
func (s *Service) BulkCreate(ctx context.Context, items []NewSlot) ([]*domain.Slot, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no slots given", ErrInvalidInput)
	}

	slots := make([]*domain.Slot, 0, len(items))
	for i, item := range items {
		if item.InstructorID == uuid.Nil || item.RouteID == uuid.Nil {
			return nil, fmt.Errorf("%w: slot #%d: instructor and route are required", ErrInvalidInput, i)
		}
		if !item.EndAt.After(item.StartAt) {
			return nil, fmt.Errorf("%w: slot #%d: end must be after start", ErrInvalidInput, i)
		}
		if item.Capacity <= 0 {
			return nil, fmt.Errorf("%w: slot #%d: capacity must be positive", ErrInvalidInput, i)
		}

		slots = append(slots, &domain.Slot{
			ID:           uuid.New(),
			InstructorID: item.InstructorID,
			RouteID:      item.RouteID,
			StartAt:      item.StartAt.UTC(),
			EndAt:        item.EndAt.UTC(),
			Capacity:     item.Capacity,
			Remaining:    item.Capacity,
			Status:       domain.SlotStatusActive,
		})
	}

	if err := s.repo.BulkCreate(ctx, slots); err != nil {
		s.logger.Error("BulkCreate: repository error: %v", err)
		return nil, fmt.Errorf("%w: BulkCreate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BulkCreate: created %d slots", len(slots))
	return slots, nil
}

func (s *Service) observe(operation, result string) {
	if s.metrics != nil {
		s.metrics.ObserveReservation(operation, result)
	}
}
