package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/slot"
)

// SlotRepository слоты в памяти
type SlotRepository struct {
	store *Store
}

func (r *SlotRepository) ListAvailable(_ context.Context, filter domain.AvailabilityFilter) ([]*domain.Slot, error) {
	dayStart, dayEnd := filter.DayBounds()

	return r.collect(func(s *domain.Slot) bool {
		if s.StartAt.Before(dayStart) || !s.StartAt.Before(dayEnd) {
			return false
		}
		if filter.RouteID != nil && s.RouteID != *filter.RouteID {
			return false
		}
		if filter.InstructorID != nil && s.InstructorID != *filter.InstructorID {
			return false
		}
		return true
	}, 0), nil
}

func (r *SlotRepository) ListCandidates(_ context.Context, filter domain.CandidateFilter) ([]*domain.Slot, error) {
	return r.collect(func(s *domain.Slot) bool {
		if s.StartAt.Before(filter.From) || s.StartAt.After(filter.To) {
			return false
		}
		if filter.InstructorID != nil && s.InstructorID != *filter.InstructorID {
			return false
		}
		if filter.RouteID != nil && s.RouteID != *filter.RouteID {
			return false
		}
		if filter.Exclude != nil && s.ID == *filter.Exclude {
			return false
		}
		return true
	}, filter.Limit), nil
}

func (r *SlotRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.slots[id]
	if !ok {
		return nil, slot.ErrSlotNotFound
	}
	return &s, nil
}

// Reserve проверяет и уменьшает remaining под одной блокировкой
func (r *SlotRepository) Reserve(_ context.Context, slotID uuid.UUID, participants int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.slots[slotID]
	if !ok {
		return 0, slot.ErrSlotNotFound
	}
	if s.Status != domain.SlotStatusActive {
		return 0, slot.ErrSlotClosed
	}
	if s.Remaining < participants {
		return 0, slot.ErrCapacityExceeded
	}

	s.Remaining -= participants
	s.UpdatedAt = time.Now().UTC()
	r.store.slots[slotID] = s

	return s.Remaining, nil
}

func (r *SlotRepository) Release(_ context.Context, slotID uuid.UUID, participants int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.slots[slotID]
	if !ok {
		return 0, slot.ErrSlotNotFound
	}

	s.Remaining += participants
	if s.Remaining > s.Capacity {
		s.Remaining = s.Capacity
	}
	s.UpdatedAt = time.Now().UTC()
	r.store.slots[slotID] = s

	return s.Remaining, nil
}

func (r *SlotRepository) BulkCreate(_ context.Context, slots []*domain.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	for _, s := range slots {
		s.CreatedAt = now
		s.UpdatedAt = now
		r.store.slots[s.ID] = *s
	}
	return nil
}

func (r *SlotRepository) collect(match func(s *domain.Slot) bool, limit int) []*domain.Slot {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Slot, 0)
	for _, s := range r.store.slots {
		s := s
		if !s.IsBookable() || !match(&s) {
			continue
		}
		result = append(result, &s)
	}

	sort.Slice(result, func(a, b int) bool {
		if !result[a].StartAt.Equal(result[b].StartAt) {
			return result[a].StartAt.Before(result[b].StartAt)
		}
		return result[a].ID.String() < result[b].ID.String()
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
