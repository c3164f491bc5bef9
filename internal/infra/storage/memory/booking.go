package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

// Create сохраняет бронирование. Повтор с тем же ReservationToken возвращает уже сохраненную запись.
func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.bookings {
		if existing.ReservationToken == b.ReservationToken {
			return copyBooking(existing), nil
		}
		if b.IdempotencyKey != nil && existing.IdempotencyKey != nil && *existing.IdempotencyKey == *b.IdempotencyKey {
			return nil, booking.ErrDuplicateIdempotencyKey
		}
	}

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.store.bookings[b.ID] = *copyBooking(*b)

	return b, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

// GetForUpdate в памяти совпадает с GetByID, сериализацию обеспечивает TxManager
func (r *BookingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) GetByReservationToken(_ context.Context, token uuid.UUID) (*domain.Booking, error) {
	return r.find(func(b *domain.Booking) bool { return b.ReservationToken == token })
}

func (r *BookingRepository) GetByIdempotencyKey(_ context.Context, key string) (*domain.Booking, error) {
	return r.find(func(b *domain.Booking) bool { return b.IdempotencyKey != nil && *b.IdempotencyKey == key })
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.BookingStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}

	now := time.Now().UTC()
	b.Status = status
	b.UpdatedAt = now
	if status == domain.StatusCancelled {
		b.CancelledAt = &now
	}
	r.store.bookings[id] = b

	return nil
}

func (r *BookingRepository) find(match func(b *domain.Booking) bool) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, b := range r.store.bookings {
		b := b
		if match(&b) {
			return copyBooking(b), nil
		}
	}
	return nil, booking.ErrBookingNotFound
}

func copyBooking(b domain.Booking) *domain.Booking {
	if b.IdempotencyKey != nil {
		key := *b.IdempotencyKey
		b.IdempotencyKey = &key
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		b.CancelledAt = &at
	}
	return &b
}
