package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SUP-BookingService/pkg/psqlbuilder"
)

const (
	uniqueViolation          = "23505"
	idempotencyKeyConstraint = "bookings_idempotency_key_key"
)

var bookingColumns = []string{
	"id",
	"instructor_id",
	"route_id",
	"slot_id",
	"customer_name",
	"phone",
	"messenger",
	"participants",
	"option_photo",
	"option_drybag",
	"option_vest",
	"price_total",
	"status",
	"reservation_token",
	"idempotency_key",
	"cancelled_at",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование.
// Повторная вставка с тем же ReservationToken ничего не меняет и возвращает уже сохраненную запись,
// поэтому повтор после сбоя не создает дубликат. Если в контексте передана транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"instructor_id",
			"route_id",
			"slot_id",
			"customer_name",
			"phone",
			"messenger",
			"participants",
			"option_photo",
			"option_drybag",
			"option_vest",
			"price_total",
			"status",
			"reservation_token",
			"idempotency_key",
		).
		Values(
			booking.ID,
			booking.InstructorID,
			booking.RouteID,
			booking.SlotID,
			booking.CustomerName,
			booking.Phone,
			booking.Messenger,
			booking.Participants,
			booking.Options.Photo,
			booking.Options.Drybag,
			booking.Options.Vest,
			booking.PriceTotal,
			booking.Status,
			booking.ReservationToken,
			booking.IdempotencyKey,
		).
		Suffix("ON CONFLICT (reservation_token) DO NOTHING RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Запись с этим токеном уже сохранена предыдущей попыткой
		return r.GetByReservationToken(ctx, booking.ReservationToken)
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == idempotencyKeyConstraint {
			return nil, ErrDuplicateIdempotencyKey
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReservationToken получает бронирование по токену резерва
func (r *Repository) GetByReservationToken(ctx context.Context, token uuid.UUID) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByReservationToken", squirrel.Eq{"reservation_token": token})
}

// GetByIdempotencyKey получает бронирование по ключу идемпотентности клиента
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByIdempotencyKey", squirrel.Eq{"idempotency_key": key})
}

// GetForUpdate получает бронирование по ID с блокировкой строки (внутри транзакции)
func (r *Repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetForUpdate - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// UpdateStatus обновляет статус бронирования. Для отмены также выставляет cancelled_at.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	if status == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var idempotencyKey sql.NullString
	var cancelledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.InstructorID,
		&booking.RouteID,
		&booking.SlotID,
		&booking.CustomerName,
		&booking.Phone,
		&booking.Messenger,
		&booking.Participants,
		&booking.Options.Photo,
		&booking.Options.Drybag,
		&booking.Options.Vest,
		&booking.PriceTotal,
		&booking.Status,
		&booking.ReservationToken,
		&idempotencyKey,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if idempotencyKey.Valid {
		booking.IdempotencyKey = &idempotencyKey.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}

	return &booking, nil
}
