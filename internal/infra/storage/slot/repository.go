package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SUP-BookingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"instructor_id",
	"route_id",
	"start_at",
	"end_at",
	"capacity",
	"remaining",
	"status",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAvailable возвращает активные слоты со свободными местами, начинающиеся в сутки (UTC) filter.Date.
// Результат отсортирован по времени начала.
func (r *Repository) ListAvailable(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.Slot, error) {
	dayStart, dayEnd := filter.DayBounds()

	selectBuilder := availableSlots().
		Where(squirrel.GtOrEq{"start_at": dayStart}).
		Where(squirrel.Lt{"start_at": dayEnd}).
		OrderBy("start_at ASC", "id ASC")

	if filter.RouteID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"route_id": *filter.RouteID})
	}
	if filter.InstructorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"instructor_id": *filter.InstructorID})
	}

	return r.query(ctx, "ListAvailable", selectBuilder)
}

// ListCandidates возвращает доступные слоты в окне [From, To] для подбора альтернатив.
// Результат отсортирован по времени начала и ограничен filter.Limit.
func (r *Repository) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]*domain.Slot, error) {
	selectBuilder := availableSlots().
		Where(squirrel.GtOrEq{"start_at": filter.From}).
		Where(squirrel.LtOrEq{"start_at": filter.To}).
		OrderBy("start_at ASC", "id ASC")

	if filter.InstructorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"instructor_id": *filter.InstructorID})
	}
	if filter.RouteID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"route_id": *filter.RouteID})
	}
	if filter.Exclude != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.Exclude})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	return r.query(ctx, "ListCandidates", selectBuilder)
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Reserve атомарно уменьшает remaining на participants.
// Проверка вместимости выполняется тем же UPDATE, поэтому два конкурентных резерва
// не могут оба пройти при недостатке мест. Возвращает остаток мест после резерва.
func (r *Repository) Reserve(ctx context.Context, slotID uuid.UUID, participants int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("remaining", squirrel.Expr("remaining - ?", participants)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Eq{"status": domain.SlotStatusActive}).
		Where(squirrel.GtOrEq{"remaining": participants}).
		Suffix("RETURNING remaining").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	var remaining int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	// Резерв не прошел. Читаем слот только для выбора ошибки, решение уже принято UPDATE.
	slot, err := r.GetByID(ctx, slotID)
	if err != nil {
		return 0, err
	}
	if slot.Status != domain.SlotStatusActive {
		return 0, ErrSlotClosed
	}
	return 0, ErrCapacityExceeded
}

// Release возвращает participants мест в слот, не превышая capacity.
// Возвращает остаток мест после возврата.
func (r *Repository) Release(ctx context.Context, slotID uuid.UUID, participants int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("remaining", squirrel.Expr("LEAST(capacity, remaining + ?)", participants)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Suffix("RETURNING remaining").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	var remaining int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSlotNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return remaining, nil
}

// BulkCreate создает слоты одним запросом
func (r *Repository) BulkCreate(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("id", "instructor_id", "route_id", "start_at", "end_at", "capacity", "remaining", "status")
	for _, s := range slots {
		insertBuilder = insertBuilder.Values(s.ID, s.InstructorID, s.RouteID, s.StartAt, s.EndAt, s.Capacity, s.Remaining, s.Status)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: BulkCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BulkCreate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func availableSlots() squirrel.SelectBuilder {
	return psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"status": domain.SlotStatusActive}).
		Where(squirrel.Gt{"remaining": 0})
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return slots, nil
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot

	err := row.Scan(
		&slot.ID,
		&slot.InstructorID,
		&slot.RouteID,
		&slot.StartAt,
		&slot.EndAt,
		&slot.Capacity,
		&slot.Remaining,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.StartAt = slot.StartAt.UTC()
	slot.EndAt = slot.EndAt.UTC()

	return &slot, nil
}
