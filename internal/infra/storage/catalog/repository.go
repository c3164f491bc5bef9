package catalog

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

var instructorColumns = []string{
	"id",
	"name",
	"photo_url",
	"bio",
	"base_price",
	"rating",
	"reviews_count",
	"experience_years",
	"tags",
	"languages",
	"is_active",
	"created_at",
	"updated_at",
}

var routeColumns = []string{
	"id",
	"title",
	"description",
	"base_price",
	"duration_minutes",
	"difficulty",
	"location_lat",
	"location_lng",
	"location_title",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий каталога: инструкторы и маршруты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListInstructors возвращает инструкторов по фильтру, отсортированных по рейтингу (по убыванию), затем по имени.
// Тег сравнивается без учета регистра.
func (r *Repository) ListInstructors(ctx context.Context, filter domain.InstructorFilter) ([]*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(instructorColumns...).
		From("instructors").
		OrderBy("rating DESC", "name ASC")

	if !filter.IncludeHidden {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Tag != "" {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE lower(t) = lower(?))", filter.Tag),
		)
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"base_price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"base_price": *filter.MaxPrice})
	}
	if filter.MinRating != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"rating": *filter.MinRating})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInstructors - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInstructors - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	instructors := make([]*domain.Instructor, 0)
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListInstructors - scan instructor: %v", ErrScanRow, err)
		}
		instructors = append(instructors, instructor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInstructors - iterate rows: %v", ErrScanRow, err)
	}

	return instructors, nil
}

// GetInstructor получает инструктора по ID (включая неактивных)
func (r *Repository) GetInstructor(ctx context.Context, id uuid.UUID) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(instructorColumns...).
		From("instructors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInstructor - build select query: %v", ErrBuildQuery, err)
	}

	instructor, err := scanInstructor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstructorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetInstructor - scan instructor: %v", ErrScanRow, err)
	}

	return instructor, nil
}

// UpsertInstructor создает инструктора или обновляет существующего с тем же ID
func (r *Repository) UpsertInstructor(ctx context.Context, instructor *domain.Instructor) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("instructors").
		Columns(
			"id",
			"name",
			"photo_url",
			"bio",
			"base_price",
			"rating",
			"reviews_count",
			"experience_years",
			"tags",
			"languages",
			"is_active",
		).
		Values(
			instructor.ID,
			instructor.Name,
			instructor.PhotoURL,
			instructor.Bio,
			instructor.BasePrice,
			instructor.Rating,
			instructor.ReviewsCount,
			instructor.ExperienceYears,
			pq.Array(nonNil(instructor.Tags)),
			pq.Array(nonNil(instructor.Languages)),
			instructor.IsActive,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			photo_url = EXCLUDED.photo_url,
			bio = EXCLUDED.bio,
			base_price = EXCLUDED.base_price,
			rating = EXCLUDED.rating,
			reviews_count = EXCLUDED.reviews_count,
			experience_years = EXCLUDED.experience_years,
			tags = EXCLUDED.tags,
			languages = EXCLUDED.languages,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertInstructor - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&instructor.CreatedAt, &instructor.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertInstructor - execute insert: %v", ErrExecQuery, err)
	}

	return instructor, nil
}

// ListRoutes возвращает все маршруты, отсортированные по названию
func (r *Repository) ListRoutes(ctx context.Context) ([]*domain.Route, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(routeColumns...).
		From("routes").
		OrderBy("title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRoutes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRoutes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRoutes - scan route: %v", ErrScanRow, err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRoutes - iterate rows: %v", ErrScanRow, err)
	}

	return routes, nil
}

// GetRoute получает маршрут по ID
func (r *Repository) GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(routeColumns...).
		From("routes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoute - build select query: %v", ErrBuildQuery, err)
	}

	route, err := scanRoute(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoute - scan route: %v", ErrScanRow, err)
	}

	return route, nil
}

// UpsertRoute создает маршрут или обновляет существующий с тем же ID
func (r *Repository) UpsertRoute(ctx context.Context, route *domain.Route) (*domain.Route, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("routes").
		Columns(
			"id",
			"title",
			"description",
			"base_price",
			"duration_minutes",
			"difficulty",
			"location_lat",
			"location_lng",
			"location_title",
		).
		Values(
			route.ID,
			route.Title,
			route.Description,
			route.BasePrice,
			route.DurationMinutes,
			route.Difficulty,
			route.Location.Lat,
			route.Location.Lng,
			route.Location.Title,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			base_price = EXCLUDED.base_price,
			duration_minutes = EXCLUDED.duration_minutes,
			difficulty = EXCLUDED.difficulty,
			location_lat = EXCLUDED.location_lat,
			location_lng = EXCLUDED.location_lng,
			location_title = EXCLUDED.location_title,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRoute - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&route.CreatedAt, &route.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRoute - execute insert: %v", ErrExecQuery, err)
	}

	return route, nil
}

func scanInstructor(row rowScanner) (*domain.Instructor, error) {
	var instructor domain.Instructor
	var tags, languages pq.StringArray

	err := row.Scan(
		&instructor.ID,
		&instructor.Name,
		&instructor.PhotoURL,
		&instructor.Bio,
		&instructor.BasePrice,
		&instructor.Rating,
		&instructor.ReviewsCount,
		&instructor.ExperienceYears,
		&tags,
		&languages,
		&instructor.IsActive,
		&instructor.CreatedAt,
		&instructor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	instructor.Tags = []string(tags)
	instructor.Languages = []string(languages)

	return &instructor, nil
}

func scanRoute(row rowScanner) (*domain.Route, error) {
	var route domain.Route

	err := row.Scan(
		&route.ID,
		&route.Title,
		&route.Description,
		&route.BasePrice,
		&route.DurationMinutes,
		&route.Difficulty,
		&route.Location.Lat,
		&route.Location.Lng,
		&route.Location.Title,
		&route.CreatedAt,
		&route.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &route, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
