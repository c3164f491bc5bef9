package catalog

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func instructorRow(id uuid.UUID, name string, rating float64) []driver.Value {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return []driver.Value{
		id.String(), name, "", "bio", int64(3000), rating, 12, 5,
		"{sup,Family}", "{ru,en}", true, now, now,
	}
}

func TestRepository_ListInstructors_WithFilters(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, photo_url, bio, base_price, rating, reviews_count, experience_years, tags, languages, is_active, created_at, updated_at FROM instructors WHERE is_active = $1 AND EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE lower(t) = lower($2)) AND base_price >= $3 AND rating >= $4 ORDER BY rating DESC, name ASC")).
		WithArgs(true, "family", int64(2000), 4.5).
		WillReturnRows(sqlmock.NewRows(instructorColumns).AddRow(instructorRow(id, "Алексей", 4.9)...))

	got, err := repo.ListInstructors(context.Background(), domain.InstructorFilter{
		Tag:       "family",
		MinPrice:  ptr.Ptr(int64(2000)),
		MinRating: ptr.Ptr(4.5),
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, []string{"sup", "Family"}, got[0].Tags)
	assert.Equal(t, []string{"ru", "en"}, got[0].Languages)
	assert.Equal(t, int64(3000), got[0].BasePrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListInstructors_IncludeHidden(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM instructors ORDER BY rating DESC, name ASC")).
		WillReturnRows(sqlmock.NewRows(instructorColumns))

	got, err := repo.ListInstructors(context.Background(), domain.InstructorFilter{IncludeHidden: true})

	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetInstructor_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM instructors WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(instructorColumns))

	_, err := repo.GetInstructor(context.Background(), id)

	assert.ErrorIs(t, err, ErrInstructorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertInstructor(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	instructor := &domain.Instructor{
		ID:        uuid.New(),
		Name:      "Мария",
		BasePrice: 3200,
		Rating:    4.8,
		IsActive:  true,
	}

	mock.ExpectQuery("INSERT INTO instructors (.+) ON CONFLICT \\(id\\) DO UPDATE SET").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	got, err := repo.UpsertInstructor(context.Background(), instructor)

	require.NoError(t, err)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetRoute(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM routes WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(routeColumns).AddRow(
			id.String(), "Утренняя прогулка", "", int64(2500), 90, "easy", 45.092, 37.268, "Пляж", now, now,
		))

	got, err := repo.GetRoute(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyEasy, got.Difficulty)
	assert.Equal(t, 90, got.DurationMinutes)
	assert.InDelta(t, 45.092, got.Location.Lat, 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetRoute_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM routes").WillReturnRows(sqlmock.NewRows(routeColumns))

	_, err := repo.GetRoute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRepository_ListRoutes(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM routes ORDER BY title ASC").
		WillReturnRows(sqlmock.NewRows(routeColumns).
			AddRow(uuid.NewString(), "A", "", int64(2500), 90, "easy", 45.0, 37.0, "", now, now).
			AddRow(uuid.NewString(), "B", "", int64(3500), 120, "medium", 45.1, 37.1, "", now, now))

	got, err := repo.ListRoutes(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
