package list_instructors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

type fakeService struct {
	got    domain.InstructorFilter
	result []*domain.Instructor
	err    error
}

func (f *fakeService) ListInstructors(_ context.Context, filter domain.InstructorFilter) ([]*domain.Instructor, error) {
	f.got = filter
	return f.result, f.err
}

func TestHandle_PassesFilter(t *testing.T) {
	svc := &fakeService{result: []*domain.Instructor{{ID: uuid.New(), Name: "Анна", BasePrice: 3000, IsActive: true}}}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/instructors?tag=sunset&min_price=1000&min_rating=4.5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sunset", svc.got.Tag)
	require.NotNil(t, svc.got.MinPrice)
	assert.Equal(t, int64(1000), *svc.got.MinPrice)
	assert.Nil(t, svc.got.MaxPrice)
	require.NotNil(t, svc.got.MinRating)
	assert.Equal(t, 4.5, *svc.got.MinRating)

	var body []handlers.InstructorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Анна", body[0].Name)
	assert.Equal(t, []string{}, body[0].Tags)
}

func TestHandle_EmptyListIsArray(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/instructors", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
		kind   string
	}{
		{"bad price", "/api/v1/instructors?min_price=abc", nil, http.StatusBadRequest, handlers.KindValidation},
		{"bad rating", "/api/v1/instructors?min_rating=x", nil, http.StatusBadRequest, handlers.KindValidation},
		{"service validation", "/api/v1/instructors", catalog.ErrInvalidInput, http.StatusBadRequest, handlers.KindValidation},
		{"internal", "/api/v1/instructors", errors.New("db down"), http.StatusInternalServerError, handlers.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)
		})
	}
}
