package list_routes

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
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

type fakeService struct {
	routes []*domain.Route
	err    error
}

func (f *fakeService) ListRoutes(context.Context) ([]*domain.Route, error) {
	return f.routes, f.err
}

func TestHandle(t *testing.T) {
	route := &domain.Route{
		ID: uuid.New(), Title: "Река Кубань", BasePrice: 2500, DurationMinutes: 90,
		Difficulty: domain.DifficultyEasy, Location: domain.Location{Lat: 45.1, Lng: 37.3, Title: "Пирс"},
	}
	h := NewHandler(&fakeService{routes: []*domain.Route{route}}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/routes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []handlers.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "easy", body[0].Difficulty)
	assert.Equal(t, 45.1, body[0].Location.Lat)
}

func TestHandle_Error(t *testing.T) {
	h := NewHandler(&fakeService{err: errors.New("db down")}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/routes", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
