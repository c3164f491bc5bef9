package upsert_route

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

func put(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/admin/routes", bytes.NewBufferString(body)))
	return rec
}

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	h := NewHandler(catalog.NewService(store.Catalog(), logger.NewNop()), logger.NewNop())

	rec := put(h, `{"title":"Озеро","base_price":2500,"duration_minutes":90,"difficulty":"easy",
		"location":{"lat":45.09,"lng":37.27,"title":"Пирс"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var route handlers.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &route))
	assert.NotEqual(t, uuid.Nil, route.ID)
	assert.Equal(t, "Пирс", route.Location.Title)

	stored, err := store.Catalog().GetRoute(context.Background(), route.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), stored.BasePrice)
}

func TestHandle_Invalid(t *testing.T) {
	h := NewHandler(catalog.NewService(memory.NewStore().Catalog(), logger.NewNop()), logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, put(h, `{"title":"","duration_minutes":90,"difficulty":"easy"}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(h, `{"title":"Река","duration_minutes":90,"difficulty":"extreme"}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(h, `{"title":"Река","duration_minutes":90,"difficulty":"easy","location":{"lat":120}}`).Code)
}
