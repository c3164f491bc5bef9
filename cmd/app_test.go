package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/config"
	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

type calmProvider struct{}

func (calmProvider) Forecast(_ context.Context, _, _ float64, at time.Time) (*domain.WeatherReading, error) {
	return &domain.WeatherReading{Temperature: 24, WindSpeed: 2, At: at}, nil
}

type testApp struct {
	handler http.Handler
	now     time.Time
}

func newTestApp(t *testing.T, admin bool) *testApp {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Driver = config.DriverMemory
	cfg.Admin.Enabled = admin
	log := logger.NewNop()

	m, reg := newMetrics(cfg)
	store, err := openStorage(context.Background(), cfg, m, log)
	require.NoError(t, err)
	t.Cleanup(store.close)

	svc := newServices(cfg, store, calmProvider{}, m, log)
	now := time.Now().UTC()
	require.NoError(t, seedDemo(context.Background(), svc.catalog, svc.ledger, now))

	return &testApp{handler: newRouter(cfg, svc, store, m, reg, log), now: now}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func (a *testApp) tomorrowSlots(t *testing.T) []handlers.SlotResponse {
	t.Helper()
	date := a.now.AddDate(0, 0, 1).Format(domain.DateFormat)
	rec := a.do(t, http.MethodGet, "/api/v1/availability?date="+date, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var slots []handlers.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	return slots
}

func TestApp_BookAndCancel(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/instructors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var instructors []handlers.InstructorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &instructors))
	require.Len(t, instructors, 2)
	assert.Equal(t, seedInstructorCalm, instructors[0].ID)

	slots := app.tomorrowSlots(t)
	require.Len(t, slots, 1)
	assert.Equal(t, seedCapacity, slots[0].Remaining)

	rec = app.do(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"instructor_id": seedInstructorCalm,
		"route_id":      seedRouteRiver,
		"slot_id":       slots[0].ID,
		"customer_name": "Иван",
		"phone":         "+7 999 123-45-67",
		"participants":  2,
		"options":       map[string]bool{"photo": true},
		"price_total":   12400,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var booking struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		PriceTotal int64  `json:"price_total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))
	assert.Equal(t, "confirmed", booking.Status)
	assert.Equal(t, int64(12400), booking.PriceTotal)
	assert.Equal(t, seedCapacity-2, app.tomorrowSlots(t)[0].Remaining)

	rec = app.do(t, http.MethodGet, "/api/v1/bookings/"+booking.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPatch, "/api/v1/bookings/"+booking.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, seedCapacity, app.tomorrowSlots(t)[0].Remaining)

	rec = app.do(t, http.MethodPatch, "/api/v1/bookings/"+booking.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestApp_PriceMismatchAndSlotFull(t *testing.T) {
	app := newTestApp(t, false)
	slot := app.tomorrowSlots(t)[0]

	book := func(participants int, price int64) *httptest.ResponseRecorder {
		return app.do(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
			"instructor_id": seedInstructorCalm,
			"route_id":      seedRouteRiver,
			"slot_id":       slot.ID,
			"customer_name": "Иван",
			"phone":         "+79991234567",
			"participants":  participants,
			"price_total":   price,
		})
	}

	rec := book(1, 100)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"price_mismatch"`)

	rec = book(5, 5*5500)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = book(2, 2*5500)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"slot_full"`)
}

func TestApp_Weather(t *testing.T) {
	app := newTestApp(t, false)

	at := app.now.AddDate(0, 0, 1).Truncate(time.Hour).Format(time.RFC3339)
	rec := app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/weather?route_id=%s&datetime=%s", seedRouteRiver, at), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"conditions_level":"Good"`)
	assert.Contains(t, rec.Body.String(), `"suggested_slots":[]`)
}

func TestApp_AdminRoutes(t *testing.T) {
	rec := newTestApp(t, false).do(t, http.MethodPut, "/api/v1/admin/routes", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	app := newTestApp(t, true)
	rec = app.do(t, http.MethodPut, "/api/v1/admin/routes", map[string]interface{}{
		"title":            "Море",
		"base_price":       3500,
		"duration_minutes": 120,
		"difficulty":       "medium",
		"location":         map[string]float64{"lat": 44.9, "lng": 37.3},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/v1/routes", nil)
	var routes []handlers.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &routes))
	assert.Len(t, routes, 2)
}
