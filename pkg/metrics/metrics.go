package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	BookingAttemptsTotal *prometheus.CounterVec
	ReservationsTotal    *prometheus.CounterVec
	WeatherCallsTotal    *prometheus.CounterVec
	WeatherCacheTotal    *prometheus.CounterVec
}

// New создает и регистрирует метрики в переданном registerer
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		BookingAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_attempts_total",
			Help:        "Booking attempts by final state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		ReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_reservations_total",
			Help:        "Slot ledger operations by result",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),
		WeatherCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "weather_provider_calls_total",
			Help:        "Weather provider calls by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		WeatherCacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "weather_cache_lookups_total",
			Help:        "Weather cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingAttemptsTotal,
		m.ReservationsTotal,
		m.WeatherCallsTotal,
		m.WeatherCacheTotal,
	)

	return m
}

// ObserveBookingAttempt фиксирует финальное состояние попытки бронирования
func (m *Metrics) ObserveBookingAttempt(state string) {
	if m == nil {
		return
	}
	m.BookingAttemptsTotal.WithLabelValues(state).Inc()
}

// ObserveReservation фиксирует результат операции над слотом (reserve/release)
func (m *Metrics) ObserveReservation(operation, result string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveWeatherCall фиксирует результат обращения к погодному провайдеру
func (m *Metrics) ObserveWeatherCall(result string) {
	if m == nil {
		return
	}
	m.WeatherCallsTotal.WithLabelValues(result).Inc()
}

// ObserveWeatherCache фиксирует попадание/промах кэша погоды
func (m *Metrics) ObserveWeatherCache(result string) {
	if m == nil {
		return
	}
	m.WeatherCacheTotal.WithLabelValues(result).Inc()
}
