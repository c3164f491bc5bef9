package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	bulkCreateSlotsHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/bulk_create_slots"
	cancelBookingHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/get_booking"
	getInstructorHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/get_instructor"
	getWeatherHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/get_weather"
	listInstructorsHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/list_instructors"
	listRoutesHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/list_routes"
	updateBookingStatusHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/update_booking_status"
	upsertInstructorHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/upsert_instructor"
	upsertRouteHandler "github.com/m04kA/SUP-BookingService/internal/api/handlers/upsert_route"
	"github.com/m04kA/SUP-BookingService/internal/api/middleware"
	"github.com/m04kA/SUP-BookingService/internal/config"
	weatherCache "github.com/m04kA/SUP-BookingService/internal/infra/cache/weather"
	"github.com/m04kA/SUP-BookingService/internal/integrations/openmeteo"
	bookingsService "github.com/m04kA/SUP-BookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SUP-BookingService/internal/service/catalog"
	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
	"github.com/m04kA/SUP-BookingService/internal/service/pricing"
	"github.com/m04kA/SUP-BookingService/internal/service/weather"
	createBookingUC "github.com/m04kA/SUP-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SUP-BookingService/internal/usecase/get_availability"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
	"github.com/m04kA/SUP-BookingService/pkg/metrics"
)

// services собранные сервисы и use cases
type services struct {
	catalog         *catalogService.Service
	ledger          *ledger.Service
	bookings        *bookingsService.Service
	assessor        *weather.Assessor
	createBooking   *createBookingUC.UseCase
	getAvailability *getAvailabilityUC.UseCase
}

// newMetrics создает метрики в отдельном registry. Возвращает nil, если метрики выключены.
func newMetrics(cfg *config.Config) (*metrics.Metrics, *prometheus.Registry) {
	if !cfg.Metrics.Enabled {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New(cfg.Metrics.ServiceName, reg), reg
}

// newWeatherProvider клиент прогнозов с кэшем: Redis, если включен, иначе в памяти процесса
func newWeatherProvider(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (weather.Provider, func()) {
	client := openmeteo.NewClient(
		cfg.Weather.ForecastURL,
		time.Duration(cfg.Weather.TimeoutSeconds)*time.Second,
		m,
		log,
	)
	ttl := time.Duration(cfg.Weather.CacheTTLMinutes) * time.Minute

	if !cfg.Redis.Enabled {
		log.Info("Weather cache: in-memory (ttl=%s)", ttl)
		return weatherCache.NewCachedProvider(client, weatherCache.NewMemoryCache(), ttl, m, log), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		// Кэш необязателен: ошибки Redis логируются и запрос уходит к провайдеру
		log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
	} else {
		log.Info("Weather cache: redis at %s (ttl=%s)", cfg.Redis.Addr, ttl)
	}

	return weatherCache.NewCachedProvider(client, weatherCache.NewRedisCache(rdb), ttl, m, log), func() {
		_ = rdb.Close()
	}
}

func newServices(cfg *config.Config, store *storage, provider weather.Provider, m *metrics.Metrics, log *logger.Logger) *services {
	catalogSvc := catalogService.NewService(store.catalog, log)
	ledgerSvc := ledger.NewService(store.slots, m, log)

	pricingEngine := pricing.NewEngine(pricing.OptionPrices{
		Photo:  cfg.Pricing.PhotoPrice,
		Drybag: cfg.Pricing.DrybagPrice,
		Vest:   cfg.Pricing.VestPrice,
	})

	assessor := weather.NewAssessor(provider, store.catalog, ledgerSvc, weather.Config{
		Timeout:        time.Duration(cfg.Weather.TimeoutSeconds) * time.Second,
		DefaultLat:     cfg.Weather.DefaultLat,
		DefaultLng:     cfg.Weather.DefaultLng,
		LookaheadDays:  cfg.Weather.LookaheadDays,
		MaxCandidates:  cfg.Weather.MaxCandidates,
		MaxSuggestions: cfg.Weather.MaxSuggestions,
	}, log)

	return &services{
		catalog:  catalogSvc,
		ledger:   ledgerSvc,
		bookings: bookingsService.NewService(store.bookings, ledgerSvc, store.tx, log),
		assessor: assessor,
		createBooking: createBookingUC.NewUseCase(
			store.catalog,
			ledgerSvc,
			store.bookings,
			pricingEngine,
			store.tx,
			m,
			createBookingUC.Config{
				PersistAttempts:     cfg.Booking.PersistAttempts,
				CompensationTimeout: time.Duration(cfg.Booking.CompensationTimeoutSeconds) * time.Second,
			},
			log,
		),
		getAvailability: getAvailabilityUC.NewUseCase(ledgerSvc, log),
	}
}

// newRouter собирает HTTP роутер
func newRouter(cfg *config.Config, svc *services, store *storage, m *metrics.Metrics, reg *prometheus.Registry, log *logger.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if m != nil {
		r.Use(middleware.MetricsMiddleware(m))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.ping(r.Context()); err != nil {
			log.Error("GET /health - Storage is unavailable: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Каталог
	api.HandleFunc("/instructors", listInstructorsHandler.NewHandler(svc.catalog, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/instructors/{id}", getInstructorHandler.NewHandler(svc.catalog, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/routes", listRoutesHandler.NewHandler(svc.catalog, log).Handle).Methods(http.MethodGet)

	// Слоты и погода
	api.HandleFunc("/availability", getAvailabilityHandler.NewHandler(svc.getAvailability, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/weather", getWeatherHandler.NewHandler(svc.assessor, log).Handle).Methods(http.MethodGet)

	// Бронирования
	api.HandleFunc("/bookings", createBookingHandler.NewHandler(svc.createBooking, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", getBookingHandler.NewHandler(svc.bookings, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel", cancelBookingHandler.NewHandler(svc.bookings, log).Handle).Methods(http.MethodPatch)

	if cfg.Admin.Enabled {
		admin := api.PathPrefix("/admin").Subrouter()
		admin.HandleFunc("/instructors", upsertInstructorHandler.NewHandler(svc.catalog, log).Handle).Methods(http.MethodPut)
		admin.HandleFunc("/routes", upsertRouteHandler.NewHandler(svc.catalog, log).Handle).Methods(http.MethodPut)
		admin.HandleFunc("/slots/bulk", bulkCreateSlotsHandler.NewHandler(svc.ledger, log).Handle).Methods(http.MethodPost)
		admin.HandleFunc("/bookings/{id}/status", updateBookingStatusHandler.NewHandler(svc.bookings, log).Handle).Methods(http.MethodPatch)
		log.Warn("Admin endpoints are enabled without authentication")
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", createBookingHandler.HeaderIdempotencyKey},
		MaxAge:         cfg.CORS.MaxAge,
	})(r)
}
