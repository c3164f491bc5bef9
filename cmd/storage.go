package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SUP-BookingService/internal/config"
	bookingRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/memory"
	slotRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/slot"
	bookingsService "github.com/m04kA/SUP-BookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SUP-BookingService/internal/service/catalog"
	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
	createBookingUC "github.com/m04kA/SUP-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/SUP-BookingService/migrations"
	"github.com/m04kA/SUP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
	"github.com/m04kA/SUP-BookingService/pkg/metrics"
	"github.com/m04kA/SUP-BookingService/pkg/txmanager"
)

// bookingStore репозиторий бронирований для сервиса и оркестратора
type bookingStore interface {
	bookingsService.BookingRepository
	createBookingUC.BookingRepository
}

// storage набор репозиториев выбранного драйвера
type storage struct {
	catalog  catalogService.CatalogRepository
	slots    ledger.SlotRepository
	bookings bookingStore
	tx       bookingsService.TransactionManager

	ping  func(ctx context.Context) error
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		log.Info("Using in-memory storage")
		return &storage{
			catalog:  store.Catalog(),
			slots:    store.Slots(),
			bookings: store.Bookings(),
			tx:       store.TxManager(),
			ping:     func(context.Context) error { return nil },
			close:    func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Run(cfg.Database.URL(), migrations.ActionUp, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	stopCh := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Database.DBName, stopCh)

	return &storage{
		catalog:  catalogRepo.NewRepository(wrapped),
		slots:    slotRepo.NewRepository(wrapped),
		bookings: bookingRepo.NewRepository(wrapped),
		tx:       txmanager.NewTransactionManager(wrapped),
		ping:     db.PingContext,
		close: func() {
			close(stopCh)
			_ = db.Close()
		},
	}, nil
}
