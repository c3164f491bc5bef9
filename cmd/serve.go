package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SUP-BookingService/internal/config"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

func newServeCmd(configPath *string) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*configPath, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load demo catalog and slots on startup (always on for the memory driver)")

	return cmd
}

func serve(configPath string, seed bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SUP-BookingService...")
	log.Info("Configuration loaded from %s (driver=%s)", configPath, cfg.Database.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, reg := newMetrics(cfg)

	store, err := openStorage(ctx, cfg, m, log)
	if err != nil {
		return err
	}
	defer store.close()

	provider, closeProvider := newWeatherProvider(ctx, cfg, m, log)
	defer closeProvider()

	svc := newServices(cfg, store, provider, m, log)

	if seed || cfg.Database.Driver == config.DriverMemory {
		if err := seedDemo(ctx, svc.catalog, svc.ledger, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		log.Info("Demo catalog loaded")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg, svc, store, m, reg, log),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
