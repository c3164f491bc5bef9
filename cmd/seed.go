package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/m04kA/SUP-BookingService/internal/config"
	"github.com/m04kA/SUP-BookingService/internal/domain"
	catalogService "github.com/m04kA/SUP-BookingService/internal/service/catalog"
	"github.com/m04kA/SUP-BookingService/internal/service/ledger"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

// Демо-данные
const (
	seedDays        = 7
	seedSlotHour    = 9
	seedSlotMinutes = 90
	seedCapacity    = 6
)

// Фиксированные ID, чтобы повторный seed обновлял каталог, а не дублировал его
var (
	seedInstructorCalm  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seedInstructorSport = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	seedRouteRiver      = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
)

type seedCatalog interface {
	UpsertInstructor(ctx context.Context, in *catalogService.InstructorInput) (*domain.Instructor, error)
	UpsertRoute(ctx context.Context, in *catalogService.RouteInput) (*domain.Route, error)
}

type seedLedger interface {
	BulkCreate(ctx context.Context, items []ledger.NewSlot) ([]*domain.Slot, error)
}

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog and a week of slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Close()

			ctx := cmd.Context()
			store, err := openStorage(ctx, cfg, nil, log)
			if err != nil {
				return err
			}
			defer store.close()

			catalogSvc := catalogService.NewService(store.catalog, log)
			ledgerSvc := ledger.NewService(store.slots, nil, log)

			if err := seedDemo(ctx, catalogSvc, ledgerSvc, time.Now().UTC()); err != nil {
				return err
			}
			log.Info("Seed completed: 2 instructors, 1 route, %d slots", seedDays)
			return nil
		},
	}
}

// seedDemo два инструктора, маршрут и неделя утренних слотов первого инструктора начиная с сегодняшнего дня
func seedDemo(ctx context.Context, catalog seedCatalog, slots seedLedger, now time.Time) error {
	instructors := []*catalogService.InstructorInput{
		{
			ID:              seedInstructorCalm,
			Name:            "Алексей Морев",
			PhotoURL:        "https://images.unsplash.com/photo-1500648767791-00dcc994a43e",
			Bio:             "Спокойные прогулки для новичков и семей.",
			BasePrice:       3000,
			Rating:          4.9,
			ReviewsCount:    132,
			ExperienceYears: 7,
			Tags:            []string{"новички", "дети", "закат"},
			Languages:       []string{"RU", "EN"},
			IsActive:        true,
		},
		{
			ID:              seedInstructorSport,
			Name:            "Мария Волна",
			PhotoURL:        "https://images.unsplash.com/photo-1494790108377-be9c29b29330",
			Bio:             "Тренировки и SUP-фитнес на реке.",
			BasePrice:       3200,
			Rating:          4.8,
			ReviewsCount:    96,
			ExperienceYears: 5,
			Tags:            []string{"спорт", "новички"},
			Languages:       []string{"RU"},
			IsActive:        true,
		},
	}
	for _, in := range instructors {
		if _, err := catalog.UpsertInstructor(ctx, in); err != nil {
			return fmt.Errorf("seed instructor %s: %w", in.Name, err)
		}
	}

	route := &catalogService.RouteInput{
		ID:              seedRouteRiver,
		Title:           "Река у Анапы, спокойная вода",
		Description:     "Идеально для первого SUP",
		BasePrice:       2500,
		DurationMinutes: seedSlotMinutes,
		Difficulty:      string(domain.DifficultyEasy),
		Lat:             45.092,
		Lng:             37.268,
		LocationTitle:   "Старт: река у Анапы",
	}
	if _, err := catalog.UpsertRoute(ctx, route); err != nil {
		return fmt.Errorf("seed route: %w", err)
	}

	items := make([]ledger.NewSlot, 0, seedDays)
	for d := 0; d < seedDays; d++ {
		start := time.Date(now.Year(), now.Month(), now.Day()+d, seedSlotHour, 0, 0, 0, time.UTC)
		items = append(items, ledger.NewSlot{
			InstructorID: seedInstructorCalm,
			RouteID:      seedRouteRiver,
			StartAt:      start,
			EndAt:        start.Add(seedSlotMinutes * time.Minute),
			Capacity:     seedCapacity,
		})
	}
	if _, err := slots.BulkCreate(ctx, items); err != nil {
		return fmt.Errorf("seed slots: %w", err)
	}

	return nil
}
