package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SUP-BookingService/pkg/validate"
)

// Service сервис каталога инструкторов и маршрутов
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListInstructors возвращает активных инструкторов по фильтру, по убыванию рейтинга
func (s *Service) ListInstructors(ctx context.Context, filter domain.InstructorFilter) ([]*domain.Instructor, error) {
	if err := validateFilter(filter); err != nil {
		s.logger.Warn("ListInstructors: validation failed: %v", err)
		return nil, err
	}

	filter.IncludeHidden = false
	instructors, err := s.repo.ListInstructors(ctx, filter)
	if err != nil {
		s.logger.Error("ListInstructors: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListInstructors - repository error: %v", ErrInternal, err)
	}

	return instructors, nil
}

// GetInstructor получает инструктора по ID, включая неактивных
func (s *Service) GetInstructor(ctx context.Context, id uuid.UUID) (*domain.Instructor, error) {
	instructor, err := s.repo.GetInstructor(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrInstructorNotFound) {
			s.logger.Warn("GetInstructor: instructor id=%s not found", id)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("GetInstructor: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetInstructor - repository error: %v", ErrInternal, err)
	}
	return instructor, nil
}

// ListRoutes возвращает все маршруты
func (s *Service) ListRoutes(ctx context.Context) ([]*domain.Route, error) {
	routes, err := s.repo.ListRoutes(ctx)
	if err != nil {
		s.logger.Error("ListRoutes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRoutes - repository error: %v", ErrInternal, err)
	}
	return routes, nil
}

// GetRoute получает маршрут по ID
func (s *Service) GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	route, err := s.repo.GetRoute(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRouteNotFound) {
			s.logger.Warn("GetRoute: route id=%s not found", id)
			return nil, ErrRouteNotFound
		}
		s.logger.Error("GetRoute: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetRoute - repository error: %v", ErrInternal, err)
	}
	return route, nil
}

// UpsertInstructor создает или обновляет инструктора (админка)
func (s *Service) UpsertInstructor(ctx context.Context, in *InstructorInput) (*domain.Instructor, error) {
	if err := validate.Struct(in); err != nil {
		s.logger.Warn("UpsertInstructor: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	instructor := in.toDomain()
	if instructor.ID == uuid.Nil {
		instructor.ID = uuid.New()
	}

	saved, err := s.repo.UpsertInstructor(ctx, instructor)
	if err != nil {
		s.logger.Error("UpsertInstructor: repository error for id=%s: %v", instructor.ID, err)
		return nil, fmt.Errorf("%w: UpsertInstructor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertInstructor: saved instructor id=%s", saved.ID)
	return saved, nil
}

// UpsertRoute создает или обновляет маршрут (админка)
func (s *Service) UpsertRoute(ctx context.Context, in *RouteInput) (*domain.Route, error) {
	if err := validate.Struct(in); err != nil {
		s.logger.Warn("UpsertRoute: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	route := in.toDomain()
	if route.ID == uuid.Nil {
		route.ID = uuid.New()
	}

	saved, err := s.repo.UpsertRoute(ctx, route)
	if err != nil {
		s.logger.Error("UpsertRoute: repository error for id=%s: %v", route.ID, err)
		return nil, fmt.Errorf("%w: UpsertRoute - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertRoute: saved route id=%s", saved.ID)
	return saved, nil
}

func validateFilter(f domain.InstructorFilter) error {
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("%w: min_price must be non-negative", ErrInvalidInput)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("%w: max_price must be non-negative", ErrInvalidInput)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("%w: min_price must not exceed max_price", ErrInvalidInput)
	}
	if f.MinRating != nil && (*f.MinRating < domain.MinRating || *f.MinRating > domain.MaxRating) {
		return fmt.Errorf("%w: min_rating must be between %.0f and %.0f", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	return nil
}
