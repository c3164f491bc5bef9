package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	"github.com/m04kA/SUP-BookingService/internal/infra/storage/catalog"
)

// CatalogRepository инструкторы и маршруты в памяти
type CatalogRepository struct {
	store *Store
}

func (r *CatalogRepository) ListInstructors(_ context.Context, filter domain.InstructorFilter) ([]*domain.Instructor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Instructor, 0, len(r.store.instructors))
	for _, i := range r.store.instructors {
		instructor := copyInstructor(i)
		if filter.Matches(instructor) {
			result = append(result, instructor)
		}
	}

	sort.Slice(result, func(a, b int) bool {
		if result[a].Rating != result[b].Rating {
			return result[a].Rating > result[b].Rating
		}
		return result[a].Name < result[b].Name
	})

	return result, nil
}

func (r *CatalogRepository) GetInstructor(_ context.Context, id uuid.UUID) (*domain.Instructor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i, ok := r.store.instructors[id]
	if !ok {
		return nil, catalog.ErrInstructorNotFound
	}
	return copyInstructor(i), nil
}

func (r *CatalogRepository) UpsertInstructor(_ context.Context, instructor *domain.Instructor) (*domain.Instructor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	instructor.CreatedAt = now
	if existing, ok := r.store.instructors[instructor.ID]; ok {
		instructor.CreatedAt = existing.CreatedAt
	}
	instructor.UpdatedAt = now

	r.store.instructors[instructor.ID] = *copyInstructor(*instructor)
	return instructor, nil
}

func (r *CatalogRepository) ListRoutes(_ context.Context) ([]*domain.Route, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Route, 0, len(r.store.routes))
	for _, route := range r.store.routes {
		route := route
		result = append(result, &route)
	}

	sort.Slice(result, func(a, b int) bool {
		return result[a].Title < result[b].Title
	})

	return result, nil
}

func (r *CatalogRepository) GetRoute(_ context.Context, id uuid.UUID) (*domain.Route, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	route, ok := r.store.routes[id]
	if !ok {
		return nil, catalog.ErrRouteNotFound
	}
	return &route, nil
}

func (r *CatalogRepository) UpsertRoute(_ context.Context, route *domain.Route) (*domain.Route, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	route.CreatedAt = now
	if existing, ok := r.store.routes[route.ID]; ok {
		route.CreatedAt = existing.CreatedAt
	}
	route.UpdatedAt = now

	r.store.routes[route.ID] = *route
	return route, nil
}

func copyInstructor(i domain.Instructor) *domain.Instructor {
	i.Tags = append([]string(nil), i.Tags...)
	i.Languages = append([]string(nil), i.Languages...)
	return &i
}
