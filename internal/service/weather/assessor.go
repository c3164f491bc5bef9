package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/SUP-BookingService/internal/infra/storage/catalog"
)

// Assessor оценивает погоду для точки и времени и на плохой прогноз подбирает альтернативные слоты.
// Недоступность провайдера не считается ошибкой: возвращается наблюдение с Unknown = true.
type Assessor struct {
	provider     Provider
	routes       RouteRepository
	slots        SlotFinder
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewAssessor создает новый экземпляр оценщика погоды
func NewAssessor(provider Provider, routes RouteRepository, slots SlotFinder, cfg Config, logger Logger) *Assessor {
	return &Assessor{
		provider:     provider,
		routes:       routes,
		slots:        slots,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Assess возвращает оценку погоды. Весь расчет, включая подбор альтернатив, ограничен cfg.Timeout.
func (a *Assessor) Assess(ctx context.Context, req *Request) (*domain.WeatherObservation, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		a.logger.Warn("AssessWeather: validation failed: %v", err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	// 2. Определяем точку: координаты запроса, старт маршрута или точка по умолчанию
	location, err := a.resolveLocation(ctx, req)
	if err != nil {
		return nil, err
	}

	at := req.At.UTC()
	a.logger.Info("AssessWeather: lat=%.3f lng=%.3f at=%s", location.Lat, location.Lng, at.Format(time.RFC3339))

	// 3. Получаем прогноз. Ошибка провайдера дает наблюдение "unknown"
	reading, err := a.provider.Forecast(ctx, location.Lat, location.Lng, at)
	if err != nil {
		a.logger.Warn("AssessWeather: forecast unavailable, returning unknown observation: %v", err)
		return unknownObservation(location, at), nil
	}

	// 4. Оценка
	score := Score(reading)
	observation := &domain.WeatherObservation{
		Temperature:     reading.Temperature,
		WindSpeed:       reading.WindSpeed,
		Precipitation:   reading.Precipitation,
		CloudCover:      reading.CloudCover,
		ConditionsLevel: Level(score),
		Score:           score,
		Explanation:     Explain(reading),
		Location:        location,
		At:              at,
		SuggestedSlots:  []domain.SuggestedSlot{},
	}

	// 5. На плохой прогноз подбираем альтернативы
	if observation.ConditionsLevel == domain.ConditionsPoor {
		observation.SuggestedSlots = a.suggest(ctx, req, location, at, score)
	}

	a.logger.Info("AssessWeather: score=%d level=%s suggestions=%d",
		observation.Score, observation.ConditionsLevel, len(observation.SuggestedSlots))

	return observation, nil
}

func (a *Assessor) resolveLocation(ctx context.Context, req *Request) (domain.Location, error) {
	if req.Lat != nil && req.Lng != nil {
		return domain.Location{Lat: *req.Lat, Lng: *req.Lng}, nil
	}

	if req.RouteID != nil {
		route, err := a.routes.GetRoute(ctx, *req.RouteID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrRouteNotFound) {
				a.logger.Warn("AssessWeather: route id=%s not found", *req.RouteID)
				return domain.Location{}, ErrRouteNotFound
			}
			a.logger.Error("AssessWeather: failed to get route id=%s: %v", *req.RouteID, err)
			return domain.Location{}, fmt.Errorf("%w: failed to get route: %v", ErrInternal, err)
		}
		return route.Location, nil
	}

	return domain.Location{Lat: a.cfg.DefaultLat, Lng: a.cfg.DefaultLng}, nil
}

// suggest перебирает ограниченный список кандидатов явным циклом.
// Кандидат попадает в ответ, только если его оценка строго выше текущей.
func (a *Assessor) suggest(ctx context.Context, req *Request, location domain.Location, at time.Time, current int) []domain.SuggestedSlot {
	window := time.Duration(a.cfg.LookaheadDays) * 24 * time.Hour
	from := at.Add(-window)
	if now := a.timeProvider.Now().UTC(); from.Before(now) {
		from = now
	}

	candidates, err := a.slots.ListCandidates(ctx, domain.CandidateFilter{
		InstructorID: req.InstructorID,
		RouteID:      req.RouteID,
		From:         from,
		To:           at.Add(window),
		Limit:        a.cfg.MaxCandidates,
	})
	if err != nil {
		a.logger.Warn("AssessWeather: failed to list candidate slots: %v", err)
		return []domain.SuggestedSlot{}
	}
	if len(candidates) > a.cfg.MaxCandidates {
		candidates = candidates[:a.cfg.MaxCandidates]
	}

	locations := map[uuid.UUID]domain.Location{}
	suggestions := make([]domain.SuggestedSlot, 0, len(candidates))

	for _, slot := range candidates {
		if ctx.Err() != nil {
			a.logger.Warn("AssessWeather: suggestion search stopped after timeout, %d candidates scored", len(suggestions))
			break
		}
		if !slot.IsBookable() {
			continue
		}

		point := a.candidateLocation(ctx, slot, location, locations)
		reading, err := a.provider.Forecast(ctx, point.Lat, point.Lng, slot.StartAt)
		if err != nil {
			continue
		}

		score := Score(reading)
		if score <= current {
			continue
		}
		suggestions = append(suggestions, domain.SuggestedSlot{
			Slot:            *slot,
			Score:           score,
			ConditionsLevel: Level(score),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		di, dj := distance(suggestions[i].Slot.StartAt, at), distance(suggestions[j].Slot.StartAt, at)
		if di != dj {
			return di < dj
		}
		return suggestions[i].Slot.StartAt.Before(suggestions[j].Slot.StartAt)
	})

	if len(suggestions) > a.cfg.MaxSuggestions {
		suggestions = suggestions[:a.cfg.MaxSuggestions]
	}
	return suggestions
}

// candidateLocation точка старта маршрута кандидата; при ошибке используется точка запроса
func (a *Assessor) candidateLocation(ctx context.Context, slot *domain.Slot, fallback domain.Location, known map[uuid.UUID]domain.Location) domain.Location {
	if location, ok := known[slot.RouteID]; ok {
		return location
	}

	location := fallback
	if route, err := a.routes.GetRoute(ctx, slot.RouteID); err == nil {
		location = route.Location
	}
	known[slot.RouteID] = location
	return location
}

func unknownObservation(location domain.Location, at time.Time) *domain.WeatherObservation {
	return &domain.WeatherObservation{
		ConditionsLevel: domain.ConditionsModerate,
		Score:           domain.UnknownWeatherScore,
		Explanation:     explainUnknown,
		Unknown:         true,
		Location:        location,
		At:              at,
		SuggestedSlots:  []domain.SuggestedSlot{},
	}
}

func distance(a, b time.Time) time.Duration {
	return time.Duration(math.Abs(float64(a.Sub(b))))
}
