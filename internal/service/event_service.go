package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/andesedu/eventos-api/internal/dto"
	"github.com/andesedu/eventos-api/internal/models"
	"github.com/andesedu/eventos-api/pkg/config"
	"github.com/andesedu/eventos-api/pkg/database"
	appErrors "github.com/andesedu/eventos-api/pkg/errors"
)

const (
	minYear = 1900
	maxYear = 2100
)

type eventRepository interface {
	Search(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	Count(ctx context.Context, rng models.DateRange) (int, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
}

type eventCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// EventService answers event queries and owns the write-time invariants.
type EventService struct {
	repo      eventRepository
	cache     eventCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.EventsConfig
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, cache eventCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg config.EventsConfig) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	return &EventService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

type cachedSearch struct {
	Events []models.Event `json:"events"`
	Total  int            `json:"total"`
}

// Search is the unified paginated query. A month narrows results to that
// month (current year unless given), a bare year covers the whole year, and
// no filter at all returns every event.
func (s *EventService) Search(ctx context.Context, params dto.EventSearchParams) ([]models.Event, int, error) {
	if err := validateMonthYear(params.Month, params.Year); err != nil {
		return nil, 0, err
	}

	filter := models.EventFilter{
		Limit:    params.Limit,
		Offset:   params.Offset,
		Paginate: true,
	}
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.DefaultLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	switch {
	case params.Month != nil:
		year := 0
		if params.Year != nil {
			year = *params.Year
		}
		rng := models.MonthRange(*params.Month, year)
		filter.Range = &rng
	case params.Year != nil:
		rng := models.YearRange(*params.Year)
		filter.Range = &rng
	}

	key := searchCacheKey(cacheInstance(ctx), params.Month, params.Year, filter.Limit, filter.Offset)
	if s.cache != nil {
		start := time.Now()
		var cached cachedSearch
		err := s.cache.Get(ctx, key, &cached)
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(err == nil, time.Since(start))
		}
		if err == nil {
			return cached.Events, cached.Total, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("event search cache lookup failed", zap.Error(err))
		}
	}

	queryStart := time.Now()
	events, total, err := s.repo.Search(ctx, filter)
	s.observeQuery("events_search", queryStart)
	if err != nil {
		s.logger.Error("event search failed", zap.Error(err))
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search events")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, cachedSearch{Events: events, Total: total}, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("event search cache store failed", zap.Error(err))
		}
	}

	return events, total, nil
}

// SearchMonth requires a month and otherwise rides the unified path.
func (s *EventService) SearchMonth(ctx context.Context, params dto.EventSearchParams) ([]models.Event, int, error) {
	if params.Month == nil {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "month is required")
	}
	return s.Search(ctx, params)
}

// SearchYear returns every event of the given year, unpaginated.
func (s *EventService) SearchYear(ctx context.Context, year int) ([]models.Event, int, error) {
	if year < minYear || year > maxYear {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("year must be between %d and %d", minYear, maxYear))
	}
	rng := models.YearRange(year)
	return s.searchRange(ctx, rng)
}

// SearchRange returns every event overlapping the explicit range, unpaginated.
// The boundaries are used as-is.
func (s *EventService) SearchRange(ctx context.Context, start, end time.Time) ([]models.Event, int, error) {
	if end.Before(start) {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "range end must be on or after range start")
	}
	return s.searchRange(ctx, models.DateRange{Start: start, End: end})
}

func (s *EventService) searchRange(ctx context.Context, rng models.DateRange) ([]models.Event, int, error) {
	queryStart := time.Now()
	events, total, err := s.repo.Search(ctx, models.EventFilter{Range: &rng})
	s.observeQuery("events_search", queryStart)
	if err != nil {
		s.logger.Error("event range search failed", zap.Error(err))
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search events")
	}
	return events, total, nil
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		s.logger.Error("event lookup failed", zap.Error(err), zap.String("event_id", id))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get event")
	}
	return event, nil
}

// CountMonth returns the number of events overlapping the month.
func (s *EventService) CountMonth(ctx context.Context, month int, year *int) (int, error) {
	if err := validateMonthYear(&month, year); err != nil {
		return 0, err
	}
	y := 0
	if year != nil {
		y = *year
	}
	queryStart := time.Now()
	total, err := s.repo.Count(ctx, models.MonthRange(month, y))
	s.observeQuery("events_count", queryStart)
	if err != nil {
		s.logger.Error("event count failed", zap.Error(err))
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count events")
	}
	return total, nil
}

// Create persists a new event. Start must not be after end, and the candidate
// interval must not overlap any existing event.
func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Fecha_Conclusion must be on or after Fecha_Inicio")
	}

	candidate := models.DateRange{Start: req.StartDate, End: req.EndDate}
	existing, _, err := s.repo.Search(ctx, models.EventFilter{Range: &candidate})
	if err != nil {
		s.logger.Error("conflict window fetch failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check for conflicts")
	}
	if conflicts := FindConflicts(candidate, existing); len(conflicts) > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("event overlaps %q", conflicts[0].Name))
	}

	event := &models.Event{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	queryStart := time.Now()
	err = s.repo.Create(ctx, event)
	s.observeQuery("events_insert", queryStart)
	if err != nil {
		s.logger.Error("event create failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "eventos:search:"+cacheInstance(ctx)+":*"); err != nil {
			s.logger.Warn("event cache invalidation failed", zap.Error(err))
		}
	}

	return event, nil
}

func (s *EventService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

func validateMonthYear(month, year *int) error {
	if month != nil && (*month < 1 || *month > 12) {
		return appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
	}
	if year != nil && (*year < minYear || *year > maxYear) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("year must be between %d and %d", minYear, maxYear))
	}
	return nil
}

// cacheInstance names the database instance a request resolved to. Cached
// search results are scoped per instance so campuses never see each other's
// entries.
func cacheInstance(ctx context.Context) string {
	if name := database.InstanceFromContext(ctx); name != "" {
		return name
	}
	return "default"
}

func searchCacheKey(instance string, month, year *int, limit, offset int) string {
	m, y := 0, 0
	if month != nil {
		m = *month
	}
	if year != nil {
		y = *year
	}
	return fmt.Sprintf("eventos:search:%s:m%d:y%d:l%d:o%d", instance, m, y, limit, offset)
}
