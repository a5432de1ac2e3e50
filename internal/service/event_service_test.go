package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andesedu/eventos-api/internal/dto"
	"github.com/andesedu/eventos-api/internal/models"
	"github.com/andesedu/eventos-api/pkg/config"
	"github.com/andesedu/eventos-api/pkg/database"
	appErrors "github.com/andesedu/eventos-api/pkg/errors"
)

type eventRepoStub struct {
	events      []models.Event
	total       int
	err         error
	lastFilter  *models.EventFilter
	searchCalls int
	created     *models.Event
}

func (s *eventRepoStub) Search(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	s.searchCalls++
	captured := filter
	s.lastFilter = &captured
	return s.events, s.total, s.err
}

func (s *eventRepoStub) Count(ctx context.Context, rng models.DateRange) (int, error) {
	return s.total, s.err
}

func (s *eventRepoStub) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.events) == 0 {
		return nil, sql.ErrNoRows
	}
	return &s.events[0], nil
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.Event) error {
	if s.err != nil {
		return s.err
	}
	event.ID = "event-new"
	s.created = event
	return nil
}

type cacheStub struct {
	data     map[string][]byte
	patterns []string
}

func newCacheStub() *cacheStub {
	return &cacheStub{data: map[string][]byte{}}
}

func (s *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := s.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func (s *cacheStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.patterns = append(s.patterns, pattern)
	s.data = map[string][]byte{}
	return nil
}

func newEventService(repo *eventRepoStub, cache eventCache) *EventService {
	return NewEventService(repo, cache, nil, nil, nil, config.EventsConfig{CacheTTL: time.Minute, DefaultLimit: 10, MaxLimit: 100})
}

func intPtr(v int) *int { return &v }

func TestEventServiceSearchDefaults(t *testing.T) {
	repo := &eventRepoStub{events: []models.Event{{ID: "event-1"}}, total: 1}
	svc := newEventService(repo, nil)

	_, total, err := svc.Search(context.Background(), dto.EventSearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	require.NotNil(t, repo.lastFilter)
	assert.Nil(t, repo.lastFilter.Range)
	assert.True(t, repo.lastFilter.Paginate)
	assert.Equal(t, 10, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
}

func TestEventServiceSearchMonthBoundaries(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newEventService(repo, nil)

	_, _, err := svc.Search(context.Background(), dto.EventSearchParams{Month: intPtr(2), Year: intPtr(2024)})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	require.NotNil(t, repo.lastFilter.Range)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), repo.lastFilter.Range.Start)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC), repo.lastFilter.Range.End)
}

func TestEventServiceSearchYearOnly(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newEventService(repo, nil)

	_, _, err := svc.Search(context.Background(), dto.EventSearchParams{Year: intPtr(2023)})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.Range)
	assert.Equal(t, models.YearRange(2023), *repo.lastFilter.Range)
}

func TestEventServiceSearchRejectsInvalidMonth(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newEventService(repo, nil)

	_, _, err := svc.Search(context.Background(), dto.EventSearchParams{Month: intPtr(13)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.searchCalls)
}

func TestEventServiceSearchMonthRequiresMonth(t *testing.T) {
	svc := newEventService(&eventRepoStub{}, nil)

	_, _, err := svc.SearchMonth(context.Background(), dto.EventSearchParams{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceSearchServesCachedResult(t *testing.T) {
	repo := &eventRepoStub{events: []models.Event{{ID: "event-1", Name: "Acto"}}, total: 1}
	cache := newCacheStub()
	svc := newEventService(repo, cache)

	params := dto.EventSearchParams{Month: intPtr(5), Year: intPtr(2024)}

	_, _, err := svc.Search(context.Background(), params)
	require.NoError(t, err)

	events, total, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searchCalls)
	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, "event-1", events[0].ID)
}

func TestEventServiceSearchYearUnpaginated(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newEventService(repo, nil)

	_, _, err := svc.SearchYear(context.Background(), 2024)
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.False(t, repo.lastFilter.Paginate)
	require.NotNil(t, repo.lastFilter.Range)
	assert.Equal(t, models.YearRange(2024), *repo.lastFilter.Range)
}

func TestEventServiceSearchRangeRejectsInvertedRange(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newEventService(repo, nil)

	end := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := svc.SearchRange(context.Background(), end.AddDate(0, 0, 5), end)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.searchCalls)
}

func TestEventServiceGetNotFound(t *testing.T) {
	svc := newEventService(&eventRepoStub{}, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceCountMonth(t *testing.T) {
	svc := newEventService(&eventRepoStub{total: 7}, nil)

	total, err := svc.CountMonth(context.Background(), 6, intPtr(2024))
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestEventServiceCreateRejectsConflict(t *testing.T) {
	repo := &eventRepoStub{events: []models.Event{{
		ID:        "event-1",
		Name:      "Acto cívico",
		StartDate: hour(11),
		EndDate:   hour(13),
	}}, total: 1}
	svc := newEventService(repo, nil)

	_, err := svc.Create(context.Background(), dto.CreateEventRequest{
		Name:      "Reunión de padres",
		StartDate: hour(10),
		EndDate:   hour(12),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestEventServiceCreateRejectsInvertedDates(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newEventService(repo, nil)

	_, err := svc.Create(context.Background(), dto.CreateEventRequest{
		Name:      "Acto",
		StartDate: hour(12),
		EndDate:   hour(10),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.searchCalls)
}

func TestEventServiceCreateInvalidatesCache(t *testing.T) {
	repo := &eventRepoStub{}
	cache := newCacheStub()
	svc := newEventService(repo, cache)

	event, err := svc.Create(context.Background(), dto.CreateEventRequest{
		Name:      "Acto de fin de curso",
		StartDate: hour(10),
		EndDate:   hour(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "event-new", event.ID)
	require.NotNil(t, repo.created)
	assert.Equal(t, "Acto de fin de curso", repo.created.Name)
	require.Len(t, cache.patterns, 1)
	assert.Equal(t, "eventos:search:default:*", cache.patterns[0])
}

func TestEventServiceSearchCacheIsScopedPerInstance(t *testing.T) {
	repo := &eventRepoStub{events: []models.Event{{ID: "event-a", Name: "Acto campus A"}}, total: 1}
	cache := newCacheStub()
	svc := newEventService(repo, cache)

	params := dto.EventSearchParams{Month: intPtr(5), Year: intPtr(2024)}

	ctxA := database.WithInstance(context.Background(), "campus-a")
	_, _, err := svc.Search(ctxA, params)
	require.NoError(t, err)

	repo.events = []models.Event{{ID: "event-b", Name: "Acto campus B"}}
	ctxB := database.WithInstance(context.Background(), "campus-b")
	events, _, err := svc.Search(ctxB, params)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.searchCalls, "a different instance must not be served from the cache")
	require.Len(t, events, 1)
	assert.Equal(t, "event-b", events[0].ID)
}

func TestEventServiceCreateInvalidatesOnlyItsInstance(t *testing.T) {
	repo := &eventRepoStub{}
	cache := newCacheStub()
	svc := newEventService(repo, cache)

	ctx := database.WithInstance(context.Background(), "campus-a")
	_, err := svc.Create(ctx, dto.CreateEventRequest{
		Name:      "Acto",
		StartDate: hour(10),
		EndDate:   hour(12),
	})
	require.NoError(t, err)
	require.Len(t, cache.patterns, 1)
	assert.Equal(t, "eventos:search:campus-a:*", cache.patterns[0])
}
