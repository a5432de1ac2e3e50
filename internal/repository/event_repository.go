package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andesedu/eventos-api/internal/models"
	"github.com/andesedu/eventos-api/pkg/database"
)

// overlapClause matches any event whose [start_date, end_date] interval
// intersects the requested range: it starts inside the range, ends inside
// the range, or spans the whole range. Bounds are inclusive.
const overlapClause = `(start_date BETWEEN $1 AND $2 OR end_date BETWEEN $1 AND $2 OR (start_date <= $1 AND end_date >= $2))`

// EventRepository reads and writes events against the per-request database
// instance resolved from the context.
type EventRepository struct {
	dbs *database.Registry
}

// NewEventRepository constructs an event repository.
func NewEventRepository(dbs *database.Registry) *EventRepository {
	return &EventRepository{dbs: dbs}
}

// Search counts and fetches events matching the filter, sorted by start date
// ascending. Pagination applies only when the filter requests it.
func (r *EventRepository) Search(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	db := r.dbs.Resolve(ctx)

	where := "1=1"
	args := []interface{}{}
	if filter.Range != nil {
		where = overlapClause
		args = append(args, filter.Range.Start, filter.Range.End)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events WHERE %s", where)
	var total int
	if err := db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := fmt.Sprintf("SELECT id, name, start_date, end_date FROM events WHERE %s ORDER BY start_date ASC", where)
	if filter.Paginate {
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, filter.Limit, filter.Offset)
	}

	var events []models.Event
	if err := db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select events: %w", err)
	}
	return events, total, nil
}

// Count returns the number of events overlapping the range.
func (r *EventRepository) Count(ctx context.Context, rng models.DateRange) (int, error) {
	db := r.dbs.Resolve(ctx)

	var total int
	query := fmt.Sprintf("SELECT COUNT(*) FROM events WHERE %s", overlapClause)
	if err := db.GetContext(ctx, &total, query, rng.Start, rng.End); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return total, nil
}

// GetByID fetches a single event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	db := r.dbs.Resolve(ctx)

	const query = `SELECT id, name, start_date, end_date FROM events WHERE id = $1`
	var event models.Event
	if err := db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	db := r.dbs.Resolve(ctx)

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	const query = `INSERT INTO events (id, name, start_date, end_date, created_at, updated_at)
VALUES (:id, :name, :start_date, :end_date, :created_at, :updated_at)`
	if _, err := db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}
