package models

import "time"

// Event represents a scheduled school occurrence. The id is the one canonical
// identifier; rows are keyed by the same string exposed on the wire.
type Event struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DateRange is an inclusive [Start, End] boundary pair derived per query.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// MonthRange covers a calendar month from the first instant of day 1 to the
// last millisecond of the final day. A zero year means the current year.
func MonthRange(month, year int) DateRange {
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return DateRange{Start: start, End: end}
}

// YearRange covers a full calendar year, Jan 1 through the last millisecond
// of Dec 31.
func YearRange(year int) DateRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	return DateRange{Start: start, End: end}
}

// Overlaps reports whether the stored [start, end] interval intersects the
// range. Bounds are inclusive, so intervals touching at an instant overlap.
func (r DateRange) Overlaps(start, end time.Time) bool {
	return !start.After(r.End) && !end.Before(r.Start)
}

// EventFilter narrows down event queries. A nil Range matches every event.
type EventFilter struct {
	Range    *DateRange
	Limit    int
	Offset   int
	Paginate bool
}
