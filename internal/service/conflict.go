package service

import "github.com/andesedu/eventos-api/internal/models"

// FindConflicts returns the subset of events whose stored interval overlaps
// the candidate range. Bounds are inclusive: events touching the candidate at
// exactly one instant conflict. Pure function, no I/O.
func FindConflicts(candidate models.DateRange, events []models.Event) []models.Event {
	var conflicts []models.Event
	for _, event := range events {
		if candidate.Overlaps(event.StartDate, event.EndDate) {
			conflicts = append(conflicts, event)
		}
	}
	return conflicts
}
