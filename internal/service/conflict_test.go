package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andesedu/eventos-api/internal/models"
)

func hour(h int) time.Time {
	return time.Date(2024, time.June, 10, h, 0, 0, 0, time.UTC)
}

func TestFindConflictsOverlapping(t *testing.T) {
	candidate := models.DateRange{Start: hour(10), End: hour(12)}
	stored := []models.Event{{ID: "event-1", Name: "Reunión", StartDate: hour(11), EndDate: hour(13)}}

	conflicts := FindConflicts(candidate, stored)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "event-1", conflicts[0].ID)
}

func TestFindConflictsTouchingBoundary(t *testing.T) {
	candidate := models.DateRange{Start: hour(10), End: hour(12)}
	stored := []models.Event{{ID: "event-2", StartDate: hour(12), EndDate: hour(13)}}

	conflicts := FindConflicts(candidate, stored)

	require.Len(t, conflicts, 1)
}

func TestFindConflictsDisjoint(t *testing.T) {
	candidate := models.DateRange{Start: hour(10), End: hour(12)}
	stored := []models.Event{{ID: "event-3", StartDate: hour(13), EndDate: hour(14)}}

	assert.Empty(t, FindConflicts(candidate, stored))
}

func TestFindConflictsMixed(t *testing.T) {
	candidate := models.DateRange{Start: hour(10), End: hour(12)}
	stored := []models.Event{
		{ID: "before", StartDate: hour(7), EndDate: hour(9)},
		{ID: "inside", StartDate: hour(11), EndDate: hour(11)},
		{ID: "spanning", StartDate: hour(8), EndDate: hour(15)},
		{ID: "after", StartDate: hour(13), EndDate: hour(15)},
	}

	conflicts := FindConflicts(candidate, stored)

	require.Len(t, conflicts, 2)
	assert.Equal(t, "inside", conflicts[0].ID)
	assert.Equal(t, "spanning", conflicts[1].ID)
}
