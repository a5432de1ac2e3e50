package dto

import (
	"time"

	"github.com/andesedu/eventos-api/internal/models"
)

// EventPayload is the wire shape consumed by the legacy front-end. Field
// names follow the original API contract.
type EventPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"Nombre"`
	StartDate time.Time `json:"Fecha_Inicio"`
	EndDate   time.Time `json:"Fecha_Conclusion"`
}

// NewEventPayload maps a stored event onto the wire shape.
func NewEventPayload(event models.Event) EventPayload {
	return EventPayload{
		ID:        event.ID,
		Name:      event.Name,
		StartDate: event.StartDate,
		EndDate:   event.EndDate,
	}
}

// NewEventPayloads maps a slice of stored events, never returning nil so the
// encoded data field stays a JSON array.
func NewEventPayloads(events []models.Event) []EventPayload {
	payloads := make([]EventPayload, 0, len(events))
	for _, event := range events {
		payloads = append(payloads, NewEventPayload(event))
	}
	return payloads
}

// EventSearchParams captures the filters of the unified search. Nil month
// means no range filter; nil year with a month defaults to the current year.
type EventSearchParams struct {
	Month  *int
	Year   *int
	Limit  int
	Offset int
}

// CreateEventRequest describes the event creation payload.
type CreateEventRequest struct {
	Name      string    `json:"Nombre" validate:"required"`
	StartDate time.Time `json:"Fecha_Inicio" validate:"required"`
	EndDate   time.Time `json:"Fecha_Conclusion" validate:"required"`
}
