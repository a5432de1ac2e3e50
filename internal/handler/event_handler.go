package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andesedu/eventos-api/internal/dto"
	"github.com/andesedu/eventos-api/internal/models"
	"github.com/andesedu/eventos-api/internal/service"
	"github.com/andesedu/eventos-api/pkg/config"
	appErrors "github.com/andesedu/eventos-api/pkg/errors"
	"github.com/andesedu/eventos-api/pkg/response"
)

const rangeDateLayout = "2006-01-02"

type eventQueryService interface {
	Search(ctx context.Context, params dto.EventSearchParams) ([]models.Event, int, error)
	SearchMonth(ctx context.Context, params dto.EventSearchParams) ([]models.Event, int, error)
	SearchYear(ctx context.Context, year int) ([]models.Event, int, error)
	SearchRange(ctx context.Context, start, end time.Time) ([]models.Event, int, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	CountMonth(ctx context.Context, month int, year *int) (int, error)
	Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error)
}

type eventExportService interface {
	Export(ctx context.Context, month, year *int, format string) (*service.ExportResult, error)
}

// EventHandler exposes the event query endpoints.
type EventHandler struct {
	events  eventQueryService
	exports eventExportService
	cfg     config.EventsConfig
}

// NewEventHandler constructs the handler.
func NewEventHandler(events eventQueryService, exports eventExportService, cfg config.EventsConfig) *EventHandler {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	return &EventHandler{events: events, exports: exports, cfg: cfg}
}

// Search godoc
// @Summary Unified event search
// @Tags Eventos
// @Produce json
// @Param Mes query int false "Month (1-12)"
// @Param Año query int false "Year (1900-2100)"
// @Param Limit query int false "Page size (1-100)"
// @Param Offset query int false "Rows to skip"
// @Success 200 {object} response.Envelope
// @Router /eventos [get]
func (h *EventHandler) Search(c *gin.Context) {
	params, err := h.parseSearchParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	events, total, err := h.events.Search(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondEventList(c, events, total)
}

// SearchMonth serves the month-only search; Mes is mandatory here.
func (h *EventHandler) SearchMonth(c *gin.Context) {
	params, err := h.parseSearchParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if params.Month == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Mes is required"))
		return
	}

	events, total, err := h.events.SearchMonth(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondEventList(c, events, total)
}

// CountMonth returns only the number of events in a month.
func (h *EventHandler) CountMonth(c *gin.Context) {
	month, err := parseBoundedParam(c, 1, 12, "Mes", "mes")
	if err != nil {
		response.Error(c, err)
		return
	}
	if month == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Mes is required"))
		return
	}
	year, err := parseBoundedParam(c, 1900, 2100, "Año", "anio")
	if err != nil {
		response.Error(c, err)
		return
	}

	total, err := h.events.CountMonth(c.Request.Context(), *month, year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, fmt.Sprintf("Hay %d eventos en el mes", total), nil, total)
}

// SearchYear returns every event of a year, unpaginated.
func (h *EventHandler) SearchYear(c *gin.Context) {
	year, err := parseBoundedParam(c, 1900, 2100, "Año", "anio")
	if err != nil {
		response.Error(c, err)
		return
	}
	if year == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Año is required"))
		return
	}

	events, total, err := h.events.SearchYear(c.Request.Context(), *year)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondEventList(c, events, total)
}

// SearchRange returns every event overlapping an explicit date range.
func (h *EventHandler) SearchRange(c *gin.Context) {
	start, err := parseRequiredDate(c, "Fecha_Inicio", "fecha_inicio")
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseRequiredDate(c, "Fecha_Conclusion", "fecha_conclusion")
	if err != nil {
		response.Error(c, err)
		return
	}

	events, total, err := h.events.SearchRange(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondEventList(c, events, total)
}

// Get returns a single event by id.
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, "Evento encontrado", dto.NewEventPayload(*event))
}

// Create registers a new event after conflict checking.
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload"))
		return
	}

	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Evento creado", dto.NewEventPayload(*event))
}

// Export streams the month or year of events as csv or pdf.
func (h *EventHandler) Export(c *gin.Context) {
	month, err := parseBoundedParam(c, 1, 12, "Mes", "mes")
	if err != nil {
		response.Error(c, err)
		return
	}
	year, err := parseBoundedParam(c, 1900, 2100, "Año", "anio")
	if err != nil {
		response.Error(c, err)
		return
	}
	format := pickQuery(c, "formato", "format")
	if format == "" {
		format = "csv"
	}

	result, err := h.exports.Export(c.Request.Context(), month, year, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Content)
}

// parseSearchParams validates the four optional query parameters of the
// unified search. The first violation aborts before any query executes.
func (h *EventHandler) parseSearchParams(c *gin.Context) (dto.EventSearchParams, error) {
	params := dto.EventSearchParams{Limit: h.cfg.DefaultLimit}

	limit, err := parseBoundedParam(c, 1, h.cfg.MaxLimit, "Limit", "limit")
	if err != nil {
		return params, err
	}
	if limit != nil {
		params.Limit = *limit
	}

	offset, err := parseBoundedParam(c, 0, 1<<30, "Offset", "offset")
	if err != nil {
		return params, err
	}
	if offset != nil {
		params.Offset = *offset
	}

	params.Month, err = parseBoundedParam(c, 1, 12, "Mes", "mes")
	if err != nil {
		return params, err
	}
	params.Year, err = parseBoundedParam(c, 1900, 2100, "Año", "anio")
	if err != nil {
		return params, err
	}

	return params, nil
}

func respondEventList(c *gin.Context, events []models.Event, total int) {
	if len(events) == 0 {
		response.Empty(c, "No se encontraron eventos para los criterios indicados")
		return
	}
	response.OK(c, fmt.Sprintf("Se encontraron %d eventos", total), dto.NewEventPayloads(events), total)
}

func parseBoundedParam(c *gin.Context, min, max int, preferred, fallback string) (*int, error) {
	raw := pickQuery(c, preferred, fallback)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer", preferred))
	}
	if value < min || value > max {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be between %d and %d", preferred, min, max))
	}
	return &value, nil
}

func parseRequiredDate(c *gin.Context, preferred, fallback string) (time.Time, error) {
	raw := pickQuery(c, preferred, fallback)
	if raw == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, preferred+" is required")
	}
	parsed, err := time.Parse(rangeDateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, preferred+" must use the YYYY-MM-DD format")
	}
	return parsed, nil
}

func pickQuery(c *gin.Context, preferred, fallback string) string {
	if value := c.Query(preferred); value != "" {
		return value
	}
	return c.Query(fallback)
}
