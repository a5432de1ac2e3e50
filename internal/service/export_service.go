package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/andesedu/eventos-api/internal/models"
	appErrors "github.com/andesedu/eventos-api/pkg/errors"
	"github.com/andesedu/eventos-api/pkg/export"
)

const exportDateLayout = "2006-01-02 15:04"

type eventSearcher interface {
	SearchRange(ctx context.Context, start, end time.Time) ([]models.Event, int, error)
	SearchYear(ctx context.Context, year int) ([]models.Event, int, error)
}

// ExportResult carries rendered bytes plus download metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders event listings as downloadable documents.
type ExportService struct {
	events eventSearcher
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(events eventSearcher, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		events: events,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Export renders the events of a month (or a whole year when month is nil)
// in the requested format.
func (s *ExportService) Export(ctx context.Context, month, year *int, format string) (*ExportResult, error) {
	var (
		events []models.Event
		err    error
		label  string
	)
	switch {
	case month != nil:
		if *month < 1 || *month > 12 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
		}
		// The whole month in one document, unpaginated.
		y := 0
		if year != nil {
			y = *year
		}
		rng := models.MonthRange(*month, y)
		events, _, err = s.events.SearchRange(ctx, rng.Start, rng.End)
		label = fmt.Sprintf("eventos-mes-%02d", *month)
	case year != nil:
		events, _, err = s.events.SearchYear(ctx, *year)
		label = fmt.Sprintf("eventos-%d", *year)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "month or year is required for export")
	}
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Headers: []string{"ID", "Nombre", "Fecha Inicio", "Fecha Conclusion"},
		Rows:    make([][]string, 0, len(events)),
	}
	for _, event := range events {
		table.Rows = append(table.Rows, []string{
			event.ID,
			event.Name,
			event.StartDate.Format(exportDateLayout),
			event.EndDate.Format(exportDateLayout),
		})
	}

	switch format {
	case "csv":
		content, err := s.csv.Render(table)
		if err != nil {
			s.logger.Error("csv export failed", zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: label + ".csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(table, "Calendario de Eventos")
		if err != nil {
			s.logger.Error("pdf export failed", zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: label + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "formato must be csv or pdf")
	}
}
