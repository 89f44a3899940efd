package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/export"
)

// ExportKind names an exportable entity collection.
type ExportKind string

const (
	ExportKindDocumentRequests ExportKind = "document_requests"
	ExportKindTickets          ExportKind = "tickets"
	ExportKindLogbook          ExportKind = "logbook"
)

const exportTimeLayout = "2006-01-02 15:04"

type requestExportReader interface {
	List(ctx context.Context, filter models.DocumentRequestFilter) ([]models.DocumentRequest, error)
}

type ticketExportReader interface {
	List(ctx context.Context) ([]models.Ticket, error)
}

type logbookExportReader interface {
	ListAll(ctx context.Context) ([]models.LogbookEntry, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered download: payload plus serving metadata.
type ExportFile struct {
	Payload     []byte
	Filename    string
	ContentType string
}

// ExportService projects entity collections onto fixed, human-labeled
// column sets and renders them. Read-only; render errors propagate
// unmodified.
type ExportService struct {
	requests requestExportReader
	tickets  ticketExportReader
	logbook  logbookExportReader
	csv      csvRenderer
	xlsx     xlsxRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs the service with the default renderers.
func NewExportService(requests requestExportReader, tickets ticketExportReader, logbook logbookExportReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		requests: requests,
		tickets:  tickets,
		logbook:  logbook,
		csv:      export.NewCSVExporter(),
		xlsx:     export.NewXLSXExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Export renders the named collection in the requested format.
func (s *ExportService) Export(ctx context.Context, kind ExportKind, format models.ReportFormat) (*ExportFile, error) {
	var (
		dataset export.Dataset
		title   string
		err     error
	)
	switch kind {
	case ExportKindDocumentRequests:
		dataset, err = s.requestDataset(ctx)
		title = "Document Requests"
	case ExportKindTickets:
		dataset, err = s.ticketDataset(ctx)
		title = "Support Tickets"
	case ExportKindLogbook:
		dataset, err = s.logbookDataset(ctx)
		title = "Visitor Logbook"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export kind %q", kind))
	}
	if err != nil {
		return nil, err
	}

	stamp := s.now().Format("20060102-150405")
	base := fmt.Sprintf("%s-%s", kind, stamp)

	switch format {
	case models.ReportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Payload: payload, Filename: base + ".csv", ContentType: "text/csv"}, nil
	case models.ReportFormatXLSX:
		payload, err := s.xlsx.Render(dataset)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Payload:     payload,
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}, nil
	case models.ReportFormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Payload: payload, Filename: base + ".pdf", ContentType: "application/pdf"}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export format %q", format))
}

func (s *ExportService) requestDataset(ctx context.Context) (export.Dataset, error) {
	requests, err := s.requests.List(ctx, models.DocumentRequestFilter{})
	if err != nil {
		return export.Dataset{}, err
	}
	dataset := export.Dataset{
		Headers: []string{"Tracking Number", "Requester Name", "Email", "Document Type", "Purpose", "Status", "Requested At"},
	}
	for _, r := range requests {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Tracking Number": r.TrackingNumber,
			"Requester Name":  r.RequesterName,
			"Email":           derefString(r.RequesterEmail),
			"Document Type":   r.DocumentType,
			"Purpose":         derefString(r.Purpose),
			"Status":          r.Status,
			"Requested At":    r.RequestedAt.Format(exportTimeLayout),
		})
	}
	return dataset, nil
}

func (s *ExportService) ticketDataset(ctx context.Context) (export.Dataset, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	dataset := export.Dataset{
		Headers: []string{"Ticket #", "Subject", "Requester", "Email", "Status", "Priority", "Created"},
	}
	for _, t := range tickets {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Ticket #":  t.TicketNumber,
			"Subject":   t.Subject,
			"Requester": t.RequesterName,
			"Email":     derefString(t.RequesterEmail),
			"Status":    t.Status,
			"Priority":  t.Priority,
			"Created":   t.CreatedAt.Format(exportTimeLayout),
		})
	}
	return dataset, nil
}

func (s *ExportService) logbookDataset(ctx context.Context) (export.Dataset, error) {
	entries, err := s.logbook.ListAll(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	dataset := export.Dataset{
		Headers: []string{"Visitor", "Purpose", "Time In", "Time Out", "Date"},
	}
	for _, e := range entries {
		timeOut := ""
		if e.TimeOut != nil {
			timeOut = e.TimeOut.Format(exportTimeLayout)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Visitor":  e.VisitorName,
			"Purpose":  derefString(e.Purpose),
			"Time In":  e.TimeIn.Format(exportTimeLayout),
			"Time Out": timeOut,
			"Date":     e.Date.Format("2006-01-02"),
		})
	}
	return dataset, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
