package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/export"
)

const monthlyReportType = "monthly_summary"

type monthlyReportStore interface {
	Save(ctx context.Context, report *models.MonthlyReport) error
	Get(ctx context.Context, month, year int, reportType string) (*models.MonthlyReport, error)
	List(ctx context.Context) ([]models.MonthlyReport, error)
	CountInMonth(ctx context.Context, table, column string, from, to time.Time) (int, error)
}

// ReportService generates and serves monthly transaction summaries.
type ReportService struct {
	reports monthlyReportStore
	csv     csvRenderer
	xlsx    xlsxRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewReportService constructs the service with the default renderers.
func NewReportService(reports monthlyReportStore, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reports: reports,
		csv:     export.NewCSVExporter(),
		xlsx:    export.NewXLSXExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// Generate counts the month's transactions and stores the summary,
// overwriting any previous report for the same month.
func (s *ReportService) Generate(ctx context.Context, month, year int) (*models.MonthlyReport, *models.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	summary := &models.MonthlySummary{}
	counts := []struct {
		table  string
		column string
		dest   *int
	}{
		{"document_requests", "requested_at", &summary.DocumentRequests},
		{"tickets", "created_at", &summary.Tickets},
		{"logbook_entries", "time_in", &summary.Logbook},
		{"appointments", "created_at", &summary.Appointments},
	}
	for _, c := range counts {
		n, err := s.reports.CountInMonth(ctx, c.table, c.column, from, to)
		if err != nil {
			return nil, nil, err
		}
		*c.dest = n
	}
	summary.Total = summary.DocumentRequests + summary.Tickets + summary.Logbook + summary.Appointments

	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, nil, fmt.Errorf("encode summary: %w", err)
	}
	data := string(payload)

	report := &models.MonthlyReport{
		ReportMonth: month,
		ReportYear:  year,
		ReportType:  monthlyReportType,
		SummaryData: &data,
	}
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, nil, err
	}

	s.logger.Info("monthly report generated",
		zap.Int("month", month), zap.Int("year", year), zap.Int("total", summary.Total))
	return report, summary, nil
}

// Get returns a stored report with its decoded summary.
func (s *ReportService) Get(ctx context.Context, month, year int) (*models.MonthlyReport, *models.MonthlySummary, error) {
	report, err := s.reports.Get(ctx, month, year, monthlyReportType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "no report for that month")
		}
		return nil, nil, err
	}
	summary := &models.MonthlySummary{}
	if report.SummaryData != nil {
		if err := json.Unmarshal([]byte(*report.SummaryData), summary); err != nil {
			return nil, nil, fmt.Errorf("decode summary: %w", err)
		}
	}
	return report, summary, nil
}

// List returns all stored reports, most recent month first.
func (s *ReportService) List(ctx context.Context) ([]models.MonthlyReport, error) {
	return s.reports.List(ctx)
}

// Render produces a downloadable file for a stored report.
func (s *ReportService) Render(ctx context.Context, month, year int, format models.ReportFormat) (*ExportFile, error) {
	_, summary, err := s.Get(ctx, month, year)
	if err != nil {
		return nil, err
	}

	label := fmt.Sprintf("%04d-%02d", year, month)
	dataset := export.Dataset{
		Headers: []string{"Category", "Count"},
		Rows: []map[string]string{
			{"Category": "Document Requests", "Count": fmt.Sprintf("%d", summary.DocumentRequests)},
			{"Category": "Tickets", "Count": fmt.Sprintf("%d", summary.Tickets)},
			{"Category": "Logbook Entries", "Count": fmt.Sprintf("%d", summary.Logbook)},
			{"Category": "Appointments", "Count": fmt.Sprintf("%d", summary.Appointments)},
			{"Category": "Total", "Count": fmt.Sprintf("%d", summary.Total)},
		},
	}

	base := "monthly-report-" + label
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
		payload, err := s.pdf.Render(dataset, "Monthly Report "+label)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Payload: payload, Filename: base + ".pdf", ContentType: "application/pdf"}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown report format %q", format))
}
