package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type stubReportStore struct {
	counts map[string]int
	saved  *models.MonthlyReport
	stored *models.MonthlyReport
	from   time.Time
	to     time.Time
}

func (s *stubReportStore) Save(_ context.Context, report *models.MonthlyReport) error {
	report.ID = 1
	s.saved = report
	return nil
}

func (s *stubReportStore) Get(_ context.Context, month, year int, _ string) (*models.MonthlyReport, error) {
	if s.stored != nil && s.stored.ReportMonth == month && s.stored.ReportYear == year {
		return s.stored, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubReportStore) List(_ context.Context) ([]models.MonthlyReport, error) { return nil, nil }

func (s *stubReportStore) CountInMonth(_ context.Context, table, _ string, from, to time.Time) (int, error) {
	s.from, s.to = from, to
	return s.counts[table], nil
}

func TestReportGenerateSumsMonth(t *testing.T) {
	store := &stubReportStore{counts: map[string]int{
		"document_requests": 12,
		"tickets":           3,
		"logbook_entries":   20,
		"appointments":      5,
	}}
	svc := NewReportService(store, nil)

	report, summary, err := svc.Generate(context.Background(), 2, 2025)
	require.NoError(t, err)
	require.Equal(t, 40, summary.Total)
	require.Equal(t, 2, report.ReportMonth)
	require.NotNil(t, report.SummaryData)
	require.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), store.from)
	require.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), store.to)
}

func TestReportGenerateRejectsBadMonth(t *testing.T) {
	svc := NewReportService(&stubReportStore{}, nil)
	_, _, err := svc.Generate(context.Background(), 13, 2025)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportGetMissingMonth(t *testing.T) {
	svc := NewReportService(&stubReportStore{}, nil)
	_, _, err := svc.Get(context.Background(), 1, 2020)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReportRenderCSV(t *testing.T) {
	data := `{"document_requests":12,"tickets":3,"logbook":20,"appointments":5,"total":40}`
	store := &stubReportStore{stored: &models.MonthlyReport{
		ReportMonth: 2, ReportYear: 2025, ReportType: monthlyReportType, SummaryData: &data,
	}}
	svc := NewReportService(store, nil)

	file, err := svc.Render(context.Background(), 2, 2025, models.ReportFormatCSV)
	require.NoError(t, err)
	require.Contains(t, string(file.Payload), "Document Requests,12")
	require.Contains(t, string(file.Payload), "Total,40")
	require.Equal(t, "monthly-report-2025-02.csv", file.Filename)
}
