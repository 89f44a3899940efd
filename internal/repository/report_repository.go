package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gco-office/gco-api/internal/models"
)

const monthlyReportColumns = `id, report_month, report_year, report_type, summary_data, file_path, generated_at, created_at`

// ReportRepository persists generated monthly reports and answers the
// aggregate queries they are built from.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts or refreshes the report row for a month. Regenerating the
// same month overwrites the previous summary.
func (r *ReportRepository) Save(ctx context.Context, report *models.MonthlyReport) error {
	now := time.Now().UTC()
	report.GeneratedAt = now
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}

	const query = `INSERT INTO monthly_reports (report_month, report_year, report_type, summary_data, file_path, generated_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (report_month, report_year, report_type)
DO UPDATE SET summary_data = EXCLUDED.summary_data, file_path = EXCLUDED.file_path, generated_at = EXCLUDED.generated_at
RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		report.ReportMonth,
		report.ReportYear,
		report.ReportType,
		report.SummaryData,
		report.FilePath,
		report.GeneratedAt,
		report.CreatedAt,
	).Scan(&report.ID); err != nil {
		return fmt.Errorf("save monthly report: %w", err)
	}
	return nil
}

// Get returns the stored report for a month, or sql.ErrNoRows.
func (r *ReportRepository) Get(ctx context.Context, month, year int, reportType string) (*models.MonthlyReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM monthly_reports WHERE report_month = $1 AND report_year = $2 AND report_type = $3`, monthlyReportColumns)
	var report models.MonthlyReport
	if err := r.db.GetContext(ctx, &report, query, month, year, reportType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get monthly report: %w", err)
	}
	return &report, nil
}

// List returns stored reports, most recent month first.
func (r *ReportRepository) List(ctx context.Context) ([]models.MonthlyReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM monthly_reports ORDER BY report_year DESC, report_month DESC`, monthlyReportColumns)
	var reports []models.MonthlyReport
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("list monthly reports: %w", err)
	}
	return reports, nil
}

// CountInMonth counts rows of the named table whose timestamp column falls
// within [from, to). Table and column names come from a fixed internal set,
// never from request input.
func (r *ReportRepository) CountInMonth(ctx context.Context, table, column string, from, to time.Time) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s >= $1 AND %s < $2`, table, column, column)
	var count int
	if err := r.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}
