package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gco-office/gco-api/internal/models"
)

// StatusCount is one slice of a status distribution.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// MonthCount is one point of a monthly trend series.
type MonthCount struct {
	Month string `db:"month" json:"month"`
	Count int    `db:"count" json:"count"`
}

// DashboardRepository answers the aggregate queries behind the admin
// dashboard.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// RequestStatusDistribution counts document requests per status.
func (r *DashboardRepository) RequestStatusDistribution(ctx context.Context) ([]StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM document_requests GROUP BY status ORDER BY count DESC`
	var counts []StatusCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("request status distribution: %w", err)
	}
	return counts, nil
}

// TicketStatusDistribution counts tickets per status.
func (r *DashboardRepository) TicketStatusDistribution(ctx context.Context) ([]StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM tickets GROUP BY status ORDER BY count DESC`
	var counts []StatusCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("ticket status distribution: %w", err)
	}
	return counts, nil
}

// MonthlyRequestTrend counts document requests per calendar month over the
// trailing window.
func (r *DashboardRepository) MonthlyRequestTrend(ctx context.Context, months int) ([]MonthCount, error) {
	if months <= 0 {
		months = 6
	}
	const query = `SELECT to_char(requested_at, 'YYYY-MM') AS month, COUNT(*) AS count
FROM document_requests
WHERE requested_at >= $1
GROUP BY month ORDER BY month ASC`
	since := time.Now().UTC().AddDate(0, -months, 0)
	var counts []MonthCount
	if err := r.db.SelectContext(ctx, &counts, query, since); err != nil {
		return nil, fmt.Errorf("monthly request trend: %w", err)
	}
	return counts, nil
}

// PendingRequestCount counts requests still awaiting action.
func (r *DashboardRepository) PendingRequestCount(ctx context.Context) (int, error) {
	return r.countWhere(ctx, `SELECT COUNT(*) FROM document_requests WHERE status = $1`, models.RequestStatusPending)
}

// OpenTicketCount counts tickets not yet resolved or closed.
func (r *DashboardRepository) OpenTicketCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM tickets WHERE status IN ($1, $2)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, models.TicketStatusOpen, models.TicketStatusInProgress); err != nil {
		return 0, fmt.Errorf("open ticket count: %w", err)
	}
	return count, nil
}

// VisitorCountOn counts logbook check-ins on the given date.
func (r *DashboardRepository) VisitorCountOn(ctx context.Context, date time.Time) (int, error) {
	return r.countWhere(ctx, `SELECT COUNT(*) FROM logbook_entries WHERE date = $1`, date)
}

// PendingAppointmentCount counts bookings awaiting a decision.
func (r *DashboardRepository) PendingAppointmentCount(ctx context.Context) (int, error) {
	return r.countWhere(ctx, `SELECT COUNT(*) FROM appointments WHERE status = $1`, models.AppointmentStatusPending)
}

// OverallSatisfaction averages every numeric survey response, nil when there
// are none.
func (r *DashboardRepository) OverallSatisfaction(ctx context.Context) (*float64, error) {
	const query = `SELECT AVG(response_value) FROM survey_responses WHERE response_value IS NOT NULL`
	var avg *float64
	if err := r.db.GetContext(ctx, &avg, query); err != nil {
		return nil, fmt.Errorf("overall satisfaction: %w", err)
	}
	return avg, nil
}

func (r *DashboardRepository) countWhere(ctx context.Context, query string, arg interface{}) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, query, arg); err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}
	return count, nil
}
