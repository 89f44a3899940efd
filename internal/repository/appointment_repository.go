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

const appointmentColumns = `id, user_id, requester_name, requester_email, requester_phone, appointment_type, purpose, preferred_date, preferred_time, status, admin_notes, created_at, updated_at`

// AppointmentRepository persists appointment bookings.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository constructs the repository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts a booking.
func (r *AppointmentRepository) Create(ctx context.Context, a *models.Appointment) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = models.AppointmentStatusPending
	}

	const query = `INSERT INTO appointments (user_id, requester_name, requester_email, requester_phone, appointment_type, purpose, preferred_date, preferred_time, status, admin_notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		a.UserID,
		a.RequesterName,
		a.RequesterEmail,
		a.RequesterPhone,
		a.AppointmentType,
		a.Purpose,
		a.PreferredDate,
		a.PreferredTime,
		a.Status,
		a.AdminNotes,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID returns one booking.
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE id = $1`, appointmentColumns)
	var a models.Appointment
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// List returns bookings, optionally filtered by status, soonest first.
func (r *AppointmentRepository) List(ctx context.Context, status string) ([]models.Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments`, appointmentColumns)
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY preferred_date ASC, preferred_time ASC`

	var appts []models.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, args...); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// ListByUser returns a user's own bookings, newest first.
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE user_id = $1 ORDER BY created_at DESC`, appointmentColumns)
	var appts []models.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, userID); err != nil {
		return nil, fmt.Errorf("list user appointments: %w", err)
	}
	return appts, nil
}

// BookedSlots returns the preferred times already taken on a date, counting
// only bookings that still hold the slot.
func (r *AppointmentRepository) BookedSlots(ctx context.Context, date time.Time) ([]string, error) {
	const query = `SELECT preferred_time FROM appointments WHERE preferred_date = $1 AND status IN ($2, $3)`
	var slots []string
	if err := r.db.SelectContext(ctx, &slots, query, date, models.AppointmentStatusPending, models.AppointmentStatusApproved); err != nil {
		return nil, fmt.Errorf("list booked slots: %w", err)
	}
	return slots, nil
}

// UpdateStatus sets the booking status and optional admin notes. Returns
// false without error when the booking does not exist.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status string, adminNotes *string) (bool, error) {
	const query = `UPDATE appointments SET status = $1, admin_notes = COALESCE($2, admin_notes), updated_at = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, status, adminNotes, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("update appointment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update appointment: %w", err)
	}
	return affected > 0, nil
}
