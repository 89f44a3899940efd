package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type appointmentStore interface {
	Create(ctx context.Context, a *models.Appointment) error
	GetByID(ctx context.Context, id int64) (*models.Appointment, error)
	List(ctx context.Context, status string) ([]models.Appointment, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Appointment, error)
	BookedSlots(ctx context.Context, date time.Time) ([]string, error)
	UpdateStatus(ctx context.Context, id int64, status string, adminNotes *string) (bool, error)
}

// BookAppointmentInput carries an appointment booking.
type BookAppointmentInput struct {
	UserID          *int64
	RequesterName   string
	RequesterEmail  string
	RequesterPhone  *string
	AppointmentType string
	Purpose         *string
	PreferredDate   time.Time
	PreferredTime   string
}

// AppointmentService owns appointment booking and slot availability.
type AppointmentService struct {
	appointments appointmentStore
	mailer       Mailer
	logger       *zap.Logger
	now          func() time.Time
}

// NewAppointmentService constructs the service.
func NewAppointmentService(appointments appointmentStore, mailer Mailer, logger *zap.Logger) *AppointmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mailer == nil {
		mailer = NewLogMailer(logger)
	}
	return &AppointmentService{
		appointments: appointments,
		mailer:       mailer,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Book validates the slot and persists the booking as Pending.
func (s *AppointmentService) Book(ctx context.Context, input BookAppointmentInput) (*models.Appointment, error) {
	input.RequesterName = strings.TrimSpace(input.RequesterName)
	input.RequesterEmail = strings.TrimSpace(input.RequesterEmail)
	if input.RequesterName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "requester name is required")
	}
	if input.RequesterEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "requester email is required")
	}
	if !validAppointmentType(input.AppointmentType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown appointment type")
	}
	if !validTimeSlot(input.PreferredTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "preferred time is outside office slots")
	}
	if input.PreferredDate.Before(s.now().Truncate(24 * time.Hour)) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "preferred date is in the past")
	}

	taken, err := s.appointments.BookedSlots(ctx, input.PreferredDate)
	if err != nil {
		return nil, err
	}
	for _, slot := range taken {
		if slot == input.PreferredTime {
			return nil, appErrors.Clone(appErrors.ErrConflict, "time slot already booked")
		}
	}

	appt := &models.Appointment{
		UserID:          input.UserID,
		RequesterName:   input.RequesterName,
		RequesterEmail:  input.RequesterEmail,
		RequesterPhone:  input.RequesterPhone,
		AppointmentType: input.AppointmentType,
		Purpose:         input.Purpose,
		PreferredDate:   input.PreferredDate,
		PreferredTime:   input.PreferredTime,
		Status:          models.AppointmentStatusPending,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info("appointment booked",
		zap.Int64("appointment_id", appt.ID),
		zap.String("slot", appt.PreferredTime))
	return appt, nil
}

// AvailableSlots returns the office slots still open on a date.
func (s *AppointmentService) AvailableSlots(ctx context.Context, date time.Time) ([]string, error) {
	taken, err := s.appointments.BookedSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	used := make(map[string]bool, len(taken))
	for _, slot := range taken {
		used[slot] = true
	}
	var free []string
	for _, slot := range models.AppointmentTimeSlots {
		if !used[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

// Get returns one booking.
func (s *AppointmentService) Get(ctx context.Context, id int64) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, err
	}
	return appt, nil
}

// List returns bookings, optionally filtered by status.
func (s *AppointmentService) List(ctx context.Context, status string) ([]models.Appointment, error) {
	return s.appointments.List(ctx, status)
}

// ListByUser returns the caller's own bookings.
func (s *AppointmentService) ListByUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	return s.appointments.ListByUser(ctx, userID)
}

// Decide records a staff decision and notifies the requester.
func (s *AppointmentService) Decide(ctx context.Context, id int64, status string, adminNotes *string) (*models.Appointment, error) {
	switch status {
	case models.AppointmentStatusApproved, models.AppointmentStatusRejected,
		models.AppointmentStatusCompleted, models.AppointmentStatusCancelled:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown appointment status")
	}

	ok, err := s.appointments.UpdateStatus(ctx, id, status, adminNotes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
	}

	appt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(ctx, appt.RequesterEmail,
		"Appointment "+status,
		"Your appointment on "+appt.PreferredDate.Format("2006-01-02")+" at "+appt.PreferredTime+" is "+status+"."); err != nil {
		s.logger.Warn("appointment notification failed", zap.Error(err))
	}
	return appt, nil
}

func validAppointmentType(t string) bool {
	for _, known := range models.AppointmentTypes {
		if known == t {
			return true
		}
	}
	return false
}

func validTimeSlot(slot string) bool {
	for _, known := range models.AppointmentTimeSlots {
		if known == slot {
			return true
		}
	}
	return false
}
