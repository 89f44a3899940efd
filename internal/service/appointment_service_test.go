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

type stubAppointmentStore struct {
	booked   []string
	created  *models.Appointment
	byID     map[int64]*models.Appointment
	updateOK bool
}

func (s *stubAppointmentStore) Create(_ context.Context, a *models.Appointment) error {
	a.ID = 1
	s.created = a
	return nil
}

func (s *stubAppointmentStore) GetByID(_ context.Context, id int64) (*models.Appointment, error) {
	if a, ok := s.byID[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubAppointmentStore) List(_ context.Context, _ string) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentStore) ListByUser(_ context.Context, _ int64) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentStore) BookedSlots(_ context.Context, _ time.Time) ([]string, error) {
	return s.booked, nil
}

func (s *stubAppointmentStore) UpdateStatus(_ context.Context, _ int64, _ string, _ *string) (bool, error) {
	return s.updateOK, nil
}

func newAppointmentService(store *stubAppointmentStore) *AppointmentService {
	svc := NewAppointmentService(store, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC) }
	return svc
}

func validBooking() BookAppointmentInput {
	return BookAppointmentInput{
		RequesterName:   "Ana Santos",
		RequesterEmail:  "ana@gmail.com",
		AppointmentType: "Consultation",
		PreferredDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		PreferredTime:   "09:00",
	}
}

func TestAppointmentBookHappyPath(t *testing.T) {
	store := &stubAppointmentStore{}
	svc := newAppointmentService(store)

	appt, err := svc.Book(context.Background(), validBooking())
	require.NoError(t, err)
	require.Equal(t, models.AppointmentStatusPending, appt.Status)
}

func TestAppointmentBookRejectsTakenSlot(t *testing.T) {
	store := &stubAppointmentStore{booked: []string{"09:00"}}
	svc := newAppointmentService(store)

	_, err := svc.Book(context.Background(), validBooking())
	require.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAppointmentBookRejectsUnknownSlot(t *testing.T) {
	svc := newAppointmentService(&stubAppointmentStore{})

	input := validBooking()
	input.PreferredTime = "12:00"
	_, err := svc.Book(context.Background(), input)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAppointmentBookRejectsPastDate(t *testing.T) {
	svc := newAppointmentService(&stubAppointmentStore{})

	input := validBooking()
	input.PreferredDate = time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Book(context.Background(), input)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAppointmentAvailableSlotsExcludesBooked(t *testing.T) {
	store := &stubAppointmentStore{booked: []string{"08:00", "16:30"}}
	svc := newAppointmentService(store)

	free, err := svc.AvailableSlots(context.Background(), time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, free, len(models.AppointmentTimeSlots)-2)
	require.NotContains(t, free, "08:00")
	require.NotContains(t, free, "16:30")
}

func TestAppointmentDecideUnknownStatus(t *testing.T) {
	svc := newAppointmentService(&stubAppointmentStore{updateOK: true})

	_, err := svc.Decide(context.Background(), 1, "Maybe", nil)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
