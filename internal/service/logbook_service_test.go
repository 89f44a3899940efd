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

type stubLogbookStore struct {
	created    *models.LogbookEntry
	byID       map[int64]*models.LogbookEntry
	checkOutOK bool
	checkOutTS time.Time
}

func (s *stubLogbookStore) Create(_ context.Context, e *models.LogbookEntry) error {
	e.ID = 1
	s.created = e
	return nil
}

func (s *stubLogbookStore) GetByID(_ context.Context, id int64) (*models.LogbookEntry, error) {
	if e, ok := s.byID[id]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubLogbookStore) CheckOut(_ context.Context, _ int64, ts time.Time) (bool, error) {
	s.checkOutTS = ts
	return s.checkOutOK, nil
}

func (s *stubLogbookStore) ListByDate(_ context.Context, _ time.Time) ([]models.LogbookEntry, error) {
	return nil, nil
}

func (s *stubLogbookStore) ListActive(_ context.Context, _ time.Time) ([]models.LogbookEntry, error) {
	return nil, nil
}

func (s *stubLogbookStore) ListRange(_ context.Context, _, _ time.Time) ([]models.LogbookEntry, error) {
	return nil, nil
}

func TestLogbookCheckInStampsDateAndTime(t *testing.T) {
	store := &stubLogbookStore{}
	svc := NewLogbookService(store, nil)
	svc.now = func() time.Time { return time.Date(2025, time.April, 2, 10, 45, 0, 0, time.UTC) }

	entry, err := svc.CheckIn(context.Background(), CheckInInput{VisitorName: "Ana Santos"})
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.April, 2, 10, 45, 0, 0, time.UTC), entry.TimeIn)
	require.Equal(t, time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC), entry.Date)
	require.Nil(t, entry.TimeOut)
}

func TestLogbookCheckInRequiresName(t *testing.T) {
	svc := NewLogbookService(&stubLogbookStore{}, nil)
	_, err := svc.CheckIn(context.Background(), CheckInInput{VisitorName: "   "})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLogbookCheckOutAlreadyOut(t *testing.T) {
	svc := NewLogbookService(&stubLogbookStore{checkOutOK: false}, nil)
	_, err := svc.CheckOut(context.Background(), 5)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestLogbookRangeRejectsInvertedDates(t *testing.T) {
	svc := NewLogbookService(&stubLogbookStore{}, nil)
	_, err := svc.Range(context.Background(),
		time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
