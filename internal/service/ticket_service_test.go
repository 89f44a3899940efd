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

type stubTicketStore struct {
	maxID    int64
	created  *models.Ticket
	byID     map[int64]*models.Ticket
	updateOK bool
	updated  struct {
		Status     string
		ResolvedAt *time.Time
	}
}

func (s *stubTicketStore) Create(_ context.Context, t *models.Ticket) error {
	t.ID = s.maxID + 1
	s.created = t
	return nil
}

func (s *stubTicketStore) GetByID(_ context.Context, id int64) (*models.Ticket, error) {
	if t, ok := s.byID[id]; ok {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubTicketStore) List(_ context.Context) ([]models.Ticket, error) { return nil, nil }

func (s *stubTicketStore) Update(_ context.Context, _ int64, status string, _ *string, resolvedAt *time.Time) (bool, error) {
	s.updated.Status = status
	s.updated.ResolvedAt = resolvedAt
	return s.updateOK, nil
}

func (s *stubTicketStore) MaxID(_ context.Context) (int64, error) { return s.maxID, nil }

func TestTicketCreateNumbersFromMaxID(t *testing.T) {
	store := &stubTicketStore{maxID: 12}
	svc := NewTicketService(store, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, time.September, 3, 9, 0, 0, 0, time.UTC) }

	ticket, err := svc.Create(context.Background(), CreateTicketInput{
		Subject:       "Broken printer",
		RequesterName: "Ana Santos",
	})
	require.NoError(t, err)
	require.Equal(t, "TKT-20250903-0013", ticket.TicketNumber)
	require.Equal(t, models.TicketStatusOpen, ticket.Status)
	require.Equal(t, models.TicketPriorityMedium, ticket.Priority)
}

func TestTicketCreateRequiresSubjectAndRequester(t *testing.T) {
	svc := NewTicketService(&stubTicketStore{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateTicketInput{RequesterName: "Ana"})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), CreateTicketInput{Subject: "Help"})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTicketUpdateStampsResolvedAt(t *testing.T) {
	store := &stubTicketStore{
		updateOK: true,
		byID:     map[int64]*models.Ticket{7: {ID: 7, TicketNumber: "TKT-20250101-0007"}},
	}
	svc := NewTicketService(store, nil, nil)

	_, err := svc.Update(context.Background(), 7, models.TicketStatusResolved, nil)
	require.NoError(t, err)
	require.NotNil(t, store.updated.ResolvedAt)

	_, err = svc.Update(context.Background(), 7, models.TicketStatusInProgress, nil)
	require.NoError(t, err)
	require.Nil(t, store.updated.ResolvedAt)
}

func TestTicketUpdateMissingTicket(t *testing.T) {
	svc := NewTicketService(&stubTicketStore{updateOK: false}, nil, nil)

	_, err := svc.Update(context.Background(), 999999, models.TicketStatusClosed, nil)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
