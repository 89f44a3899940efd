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

type stubRequestStore struct {
	created     *models.DocumentRequest
	createdLog  *models.RequestStatusLog
	byTracking  map[string]*models.DocumentRequest
	byID        map[int64]*models.DocumentRequest
	history     []models.RequestStatusLog
	updateCalls []struct {
		ID          int64
		Status      string
		CompletedAt *time.Time
	}
	updateOK bool
}

func (s *stubRequestStore) Create(_ context.Context, req *models.DocumentRequest, firstLog *models.RequestStatusLog) error {
	req.ID = 1
	s.created = req
	s.createdLog = firstLog
	return nil
}

func (s *stubRequestStore) GetByID(_ context.Context, id int64) (*models.DocumentRequest, error) {
	if req, ok := s.byID[id]; ok {
		return req, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubRequestStore) GetByTracking(_ context.Context, trackingNumber string) (*models.DocumentRequest, error) {
	if req, ok := s.byTracking[trackingNumber]; ok {
		return req, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubRequestStore) List(_ context.Context, _ models.DocumentRequestFilter) ([]models.DocumentRequest, error) {
	return nil, nil
}

func (s *stubRequestStore) UpdateStatusWithLog(_ context.Context, id int64, status string, completedAt *time.Time, _ *models.RequestStatusLog) (bool, error) {
	s.updateCalls = append(s.updateCalls, struct {
		ID          int64
		Status      string
		CompletedAt *time.Time
	}{id, status, completedAt})
	return s.updateOK, nil
}

func (s *stubRequestStore) History(_ context.Context, _ int64) ([]models.RequestStatusLog, error) {
	return s.history, nil
}

type fixedAllocator struct {
	next string
}

func (a *fixedAllocator) Next(_ context.Context, _ time.Time) (string, error) {
	return a.next, nil
}

func (a *fixedAllocator) Seed(_ context.Context, _ time.Time, n int) ([]string, error) {
	out := make([]string, n)
	for i := range out {
		out[i] = a.next
	}
	return out, nil
}

func TestDocumentRequestCreateAllocatesAndLogs(t *testing.T) {
	store := &stubRequestStore{}
	svc := NewDocumentRequestService(store, &fixedAllocator{next: "GCO-2025-00001"}, nil, nil)

	req, err := svc.Create(context.Background(), CreateDocumentRequestInput{
		RequesterName: "  Juan Dela Cruz  ",
		DocumentType:  "Certificate of Enrollment",
	})
	require.NoError(t, err)
	require.Equal(t, "GCO-2025-00001", req.TrackingNumber)
	require.Equal(t, "Juan Dela Cruz", req.RequesterName)
	require.Equal(t, models.RequestStatusPending, req.Status)
	require.NotNil(t, store.createdLog)
	require.Equal(t, models.RequestStatusPending, store.createdLog.Status)
	require.Equal(t, "Request created", *store.createdLog.Notes)
}

func TestDocumentRequestCreateRejectsBlankFields(t *testing.T) {
	svc := NewDocumentRequestService(&stubRequestStore{}, &fixedAllocator{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateDocumentRequestInput{DocumentType: "Form 137"})
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	_, err = svc.Create(context.Background(), CreateDocumentRequestInput{RequesterName: "Ana"})
	appErr = appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestDocumentRequestTrackUnknownNumber(t *testing.T) {
	svc := NewDocumentRequestService(&stubRequestStore{}, &fixedAllocator{}, nil, nil)

	_, _, err := svc.Track(context.Background(), "GCO-9999-99999")
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestDocumentRequestUpdateStatusStampsCompletion(t *testing.T) {
	store := &stubRequestStore{
		updateOK: true,
		byID: map[int64]*models.DocumentRequest{
			3: {ID: 3, TrackingNumber: "GCO-2025-00003", Status: models.RequestStatusClaimed},
		},
	}
	svc := NewDocumentRequestService(store, &fixedAllocator{}, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 3, UpdateRequestStatusInput{Status: models.RequestStatusClaimed})
	require.NoError(t, err)
	require.Len(t, store.updateCalls, 1)
	require.NotNil(t, store.updateCalls[0].CompletedAt)

	_, err = svc.UpdateStatus(context.Background(), 3, UpdateRequestStatusInput{Status: models.RequestStatusProcessing})
	require.NoError(t, err)
	require.Nil(t, store.updateCalls[1].CompletedAt)
}

func TestDocumentRequestUpdateStatusAcceptsArbitraryStatus(t *testing.T) {
	store := &stubRequestStore{
		updateOK: true,
		byID: map[int64]*models.DocumentRequest{
			3: {ID: 3, TrackingNumber: "GCO-2025-00003", Status: "On Hold - Signature"},
		},
	}
	svc := NewDocumentRequestService(store, &fixedAllocator{}, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 3, UpdateRequestStatusInput{Status: "On Hold - Signature"})
	require.NoError(t, err)
	require.Equal(t, "On Hold - Signature", store.updateCalls[0].Status)
	require.Nil(t, store.updateCalls[0].CompletedAt)
}

func TestDocumentRequestUpdateStatusMissingRequest(t *testing.T) {
	store := &stubRequestStore{updateOK: false}
	svc := NewDocumentRequestService(store, &fixedAllocator{}, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 999999, UpdateRequestStatusInput{Status: models.RequestStatusProcessing})
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
