package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type documentRequestStore interface {
	Create(ctx context.Context, req *models.DocumentRequest, firstLog *models.RequestStatusLog) error
	GetByID(ctx context.Context, id int64) (*models.DocumentRequest, error)
	GetByTracking(ctx context.Context, trackingNumber string) (*models.DocumentRequest, error)
	List(ctx context.Context, filter models.DocumentRequestFilter) ([]models.DocumentRequest, error)
	UpdateStatusWithLog(ctx context.Context, id int64, status string, completedAt *time.Time, log *models.RequestStatusLog) (bool, error)
	History(ctx context.Context, requestID int64) ([]models.RequestStatusLog, error)
}

// CreateDocumentRequestInput carries the fields a requester submits.
type CreateDocumentRequestInput struct {
	RequesterName  string
	RequesterEmail *string
	DocumentType   string
	Purpose        *string
	Notes          *string
	UserID         *int64
}

// UpdateRequestStatusInput carries a staff status change.
type UpdateRequestStatusInput struct {
	Status    string
	Notes     *string
	ChangedBy *string
}

// DocumentRequestService owns the document request lifecycle.
type DocumentRequestService struct {
	requests  documentRequestStore
	allocator TrackingAllocator
	mailer    Mailer
	logger    *zap.Logger
	now       func() time.Time
}

// NewDocumentRequestService constructs the service.
func NewDocumentRequestService(requests documentRequestStore, allocator TrackingAllocator, mailer Mailer, logger *zap.Logger) *DocumentRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mailer == nil {
		mailer = NewLogMailer(logger)
	}
	return &DocumentRequestService{
		requests:  requests,
		allocator: allocator,
		mailer:    mailer,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create allocates a tracking number and persists the request together with
// its creation log entry.
func (s *DocumentRequestService) Create(ctx context.Context, input CreateDocumentRequestInput) (*models.DocumentRequest, error) {
	input.RequesterName = strings.TrimSpace(input.RequesterName)
	input.DocumentType = strings.TrimSpace(input.DocumentType)
	if input.RequesterName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "requester name is required")
	}
	if input.DocumentType == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "document type is required")
	}

	now := s.now()
	trackingNumber, err := s.allocator.Next(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("allocate tracking number: %w", err)
	}

	req := &models.DocumentRequest{
		TrackingNumber: trackingNumber,
		RequesterName:  input.RequesterName,
		RequesterEmail: input.RequesterEmail,
		DocumentType:   input.DocumentType,
		Purpose:        input.Purpose,
		Status:         models.RequestStatusPending,
		RequestedAt:    now,
		Notes:          input.Notes,
		UserID:         input.UserID,
	}
	note := "Request created"
	firstLog := &models.RequestStatusLog{Status: models.RequestStatusPending, Notes: &note}

	if err := s.requests.Create(ctx, req, firstLog); err != nil {
		return nil, err
	}

	s.logger.Info("document request created",
		zap.String("tracking_number", req.TrackingNumber),
		zap.String("document_type", req.DocumentType))

	if req.RequesterEmail != nil {
		s.notify(ctx, *req.RequesterEmail,
			fmt.Sprintf("Document Request Received - %s", req.TrackingNumber),
			fmt.Sprintf("Your request for %s has been received. Track it with %s.", req.DocumentType, req.TrackingNumber))
	}
	return req, nil
}

// Track returns a request and its full status history by tracking number.
func (s *DocumentRequestService) Track(ctx context.Context, trackingNumber string) (*models.DocumentRequest, []models.RequestStatusLog, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	req, err := s.requests.GetByTracking(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "tracking number not found")
		}
		return nil, nil, err
	}
	history, err := s.requests.History(ctx, req.ID)
	if err != nil {
		return nil, nil, err
	}
	return req, history, nil
}

// Get returns one request by id.
func (s *DocumentRequestService) Get(ctx context.Context, id int64) (*models.DocumentRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document request not found")
		}
		return nil, err
	}
	return req, nil
}

// List returns requests matching the filter, newest first.
func (s *DocumentRequestService) List(ctx context.Context, filter models.DocumentRequestFilter) ([]models.DocumentRequest, error) {
	return s.requests.List(ctx, filter)
}

// History returns the status log for a request, oldest first.
func (s *DocumentRequestService) History(ctx context.Context, id int64) ([]models.RequestStatusLog, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.requests.History(ctx, id)
}

// UpdateStatus records a status change and its audit entry. Any
// caller-supplied status string is accepted and logged verbatim. Statuses
// that close the request stamp completed_at; it is never cleared afterwards.
func (s *DocumentRequestService) UpdateStatus(ctx context.Context, id int64, input UpdateRequestStatusInput) (*models.DocumentRequest, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status is required")
	}

	var completedAt *time.Time
	if models.RequestStatusCompletes(status) {
		now := s.now()
		completedAt = &now
	}

	log := &models.RequestStatusLog{Status: status, Notes: input.Notes, ChangedBy: input.ChangedBy}
	ok, err := s.requests.UpdateStatusWithLog(ctx, id, status, completedAt, log)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document request not found")
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document request status updated",
		zap.Int64("request_id", id),
		zap.String("status", status))

	if req.RequesterEmail != nil {
		s.notify(ctx, *req.RequesterEmail,
			fmt.Sprintf("Document Request Update - %s", req.TrackingNumber),
			fmt.Sprintf("Your request %s is now: %s.", req.TrackingNumber, status))
	}
	return req, nil
}

func (s *DocumentRequestService) notify(ctx context.Context, to, subject, body string) {
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		s.logger.Warn("notification mail failed", zap.String("to", to), zap.Error(err))
	}
}
