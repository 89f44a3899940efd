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

type logbookStore interface {
	Create(ctx context.Context, e *models.LogbookEntry) error
	GetByID(ctx context.Context, id int64) (*models.LogbookEntry, error)
	CheckOut(ctx context.Context, id int64, ts time.Time) (bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.LogbookEntry, error)
	ListActive(ctx context.Context, date time.Time) ([]models.LogbookEntry, error)
	ListRange(ctx context.Context, from, to time.Time) ([]models.LogbookEntry, error)
}

// CheckInInput carries a visitor check-in.
type CheckInInput struct {
	VisitorName       string
	Purpose           *string
	Remarks           *string
	DocumentRequestID *int64
}

// LogbookService owns the visitor logbook.
type LogbookService struct {
	logbook logbookStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewLogbookService constructs the service.
func NewLogbookService(logbook logbookStore, logger *zap.Logger) *LogbookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogbookService{
		logbook: logbook,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CheckIn records a visitor arrival stamped at the current time.
func (s *LogbookService) CheckIn(ctx context.Context, input CheckInInput) (*models.LogbookEntry, error) {
	input.VisitorName = strings.TrimSpace(input.VisitorName)
	if input.VisitorName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "visitor name is required")
	}

	now := s.now()
	entry := &models.LogbookEntry{
		VisitorName:       input.VisitorName,
		Purpose:           input.Purpose,
		TimeIn:            now,
		Date:              now.Truncate(24 * time.Hour),
		Remarks:           input.Remarks,
		DocumentRequestID: input.DocumentRequestID,
	}
	if err := s.logbook.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.logger.Info("visitor checked in", zap.Int64("entry_id", entry.ID))
	return entry, nil
}

// CheckOut stamps a visitor departure. Checking out twice or with an
// unknown id is reported as not found.
func (s *LogbookService) CheckOut(ctx context.Context, id int64) (*models.LogbookEntry, error) {
	ok, err := s.logbook.CheckOut(ctx, id, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "active logbook entry not found")
	}
	entry, err := s.logbook.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "logbook entry not found")
		}
		return nil, err
	}
	return entry, nil
}

// Today returns today's entries.
func (s *LogbookService) Today(ctx context.Context) ([]models.LogbookEntry, error) {
	return s.logbook.ListByDate(ctx, s.now().Truncate(24*time.Hour))
}

// Active returns today's visitors who have not checked out.
func (s *LogbookService) Active(ctx context.Context) ([]models.LogbookEntry, error) {
	return s.logbook.ListActive(ctx, s.now().Truncate(24*time.Hour))
}

// Range returns entries between two dates inclusive.
func (s *LogbookService) Range(ctx context.Context, from, to time.Time) ([]models.LogbookEntry, error) {
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date precedes start date")
	}
	return s.logbook.ListRange(ctx, from, to)
}
