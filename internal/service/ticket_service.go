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

type ticketStore interface {
	Create(ctx context.Context, t *models.Ticket) error
	GetByID(ctx context.Context, id int64) (*models.Ticket, error)
	List(ctx context.Context) ([]models.Ticket, error)
	Update(ctx context.Context, id int64, status string, assignedTo *string, resolvedAt *time.Time) (bool, error)
	MaxID(ctx context.Context) (int64, error)
}

// CreateTicketInput carries a new help-desk ticket submission.
type CreateTicketInput struct {
	Subject        string
	Description    *string
	RequesterName  string
	RequesterEmail *string
	Priority       string
	AttachmentPath *string
}

// TicketService owns the help-desk ticket lifecycle.
type TicketService struct {
	tickets ticketStore
	mailer  Mailer
	logger  *zap.Logger
	now     func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(tickets ticketStore, mailer Mailer, logger *zap.Logger) *TicketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mailer == nil {
		mailer = NewLogMailer(logger)
	}
	return &TicketService{
		tickets: tickets,
		mailer:  mailer,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create numbers and persists a new ticket.
func (s *TicketService) Create(ctx context.Context, input CreateTicketInput) (*models.Ticket, error) {
	input.Subject = strings.TrimSpace(input.Subject)
	input.RequesterName = strings.TrimSpace(input.RequesterName)
	if input.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject is required")
	}
	if input.RequesterName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "requester name is required")
	}
	priority := strings.TrimSpace(input.Priority)
	if priority == "" {
		priority = models.TicketPriorityMedium
	}

	maxID, err := s.tickets.MaxID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ticket := &models.Ticket{
		TicketNumber:   FormatTicketNumber(now, maxID+1),
		Subject:        input.Subject,
		Description:    input.Description,
		RequesterName:  input.RequesterName,
		RequesterEmail: input.RequesterEmail,
		Status:         models.TicketStatusOpen,
		Priority:       priority,
		AttachmentPath: input.AttachmentPath,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.String("ticket_number", ticket.TicketNumber),
		zap.String("priority", ticket.Priority))

	if ticket.RequesterEmail != nil {
		if err := s.mailer.Send(ctx, *ticket.RequesterEmail,
			"Ticket Received - "+ticket.TicketNumber,
			"Your ticket has been received. Reference: "+ticket.TicketNumber); err != nil {
			s.logger.Warn("ticket notification failed", zap.Error(err))
		}
	}
	return ticket, nil
}

// Get returns one ticket.
func (s *TicketService) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "ticket not found")
		}
		return nil, err
	}
	return ticket, nil
}

// List returns all tickets, newest first.
func (s *TicketService) List(ctx context.Context) ([]models.Ticket, error) {
	return s.tickets.List(ctx)
}

// Update changes status and assignee. Reaching Resolved or Closed stamps
// resolved_at; it is never cleared afterwards.
func (s *TicketService) Update(ctx context.Context, id int64, status string, assignedTo *string) (*models.Ticket, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status is required")
	}

	var resolvedAt *time.Time
	if status == models.TicketStatusResolved || status == models.TicketStatusClosed {
		now := s.now()
		resolvedAt = &now
	}

	ok, err := s.tickets.Update(ctx, id, status, assignedTo, resolvedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "ticket not found")
	}
	return s.Get(ctx, id)
}
