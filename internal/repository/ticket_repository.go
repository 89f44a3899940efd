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

const ticketColumns = `id, ticket_number, subject, description, requester_name, requester_email, status, priority, assigned_to, attachment_path, created_at, updated_at, resolved_at`

// TicketRepository persists help-desk tickets.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository constructs the repository.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create inserts a new ticket row.
func (r *TicketRepository) Create(ctx context.Context, t *models.Ticket) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create ticket: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertTicketTx(ctx, tx, t); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create ticket: %w", err)
	}
	return nil
}

// GetByID returns a ticket row by its identifier.
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id = $1`, ticketColumns)
	var t models.Ticket
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// List returns tickets newest-first.
func (r *TicketRepository) List(ctx context.Context) ([]models.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets ORDER BY created_at DESC`, ticketColumns)
	var tickets []models.Ticket
	if err := r.db.SelectContext(ctx, &tickets, query); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// Update sets status and assignee, stamping resolved_at when provided.
// Returns false without error when the ticket does not exist.
func (r *TicketRepository) Update(ctx context.Context, id int64, status string, assignedTo *string, resolvedAt *time.Time) (bool, error) {
	const query = `UPDATE tickets SET status = $1, assigned_to = $2, resolved_at = COALESCE($3, resolved_at), updated_at = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, status, assignedTo, resolvedAt, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("update ticket: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update ticket: %w", err)
	}
	return affected > 0, nil
}

// MaxID returns the highest ticket id, 0 when the table is empty. Seeds the
// ticket-number sequence.
func (r *TicketRepository) MaxID(ctx context.Context) (int64, error) {
	var max int64
	if err := r.db.GetContext(ctx, &max, `SELECT COALESCE(MAX(id), 0) FROM tickets`); err != nil {
		return 0, fmt.Errorf("max ticket id: %w", err)
	}
	return max, nil
}

// InsertTx stages a ticket inside an import transaction.
func (r *TicketRepository) InsertTx(ctx context.Context, tx *sqlx.Tx, t *models.Ticket) error {
	return insertTicketTx(ctx, tx, t)
}

func insertTicketTx(ctx context.Context, tx *sqlx.Tx, t *models.Ticket) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = models.TicketStatusOpen
	}
	if t.Priority == "" {
		t.Priority = models.TicketPriorityMedium
	}

	const query = `INSERT INTO tickets (ticket_number, subject, description, requester_name, requester_email, status, priority, assigned_to, attachment_path, created_at, updated_at, resolved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		t.TicketNumber,
		t.Subject,
		t.Description,
		t.RequesterName,
		t.RequesterEmail,
		t.Status,
		t.Priority,
		t.AssignedTo,
		t.AttachmentPath,
		t.CreatedAt,
		t.UpdatedAt,
		t.ResolvedAt,
	).Scan(&t.ID); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}
