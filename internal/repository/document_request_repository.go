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

const documentRequestColumns = `id, tracking_number, requester_name, requester_email, document_type, purpose, status, requested_at, completed_at, notes, user_id, created_at, updated_at`

// DocumentRequestRepository persists document requests and their status
// history.
type DocumentRequestRepository struct {
	db *sqlx.DB
}

// NewDocumentRequestRepository constructs the repository.
func NewDocumentRequestRepository(db *sqlx.DB) *DocumentRequestRepository {
	return &DocumentRequestRepository{db: db}
}

// Create inserts the request and its first status-log row in one
// transaction, so a request is never visible without its creation entry.
func (r *DocumentRequestRepository) Create(ctx context.Context, req *models.DocumentRequest, firstLog *models.RequestStatusLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create request: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertDocumentRequestTx(ctx, tx, req); err != nil {
		return err
	}

	firstLog.DocumentRequestID = req.ID
	if err := insertStatusLogTx(ctx, tx, firstLog); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create request: %w", err)
	}
	return nil
}

// GetByID returns a request row by its identifier.
func (r *DocumentRequestRepository) GetByID(ctx context.Context, id int64) (*models.DocumentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM document_requests WHERE id = $1`, documentRequestColumns)
	var req models.DocumentRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get document request: %w", err)
	}
	return &req, nil
}

// GetByTracking returns the request with the exact tracking number.
func (r *DocumentRequestRepository) GetByTracking(ctx context.Context, trackingNumber string) (*models.DocumentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM document_requests WHERE tracking_number = $1`, documentRequestColumns)
	var req models.DocumentRequest
	if err := r.db.GetContext(ctx, &req, query, trackingNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get request by tracking: %w", err)
	}
	return &req, nil
}

// List returns requests newest-first, optionally filtered by status and
// owning user.
func (r *DocumentRequestRepository) List(ctx context.Context, filter models.DocumentRequestFilter) ([]models.DocumentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM document_requests`, documentRequestColumns)
	var (
		clauses []string
		args    []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY requested_at DESC"

	var requests []models.DocumentRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("list document requests: %w", err)
	}
	return requests, nil
}

// UpdateStatusWithLog sets the new status (stamping completed_at when
// provided) and appends the audit row in one transaction. Returns false
// without error when the request does not exist.
func (r *DocumentRequestRepository) UpdateStatusWithLog(ctx context.Context, id int64, status string, completedAt *time.Time, log *models.RequestStatusLog) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin status update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var res sql.Result
	if completedAt != nil {
		res, err = tx.ExecContext(ctx,
			`UPDATE document_requests SET status = $1, completed_at = $2, updated_at = $3 WHERE id = $4`,
			status, *completedAt, time.Now().UTC(), id)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE document_requests SET status = $1, updated_at = $2 WHERE id = $3`,
			status, time.Now().UTC(), id)
	}
	if err != nil {
		return false, fmt.Errorf("update request status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update request status: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	log.DocumentRequestID = id
	if err := insertStatusLogTx(ctx, tx, log); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit status update: %w", err)
	}
	return true, nil
}

// History returns the full status-log sequence for a request, oldest first.
func (r *DocumentRequestRepository) History(ctx context.Context, requestID int64) ([]models.RequestStatusLog, error) {
	const query = `SELECT id, document_request_id, status, notes, changed_by, created_at
FROM request_status_logs WHERE document_request_id = $1 ORDER BY id ASC`
	var logs []models.RequestStatusLog
	if err := r.db.SelectContext(ctx, &logs, query, requestID); err != nil {
		return nil, fmt.Errorf("list status logs: %w", err)
	}
	return logs, nil
}

// TrackingNumbersLike returns all tracking numbers matching the SQL LIKE
// pattern. Used by the scan allocator to find the highest issued sequence.
func (r *DocumentRequestRepository) TrackingNumbersLike(ctx context.Context, pattern string) ([]string, error) {
	const query = `SELECT tracking_number FROM document_requests WHERE tracking_number LIKE $1`
	var numbers []string
	if err := r.db.SelectContext(ctx, &numbers, query, pattern); err != nil {
		return nil, fmt.Errorf("scan tracking numbers: %w", err)
	}
	return numbers, nil
}

// InsertTx stages a request inside an import transaction.
func (r *DocumentRequestRepository) InsertTx(ctx context.Context, tx *sqlx.Tx, req *models.DocumentRequest) error {
	return insertDocumentRequestTx(ctx, tx, req)
}

func insertDocumentRequestTx(ctx context.Context, tx *sqlx.Tx, req *models.DocumentRequest) error {
	now := time.Now().UTC()
	if req.RequestedAt.IsZero() {
		req.RequestedAt = now
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = models.RequestStatusPending
	}

	const query = `INSERT INTO document_requests (tracking_number, requester_name, requester_email, document_type, purpose, status, requested_at, completed_at, notes, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		req.TrackingNumber,
		req.RequesterName,
		req.RequesterEmail,
		req.DocumentType,
		req.Purpose,
		req.Status,
		req.RequestedAt,
		req.CompletedAt,
		req.Notes,
		req.UserID,
		req.CreatedAt,
		req.UpdatedAt,
	).Scan(&req.ID); err != nil {
		return fmt.Errorf("insert document request: %w", err)
	}
	return nil
}

func insertStatusLogTx(ctx context.Context, tx *sqlx.Tx, log *models.RequestStatusLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO request_status_logs (document_request_id, status, notes, changed_by, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		log.DocumentRequestID,
		log.Status,
		log.Notes,
		log.ChangedBy,
		log.CreatedAt,
	).Scan(&log.ID); err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}
	return nil
}
