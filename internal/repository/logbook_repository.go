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

const logbookColumns = `id, visitor_name, purpose, time_in, time_out, date, remarks, document_request_id, created_at`

// LogbookRepository persists visitor logbook entries.
type LogbookRepository struct {
	db *sqlx.DB
}

// NewLogbookRepository constructs the repository.
func NewLogbookRepository(db *sqlx.DB) *LogbookRepository {
	return &LogbookRepository{db: db}
}

// Create inserts a check-in row.
func (r *LogbookRepository) Create(ctx context.Context, e *models.LogbookEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create logbook entry: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertLogbookEntryTx(ctx, tx, e); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create logbook entry: %w", err)
	}
	return nil
}

// GetByID returns one entry.
func (r *LogbookRepository) GetByID(ctx context.Context, id int64) (*models.LogbookEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM logbook_entries WHERE id = $1`, logbookColumns)
	var e models.LogbookEntry
	if err := r.db.GetContext(ctx, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get logbook entry: %w", err)
	}
	return &e, nil
}

// CheckOut stamps time_out for an entry that has not checked out yet.
// Returns false when no such row exists (unknown id or already out).
func (r *LogbookRepository) CheckOut(ctx context.Context, id int64, ts time.Time) (bool, error) {
	const query = `UPDATE logbook_entries SET time_out = $1 WHERE id = $2 AND time_out IS NULL`
	res, err := r.db.ExecContext(ctx, query, ts, id)
	if err != nil {
		return false, fmt.Errorf("check out logbook entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check out logbook entry: %w", err)
	}
	return affected > 0, nil
}

// ListByDate returns entries for one calendar date, latest check-in first.
func (r *LogbookRepository) ListByDate(ctx context.Context, date time.Time) ([]models.LogbookEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM logbook_entries WHERE date = $1 ORDER BY time_in DESC`, logbookColumns)
	var entries []models.LogbookEntry
	if err := r.db.SelectContext(ctx, &entries, query, date); err != nil {
		return nil, fmt.Errorf("list logbook entries: %w", err)
	}
	return entries, nil
}

// ListActive returns today's visitors who have not checked out.
func (r *LogbookRepository) ListActive(ctx context.Context, date time.Time) ([]models.LogbookEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM logbook_entries WHERE date = $1 AND time_out IS NULL ORDER BY time_in ASC`, logbookColumns)
	var entries []models.LogbookEntry
	if err := r.db.SelectContext(ctx, &entries, query, date); err != nil {
		return nil, fmt.Errorf("list active visitors: %w", err)
	}
	return entries, nil
}

// ListRange returns entries within [from, to], latest check-in first.
func (r *LogbookRepository) ListRange(ctx context.Context, from, to time.Time) ([]models.LogbookEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM logbook_entries WHERE date >= $1 AND date <= $2 ORDER BY time_in DESC`, logbookColumns)
	var entries []models.LogbookEntry
	if err := r.db.SelectContext(ctx, &entries, query, from, to); err != nil {
		return nil, fmt.Errorf("list logbook range: %w", err)
	}
	return entries, nil
}

// ListAll returns every entry, latest check-in first. Used by the exporter.
func (r *LogbookRepository) ListAll(ctx context.Context) ([]models.LogbookEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM logbook_entries ORDER BY time_in DESC`, logbookColumns)
	var entries []models.LogbookEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list logbook entries: %w", err)
	}
	return entries, nil
}

// InsertTx stages an entry inside an import transaction.
func (r *LogbookRepository) InsertTx(ctx context.Context, tx *sqlx.Tx, e *models.LogbookEntry) error {
	return insertLogbookEntryTx(ctx, tx, e)
}

func insertLogbookEntryTx(ctx context.Context, tx *sqlx.Tx, e *models.LogbookEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO logbook_entries (visitor_name, purpose, time_in, time_out, date, remarks, document_request_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		e.VisitorName,
		e.Purpose,
		e.TimeIn,
		e.TimeOut,
		e.Date,
		e.Remarks,
		e.DocumentRequestID,
		e.CreatedAt,
	).Scan(&e.ID); err != nil {
		return fmt.Errorf("insert logbook entry: %w", err)
	}
	return nil
}
