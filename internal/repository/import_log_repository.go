package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gco-office/gco-api/internal/models"
)

// ImportLogRepository persists one row per bulk-import operation.
type ImportLogRepository struct {
	db *sqlx.DB
}

// NewImportLogRepository constructs the repository.
func NewImportLogRepository(db *sqlx.DB) *ImportLogRepository {
	return &ImportLogRepository{db: db}
}

// Create inserts an import log outside any batch transaction. Used for
// Failed logs written after a rollback.
func (r *ImportLogRepository) Create(ctx context.Context, log *models.ImportLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO import_logs (import_type, filename, rows_imported, rows_failed, status, error_message, imported_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		log.ImportType,
		log.Filename,
		log.RowsImported,
		log.RowsFailed,
		log.Status,
		log.ErrorMessage,
		log.ImportedBy,
		log.CreatedAt,
	).Scan(&log.ID); err != nil {
		return fmt.Errorf("insert import log: %w", err)
	}
	return nil
}

// InsertTx writes the import log inside the batch transaction so the staged
// rows and their log commit together.
func (r *ImportLogRepository) InsertTx(ctx context.Context, tx *sqlx.Tx, log *models.ImportLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO import_logs (import_type, filename, rows_imported, rows_failed, status, error_message, imported_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		log.ImportType,
		log.Filename,
		log.RowsImported,
		log.RowsFailed,
		log.Status,
		log.ErrorMessage,
		log.ImportedBy,
		log.CreatedAt,
	).Scan(&log.ID); err != nil {
		return fmt.Errorf("insert import log: %w", err)
	}
	return nil
}

// List returns import logs newest-first.
func (r *ImportLogRepository) List(ctx context.Context, limit int) ([]models.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, import_type, filename, rows_imported, rows_failed, status, error_message, imported_by, created_at
FROM import_logs ORDER BY created_at DESC LIMIT $1`
	var logs []models.ImportLog
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("list import logs: %w", err)
	}
	return logs, nil
}
