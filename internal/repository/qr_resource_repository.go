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

const qrResourceColumns = `id, name, description, image_filename, form_url, order_index, active, created_at, updated_at`

// QRResourceRepository persists QR code resources shown on the dashboard.
type QRResourceRepository struct {
	db *sqlx.DB
}

// NewQRResourceRepository constructs the repository.
func NewQRResourceRepository(db *sqlx.DB) *QRResourceRepository {
	return &QRResourceRepository{db: db}
}

// Create inserts a resource.
func (r *QRResourceRepository) Create(ctx context.Context, res *models.QRResource) error {
	now := time.Now().UTC()
	res.CreatedAt = now
	res.UpdatedAt = now

	const query = `INSERT INTO qr_resources (name, description, image_filename, form_url, order_index, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		res.Name,
		res.Description,
		res.ImageFilename,
		res.FormURL,
		res.OrderIndex,
		res.Active,
		res.CreatedAt,
		res.UpdatedAt,
	).Scan(&res.ID); err != nil {
		return fmt.Errorf("insert qr resource: %w", err)
	}
	return nil
}

// GetByID returns one resource.
func (r *QRResourceRepository) GetByID(ctx context.Context, id int64) (*models.QRResource, error) {
	query := fmt.Sprintf(`SELECT %s FROM qr_resources WHERE id = $1`, qrResourceColumns)
	var res models.QRResource
	if err := r.db.GetContext(ctx, &res, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get qr resource: %w", err)
	}
	return &res, nil
}

// List returns resources in display order. When activeOnly is set only
// active resources are returned.
func (r *QRResourceRepository) List(ctx context.Context, activeOnly bool) ([]models.QRResource, error) {
	query := fmt.Sprintf(`SELECT %s FROM qr_resources`, qrResourceColumns)
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY order_index ASC, id ASC`

	var resources []models.QRResource
	if err := r.db.SelectContext(ctx, &resources, query); err != nil {
		return nil, fmt.Errorf("list qr resources: %w", err)
	}
	return resources, nil
}

// Update rewrites the editable fields. Returns false when the resource does
// not exist.
func (r *QRResourceRepository) Update(ctx context.Context, res *models.QRResource) (bool, error) {
	res.UpdatedAt = time.Now().UTC()
	const query = `UPDATE qr_resources SET name = $1, description = $2, image_filename = $3, form_url = $4, order_index = $5, active = $6, updated_at = $7 WHERE id = $8`
	out, err := r.db.ExecContext(ctx, query,
		res.Name, res.Description, res.ImageFilename, res.FormURL, res.OrderIndex, res.Active, res.UpdatedAt, res.ID)
	if err != nil {
		return false, fmt.Errorf("update qr resource: %w", err)
	}
	affected, err := out.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update qr resource: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a resource. Returns false when it does not exist.
func (r *QRResourceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM qr_resources WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete qr resource: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete qr resource: %w", err)
	}
	return affected > 0, nil
}
