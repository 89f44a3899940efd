package models

import "time"

// QRResource is an admin-uploaded QR code or form link image shown on the
// user dashboard (e.g. NSSIB, Excuse Slip).
type QRResource struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   *string   `db:"description" json:"description,omitempty"`
	ImageFilename string    `db:"image_filename" json:"image_filename"`
	FormURL       *string   `db:"form_url" json:"form_url,omitempty"`
	OrderIndex    int       `db:"order_index" json:"order_index"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
