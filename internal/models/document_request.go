package models

import "time"

// Document request statuses. The status column is free text by design: the
// lifecycle service accepts and records any caller-supplied value, these
// constants only name the conventional flow.
const (
	RequestStatusPending    = "Pending"
	RequestStatusProcessing = "Processing"
	RequestStatusReady      = "Ready"
	RequestStatusClaimed    = "Claimed"
	RequestStatusCancelled  = "Cancelled"
)

// DocumentRequest is one citizen/student request for an official document.
// TrackingNumber is the public identifier, format GCO-<year>-<5-digit seq>.
type DocumentRequest struct {
	ID             int64      `db:"id" json:"id"`
	TrackingNumber string     `db:"tracking_number" json:"tracking_number"`
	RequesterName  string     `db:"requester_name" json:"requester_name"`
	RequesterEmail *string    `db:"requester_email" json:"requester_email,omitempty"`
	DocumentType   string     `db:"document_type" json:"document_type"`
	Purpose        *string    `db:"purpose" json:"purpose,omitempty"`
	Status         string     `db:"status" json:"status"`
	RequestedAt    time.Time  `db:"requested_at" json:"requested_at"`
	CompletedAt    *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	UserID         *int64     `db:"user_id" json:"user_id,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// RequestStatusCompletes reports whether the status closes out a request. CompletedAt is
// stamped exactly when the request first reaches one of these states.
func RequestStatusCompletes(status string) bool {
	switch status {
	case RequestStatusReady, RequestStatusClaimed, RequestStatusCancelled:
		return true
	}
	return false
}

// RequestStatusLog is one immutable audit record per status change, including
// the creation entry. Rows are append-only and cascade-deleted with their
// owning request.
type RequestStatusLog struct {
	ID                int64     `db:"id" json:"id"`
	DocumentRequestID int64     `db:"document_request_id" json:"document_request_id"`
	Status            string    `db:"status" json:"status"`
	Notes             *string   `db:"notes" json:"notes,omitempty"`
	ChangedBy         *string   `db:"changed_by" json:"changed_by,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// DocumentRequestFilter captures list criteria for document requests.
type DocumentRequestFilter struct {
	Status string
	UserID *int64
}
