package models

import "time"

// Ticket statuses and priorities.
const (
	TicketStatusOpen       = "Open"
	TicketStatusInProgress = "In Progress"
	TicketStatusResolved   = "Resolved"
	TicketStatusClosed     = "Closed"

	TicketPriorityLow    = "Low"
	TicketPriorityMedium = "Medium"
	TicketPriorityHigh   = "High"
)

// Ticket is a help-desk support ticket. TicketNumber is the public
// identifier, format TKT-<yyyymmdd>-<4-digit seq>.
type Ticket struct {
	ID             int64      `db:"id" json:"id"`
	TicketNumber   string     `db:"ticket_number" json:"ticket_number"`
	Subject        string     `db:"subject" json:"subject"`
	Description    *string    `db:"description" json:"description,omitempty"`
	RequesterName  string     `db:"requester_name" json:"requester_name"`
	RequesterEmail *string    `db:"requester_email" json:"requester_email,omitempty"`
	Status         string     `db:"status" json:"status"`
	Priority       string     `db:"priority" json:"priority"`
	AssignedTo     *string    `db:"assigned_to" json:"assigned_to,omitempty"`
	AttachmentPath *string    `db:"attachment_path" json:"attachment_path,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	ResolvedAt     *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
}
