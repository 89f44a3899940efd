package models

import "time"

// LogbookEntry is one visitor check-in/check-out record.
type LogbookEntry struct {
	ID                int64      `db:"id" json:"id"`
	VisitorName       string     `db:"visitor_name" json:"visitor_name"`
	Purpose           *string    `db:"purpose" json:"purpose,omitempty"`
	TimeIn            time.Time  `db:"time_in" json:"time_in"`
	TimeOut           *time.Time `db:"time_out" json:"time_out,omitempty"`
	Date              time.Time  `db:"date" json:"date"`
	Remarks           *string    `db:"remarks" json:"remarks,omitempty"`
	DocumentRequestID *int64     `db:"document_request_id" json:"document_request_id,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}
