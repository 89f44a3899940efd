package models

import "time"

// Import categories recorded in import logs.
const (
	ImportTypeDocumentRequests = "document_requests"
	ImportTypeTickets          = "tickets"
	ImportTypeLogbook          = "logbook"
	ImportTypeSurveyResponses  = "survey_responses"
)

// Import outcome statuses.
const (
	ImportStatusSuccess = "Success"
	ImportStatusPartial = "Partial"
	ImportStatusFailed  = "Failed"
)

// ImportLog records one bulk-import operation. Rows are written once and
// never mutated.
type ImportLog struct {
	ID           int64     `db:"id" json:"id"`
	ImportType   string    `db:"import_type" json:"import_type"`
	Filename     string    `db:"filename" json:"filename"`
	RowsImported int       `db:"rows_imported" json:"rows_imported"`
	RowsFailed   int       `db:"rows_failed" json:"rows_failed"`
	Status       string    `db:"status" json:"status"`
	ErrorMessage *string   `db:"error_message" json:"error_message,omitempty"`
	ImportedBy   *string   `db:"imported_by" json:"imported_by,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// DeriveImportStatus maps batch counters to the logged outcome.
func DeriveImportStatus(imported, failed int) string {
	if failed == 0 {
		return ImportStatusSuccess
	}
	if imported > 0 {
		return ImportStatusPartial
	}
	return ImportStatusFailed
}
