package models

import "time"

// ReportFormat selects the rendered output for report downloads.
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

// MonthlyReport is an aggregated monthly summary across all office
// transaction kinds. SummaryData holds the counters as JSON.
type MonthlyReport struct {
	ID          int64     `db:"id" json:"id"`
	ReportMonth int       `db:"report_month" json:"report_month"`
	ReportYear  int       `db:"report_year" json:"report_year"`
	ReportType  string    `db:"report_type" json:"report_type"`
	SummaryData *string   `db:"summary_data" json:"summary_data,omitempty"`
	FilePath    *string   `db:"file_path" json:"file_path,omitempty"`
	GeneratedAt time.Time `db:"generated_at" json:"generated_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// MonthlySummary is the decoded SummaryData payload.
type MonthlySummary struct {
	DocumentRequests int `json:"document_requests"`
	Tickets          int `json:"tickets"`
	Logbook          int `json:"logbook"`
	Appointments     int `json:"appointments"`
	Total            int `json:"total"`
}
