package models

import "time"

// Appointment statuses.
const (
	AppointmentStatusPending   = "Pending"
	AppointmentStatusApproved  = "Approved"
	AppointmentStatusRejected  = "Rejected"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCancelled = "Cancelled"
)

// AppointmentTypes lists the bookable appointment categories.
var AppointmentTypes = []string{"Online", "Walk-in", "Consultation", "Counseling", "Document Request", "Others"}

// AppointmentTimeSlots are the half-hour office slots open for booking.
var AppointmentTimeSlots = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// Appointment is an online appointment booking.
type Appointment struct {
	ID              int64     `db:"id" json:"id"`
	UserID          *int64    `db:"user_id" json:"user_id,omitempty"`
	RequesterName   string    `db:"requester_name" json:"requester_name"`
	RequesterEmail  string    `db:"requester_email" json:"requester_email"`
	RequesterPhone  *string   `db:"requester_phone" json:"requester_phone,omitempty"`
	AppointmentType string    `db:"appointment_type" json:"appointment_type"`
	Purpose         *string   `db:"purpose" json:"purpose,omitempty"`
	PreferredDate   time.Time `db:"preferred_date" json:"preferred_date"`
	PreferredTime   string    `db:"preferred_time" json:"preferred_time"`
	Status          string    `db:"status" json:"status"`
	AdminNotes      *string   `db:"admin_notes" json:"admin_notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
