package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin UserRole = "Admin"
	RoleStaff UserRole = "Staff"
	RoleUser  UserRole = "User"
)

// IsStaff reports whether the role can perform administrative actions.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User represents an application account stored in the users table.
type User struct {
	ID                 int64      `db:"id" json:"id"`
	Username           string     `db:"username" json:"username"`
	Email              string     `db:"email" json:"email"`
	PasswordHash       string     `db:"password_hash" json:"-"`
	Role               UserRole   `db:"role" json:"role"`
	FullName           string     `db:"full_name" json:"full_name"`
	Active             bool       `db:"active" json:"active"`
	EmailVerified      bool       `db:"email_verified" json:"email_verified"`
	VerificationToken  *string    `db:"verification_token" json:"-"`
	VerificationExpiry *time.Time `db:"verification_expires" json:"-"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
