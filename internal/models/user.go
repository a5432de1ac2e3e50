package models

import "time"

// UserRole represents the privilege tiers of the RBAC system.
type UserRole string

const (
	// RoleResponsable is the ordinary responsible-party tier.
	RoleResponsable UserRole = "RESPONSABLE"
	// RoleDirectivo is the elevated tier gating year and range queries.
	RoleDirectivo UserRole = "DIRECTIVO"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
