package domain

import "time"

// AdminRole enumerates dashboard roles.
type AdminRole string

const (
	AdminRoleAdmin AdminRole = "admin"
)

// Admin is a dashboard operator account.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         AdminRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
