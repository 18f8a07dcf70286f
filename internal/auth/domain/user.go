package domain

import (
	"time"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
)

// SystemAdminUsername is the well-known username of the seeded administrator.
const SystemAdminUsername = "admin"

type User struct {
	UID          string
	Username     string // unique, case-insensitive
	Email        string // unique, case-insensitive
	PasswordHash string // PHC encoded, never the plaintext
	Role         authz.Role
	IsActive     bool
	IsSystem     bool // the seeded admin; cannot be deleted, deactivated or demoted
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Protected reports whether policy forbids deleting or demoting u.
func (u User) Protected() bool {
	return u.IsSystem
}
