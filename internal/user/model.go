package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrInvalidRole        = errors.New("invalid role")
)

// Roles matching the database enum.
const (
	RoleOwner    = "owner"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

// ValidRoles lists every role a user may be registered with.
var ValidRoles = []string{RoleOwner, RoleManager, RoleCustomer}

// User represents a platform account scoped to a tenant.
type User struct {
	ID           string // UUID
	TenantID     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
