package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rooherbals/backend/internal/rbac"
)

// User represents a staff account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login.
	Email string

	// FullName is the display name of the user.
	FullName string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string

	// Role determines the user's capability set (see the rbac package).
	Role rbac.Role

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last account change.
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, fullName, passwordHash string, role rbac.Role) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
