package auth

import (
	"context"

	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/rbac"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new staff account with the given email, credential
	// and role. The credential format depends on the implementation.
	Register(ctx context.Context, email, fullName, credential string, role rbac.Role) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
