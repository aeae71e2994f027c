package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/rbac"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-unit-tests", time.Hour)

	user := &models.User{
		ID:    "user-1",
		Email: "rep@rooherbals.lk",
		Role:  rbac.RoleSalesRep,
	}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != rbac.RoleSalesRep {
		t.Errorf("Role = %q, want %q", claims.Role, rbac.RoleSalesRep)
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-unit-tests", -time.Minute)

	token, err := manager.Generate(&models.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-one-secret-one-secret", time.Hour)
	other := NewJWTManager("secret-two-secret-two-secret", time.Hour)

	token, err := manager.Generate(&models.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
