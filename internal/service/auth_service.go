package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rooherbals/backend/internal/auth"
	"github.com/rooherbals/backend/internal/models"
	"github.com/rooherbals/backend/internal/rbac"
)

// AuthService handles staff registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Session is the result of a successful login: the user, their bearer
// token, and the capability tokens the client uses to gate its UI.
type Session struct {
	User         *models.User
	Token        string
	Capabilities []rbac.Capability
}

// Register creates a new staff account.
func (s *AuthService) Register(ctx context.Context, email, fullName, password string, role rbac.Role) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationErr("a valid email is required")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, validationErr("full name is required")
	}

	user, err := s.authenticator.Register(ctx, email, fullName, password, role)
	if err != nil {
		slog.Warn("Registration failed", "email", email, "error", err)
		return nil, err
	}
	slog.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login authenticates a user and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Token generation failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	slog.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return &Session{
		User:         user,
		Token:        token,
		Capabilities: rbac.Capabilities(user.Role),
	}, nil
}
