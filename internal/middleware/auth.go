package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rooherbals/backend/internal/auth"
	"github.com/rooherbals/backend/internal/rbac"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
	// RoleKey is the context key for storing the authenticated user's role.
	RoleKey contextKey = "role"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// GetRole extracts the user role from the context.
// Returns the empty role (which holds no capabilities) if not found.
func GetRole(ctx context.Context) rbac.Role {
	role, _ := ctx.Value(RoleKey).(rbac.Role)
	return role
}

// WithIdentity returns a context carrying the given identity. Used by the
// auth middleware and by tests that bypass token validation.
func WithIdentity(ctx context.Context, userID, email string, role rbac.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, EmailKey, email)
	return context.WithValue(ctx, RoleKey, role)
}

// Unauthorized is the response hook the auth middleware calls on failure.
// The server package injects its JSON error envelope here so middleware
// stays response-format agnostic.
type Unauthorized func(w http.ResponseWriter, status int, code, message string)

// RequireAuth returns middleware that validates bearer tokens and requires
// authentication. It extracts the token from the Authorization header,
// validates it, and adds the user ID, email, and role to the request
// context.
func RequireAuth(jwtManager *auth.JWTManager, deny Unauthorized) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				deny(w, http.StatusUnauthorized, "missing_token", auth.ErrMissingToken.Error())
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				deny(w, http.StatusUnauthorized, "invalid_token", auth.ErrInvalidToken.Error())
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				deny(w, http.StatusUnauthorized, "invalid_token", err.Error())
				return
			}

			ctx := WithIdentity(r.Context(), claims.UserID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCapability returns middleware that denies the request unless the
// authenticated role holds the capability. Must run after RequireAuth.
// The client uses the same capability tokens to decide which affordances to
// render; this is the enforcement point behind them.
func RequireCapability(capability rbac.Capability, deny Unauthorized) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetRole(r.Context())
			if !rbac.HasCapability(role, capability) {
				deny(w, http.StatusForbidden, "forbidden", "role does not permit this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
