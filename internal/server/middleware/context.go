package middleware

import (
	"context"

	"github.com/botplane/botplane/internal/domain"
)

type contextKey string

const (
	ContextKeyUser     contextKey = "user"
	ContextKeyRoleName contextKey = "role_name"
)

// UserFromContext returns the authenticated user's record, loaded fresh from
// the store by the Auth middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	v, ok := ctx.Value(ContextKeyUser).(*domain.User)
	return v, ok
}

// RoleNameFromContext returns the caller's role name from the access token
// claims. It may be empty for users without a role.
func RoleNameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyRoleName).(string)
	return v, ok
}
