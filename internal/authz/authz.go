// Package authz answers "may the caller do this" for named permissions.
// Handlers call Checker.Require with the permission guarding the operation;
// the permission set is resolved through a pluggable source so lookups can be
// served from PostgreSQL directly or through the Redis cache.
package authz

import (
	"context"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/botplane/botplane/internal/server/middleware"
)

// PermissionSource resolves the permission names held by a role.
// *postgres.RoleRepo and *redis.PermissionCache satisfy this interface.
type PermissionSource interface {
	PermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]string, error)
}

// Invalidator drops any cached permission set for a role. Handlers call it
// after mutating role-permission assignments.
type Invalidator interface {
	Invalidate(ctx context.Context, roleID uuid.UUID) error
}

// NoopInvalidator is used when no cache is configured.
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(context.Context, uuid.UUID) error { return nil }

type Checker struct {
	src PermissionSource
}

func NewChecker(src PermissionSource) *Checker {
	return &Checker{src: src}
}

// Require allows the request when the caller's role holds the named
// permission. A caller without a role, or with an empty permission set, is
// always denied.
func (c *Checker) Require(ctx context.Context, permission string) error {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return huma.Error401Unauthorized("authentication required")
	}

	if user.RoleID == nil {
		return huma.Error403Forbidden("you don't have permission for this action")
	}

	names, err := c.src.PermissionsForRole(ctx, *user.RoleID)
	if err != nil {
		return huma.Error500InternalServerError("failed to load permissions", err)
	}

	if !slices.Contains(names, permission) {
		return huma.Error403Forbidden("you don't have permission for this action")
	}

	return nil
}

// RequireRole allows the request when the caller's role name is one of the
// given roles. The role name comes from the access token claims.
func (c *Checker) RequireRole(ctx context.Context, roles ...string) error {
	if _, ok := middleware.UserFromContext(ctx); !ok {
		return huma.Error401Unauthorized("authentication required")
	}

	role, ok := middleware.RoleNameFromContext(ctx)
	if !ok || !slices.Contains(roles, role) {
		return huma.Error403Forbidden("you are not allowed")
	}

	return nil
}
