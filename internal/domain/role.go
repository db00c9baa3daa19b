package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID        uuid.UUID `json:"role_id"`
	RoleName  string    `json:"role_name"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

type Permission struct {
	ID             uuid.UUID `json:"permission_id"`
	PermissionName string    `json:"permission_name"`
	IsDeleted      bool      `json:"is_deleted"`
	CreatedAt      time.Time `json:"created_at"`
}

type RoleRepository interface {
	Create(ctx context.Context, r *Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
	ToggleDeleted(ctx context.Context, id uuid.UUID) (*Role, error)

	AssignPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error
	UnassignPermission(ctx context.Context, roleID, permissionID uuid.UUID) error
	// PermissionsForRole returns the names of every permission held by the role.
	// An unknown role yields an empty set, not an error.
	PermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]string, error)
}

type PermissionRepository interface {
	Create(ctx context.Context, p *Permission) error
	List(ctx context.Context) ([]*Permission, error)
	ToggleDeleted(ctx context.Context, id uuid.UUID) (*Permission, error)
}
