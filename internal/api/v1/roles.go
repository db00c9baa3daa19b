package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/botplane/botplane/internal/authz"
	"github.com/botplane/botplane/internal/domain"
)

type CreateRoleInput struct {
	Body struct {
		RoleName string `json:"role_name" minLength:"1" maxLength:"255" doc:"Role name"`
	}
}

type CreateRoleOutput struct {
	Body *domain.Role
}

type ListRolesInput struct{}

type ListRolesOutput struct {
	Body []*domain.Role
}

type ToggleRoleInput struct {
	ID uuid.UUID `path:"id" doc:"Role ID"`
}

type ToggleRoleOutput struct {
	Body *domain.Role
}

type CreatePermissionInput struct {
	Body struct {
		PermissionName string `json:"permission_name" minLength:"1" maxLength:"255" doc:"Permission name"`
	}
}

type CreatePermissionOutput struct {
	Body *domain.Permission
}

type ListPermissionsInput struct{}

type ListPermissionsOutput struct {
	Body []*domain.Permission
}

type TogglePermissionInput struct {
	ID uuid.UUID `path:"id" doc:"Permission ID"`
}

type TogglePermissionOutput struct {
	Body *domain.Permission
}

type AssignPermissionsInput struct {
	Body struct {
		RoleID        uuid.UUID   `json:"role_id" doc:"Role ID"`
		PermissionIDs []uuid.UUID `json:"permission_ids" minItems:"1" doc:"Permissions to grant"`
	}
}

type AssignPermissionsOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type UnassignPermissionInput struct {
	Body struct {
		RoleID       uuid.UUID `json:"role_id" doc:"Role ID"`
		PermissionID uuid.UUID `json:"permission_id" doc:"Permission to revoke"`
	}
}

type UnassignPermissionOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type GetRolePermissionsInput struct {
	ID uuid.UUID `path:"id" doc:"Role ID"`
}

type GetRolePermissionsOutput struct {
	Body struct {
		RoleName    string   `json:"role_name"`
		Permissions []string `json:"permissions"`
	}
}

func RegisterRoleRoutes(api huma.API, store DataStore, checker *authz.Checker, invalidator authz.Invalidator) {
	huma.Register(api, huma.Operation{
		OperationID: "list-roles",
		Method:      http.MethodGet,
		Path:        "/roles",
		Summary:     "List all roles",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, _ *ListRolesInput) (*ListRolesOutput, error) {
		if err := checker.Require(ctx, "getAllRoles"); err != nil {
			return nil, err
		}

		roles, err := store.Roles().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list roles", err)
		}

		return &ListRolesOutput{Body: roles}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-role",
		Method:        http.MethodPost,
		Path:          "/roles",
		Summary:       "Create a new role",
		Tags:          []string{"Roles"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateRoleInput) (*CreateRoleOutput, error) {
		if err := checker.Require(ctx, "createRole"); err != nil {
			return nil, err
		}

		r := &domain.Role{
			ID:       uuid.New(),
			RoleName: input.Body.RoleName,
		}

		if err := store.Roles().Create(ctx, r); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("role already exists")
			}
			return nil, huma.Error500InternalServerError("failed to create role", err)
		}

		return &CreateRoleOutput{Body: r}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-role",
		Method:      http.MethodDelete,
		Path:        "/roles/{id}",
		Summary:     "Toggle a role's deleted flag",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, input *ToggleRoleInput) (*ToggleRoleOutput, error) {
		r, err := store.Roles().ToggleDeleted(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("role not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete role", err)
		}

		return &ToggleRoleOutput{Body: r}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-permissions",
		Method:      http.MethodGet,
		Path:        "/roles/permissions",
		Summary:     "List all permissions",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, _ *ListPermissionsInput) (*ListPermissionsOutput, error) {
		if err := checker.Require(ctx, "getAllPermissions"); err != nil {
			return nil, err
		}

		permissions, err := store.Permissions().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list permissions", err)
		}

		return &ListPermissionsOutput{Body: permissions}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-permission",
		Method:        http.MethodPost,
		Path:          "/roles/permissions",
		Summary:       "Create a new permission",
		Tags:          []string{"Roles"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreatePermissionInput) (*CreatePermissionOutput, error) {
		if err := checker.Require(ctx, "createPermission"); err != nil {
			return nil, err
		}

		p := &domain.Permission{
			ID:             uuid.New(),
			PermissionName: input.Body.PermissionName,
		}

		if err := store.Permissions().Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("permission already exists")
			}
			return nil, huma.Error500InternalServerError("failed to create permission", err)
		}

		return &CreatePermissionOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-permission",
		Method:      http.MethodDelete,
		Path:        "/roles/permissions/{id}",
		Summary:     "Toggle a permission's deleted flag",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, input *TogglePermissionInput) (*TogglePermissionOutput, error) {
		p, err := store.Permissions().ToggleDeleted(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("permission not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete permission", err)
		}

		return &TogglePermissionOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-permissions-to-role",
		Method:      http.MethodPost,
		Path:        "/roles/assign-permissions",
		Summary:     "Grant permissions to a role",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, input *AssignPermissionsInput) (*AssignPermissionsOutput, error) {
		if err := checker.Require(ctx, "assignPermissionsToRole"); err != nil {
			return nil, err
		}

		if _, err := store.Roles().GetByID(ctx, input.Body.RoleID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("role not found")
			}
			return nil, huma.Error500InternalServerError("failed to get role", err)
		}

		if err := store.Roles().AssignPermissions(ctx, input.Body.RoleID, input.Body.PermissionIDs); err != nil {
			return nil, huma.Error500InternalServerError("failed to assign permissions", err)
		}

		_ = invalidator.Invalidate(ctx, input.Body.RoleID)

		out := &AssignPermissionsOutput{}
		out.Body.Message = "permissions assigned"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "unassign-permission-from-role",
		Method:      http.MethodPost,
		Path:        "/roles/unassign-permission",
		Summary:     "Revoke a permission from a role",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, input *UnassignPermissionInput) (*UnassignPermissionOutput, error) {
		if err := store.Roles().UnassignPermission(ctx, input.Body.RoleID, input.Body.PermissionID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("permission not assigned to role")
			}
			return nil, huma.Error500InternalServerError("failed to unassign permission", err)
		}

		_ = invalidator.Invalidate(ctx, input.Body.RoleID)

		out := &UnassignPermissionOutput{}
		out.Body.Message = "permission unassigned"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-role-permissions",
		Method:      http.MethodGet,
		Path:        "/roles/permissions-by-role/{id}",
		Summary:     "List the permission names held by a role",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, input *GetRolePermissionsInput) (*GetRolePermissionsOutput, error) {
		if err := checker.Require(ctx, "getPermissionsByRole"); err != nil {
			return nil, err
		}

		role, err := store.Roles().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("role not found")
			}
			return nil, huma.Error500InternalServerError("failed to get role", err)
		}

		names, err := store.Roles().PermissionsForRole(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list role permissions", err)
		}

		out := &GetRolePermissionsOutput{}
		out.Body.RoleName = role.RoleName
		out.Body.Permissions = names
		return out, nil
	})
}
