package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/botplane/botplane/internal/auth"
	"github.com/botplane/botplane/internal/authz"
	"github.com/botplane/botplane/internal/domain"
)

type CreateUserInput struct {
	Body struct {
		Email      string     `json:"email" format:"email" maxLength:"255" doc:"User email"`
		Password   string     `json:"password" minLength:"8" maxLength:"128" doc:"Password"` //nolint:gosec // G117: user creation DTO
		FullName   string     `json:"full_name" minLength:"1" maxLength:"255" doc:"Display name"`
		Age        int        `json:"age,omitempty" minimum:"0" doc:"Age"`
		SoldeTotal int64      `json:"solde_total,omitempty" minimum:"0" doc:"Initial solde"`
		RoleID     *uuid.UUID `json:"role_id,omitempty" doc:"Role ID"`
		DomaineID  *uuid.UUID `json:"domaine_id,omitempty" doc:"Domaine ID"`
		PackageID  *uuid.UUID `json:"package_id,omitempty" doc:"Package ID"`
	}
}

type CreateUserOutput struct {
	Body *domain.User
}

type ListUsersInput struct{}

type ListUsersOutput struct {
	Body []*domain.UserWithNames
}

type GetUserInput struct {
	ID uuid.UUID `path:"id" doc:"User ID"`
}

type GetUserOutput struct {
	Body *domain.User
}

type UpdateUserInput struct {
	ID   uuid.UUID `path:"id" doc:"User ID"`
	Body struct {
		FullName   string `json:"full_name,omitempty" maxLength:"255" doc:"Display name"`
		Age        *int   `json:"age,omitempty" doc:"Age"`
		SoldeTotal *int64 `json:"solde_total,omitempty" minimum:"0" doc:"Solde"`
	}
}

type UpdateUserOutput struct {
	Body *domain.User
}

type ToggleUserInput struct {
	ID uuid.UUID `path:"id" doc:"User ID"`
}

type ToggleUserOutput struct {
	Body *domain.User
}

type AssignPackageToUsersInput struct {
	Body struct {
		PackageID uuid.UUID   `json:"package_id" doc:"Package ID"`
		UserIDs   []uuid.UUID `json:"user_ids" minItems:"1" doc:"Users to assign"`
	}
}

type AssignPackageToUsersOutput struct {
	Body struct {
		Results []domain.PackageAssignment `json:"results"`
	}
}

type AssignDomaineToUsersInput struct {
	Body struct {
		DomaineID uuid.UUID   `json:"domaine_id" doc:"Domaine ID"`
		UserIDs   []uuid.UUID `json:"user_ids" minItems:"1" doc:"Users to assign"`
	}
}

type AssignDomaineToUsersOutput struct {
	Body []*domain.User
}

type AssignWorkspaceToUsersInput struct {
	Body struct {
		WorkspaceID uuid.UUID   `json:"workspace_id" doc:"Workspace ID"`
		UserIDs     []uuid.UUID `json:"user_ids" minItems:"1" doc:"Users to add"`
	}
}

type AssignWorkspaceToUsersOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type AssignRoleToUsersInput struct {
	Body struct {
		RoleID  uuid.UUID   `json:"role_id" doc:"Role ID"`
		UserIDs []uuid.UUID `json:"user_ids" minItems:"1" doc:"Users to assign"`
	}
}

type AssignRoleToUsersOutput struct {
	Body []*domain.User
}

func RegisterUserRoutes(api huma.API, store DataStore, checker *authz.Checker) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-user",
		Method:        http.MethodPost,
		Path:          "/users",
		Summary:       "Create a new user",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
		if err := checker.Require(ctx, "createUser"); err != nil {
			return nil, err
		}

		if _, err := store.Users().GetByEmail(ctx, input.Body.Email); err == nil {
			return nil, huma.Error409Conflict("user already exists")
		}

		hash, err := auth.HashPassword(input.Body.Password)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to hash password", err)
		}

		user := &domain.User{
			ID:           uuid.New(),
			Email:        input.Body.Email,
			PasswordHash: hash,
			FullName:     input.Body.FullName,
			Age:          input.Body.Age,
			SoldeTotal:   input.Body.SoldeTotal,
			RoleID:       input.Body.RoleID,
			DomaineID:    input.Body.DomaineID,
			PackageID:    input.Body.PackageID,
			IsActive:     true,
		}

		if createErr := store.Users().Create(ctx, user); createErr != nil {
			if errors.Is(createErr, domain.ErrConflict) {
				return nil, huma.Error409Conflict("user already exists")
			}
			return nil, huma.Error500InternalServerError("failed to create user", createErr)
		}

		return &CreateUserOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List all users",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *ListUsersInput) (*ListUsersOutput, error) {
		if err := checker.Require(ctx, "getAllUsers"); err != nil {
			return nil, err
		}

		users, err := store.Users().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list users", err)
		}

		return &ListUsersOutput{Body: users}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/users/{id}",
		Summary:     "Get a user by ID",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *GetUserInput) (*GetUserOutput, error) {
		if err := checker.Require(ctx, "getUserById"); err != nil {
			return nil, err
		}

		user, err := store.Users().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to get user", err)
		}

		return &GetUserOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-user",
		Method:      http.MethodPut,
		Path:        "/users/{id}",
		Summary:     "Update a user",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UpdateUserInput) (*UpdateUserOutput, error) {
		if err := checker.Require(ctx, "updateUser"); err != nil {
			return nil, err
		}

		existing, err := store.Users().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to get user", err)
		}

		if input.Body.FullName != "" {
			existing.FullName = input.Body.FullName
		}
		if input.Body.Age != nil {
			existing.Age = *input.Body.Age
		}
		if input.Body.SoldeTotal != nil {
			existing.SoldeTotal = *input.Body.SoldeTotal
		}

		if updateErr := store.Users().Update(ctx, existing); updateErr != nil {
			return nil, huma.Error500InternalServerError("failed to update user", updateErr)
		}

		return &UpdateUserOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-user",
		Method:      http.MethodDelete,
		Path:        "/users/{id}",
		Summary:     "Toggle a user's deleted flag",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *ToggleUserInput) (*ToggleUserOutput, error) {
		if err := checker.Require(ctx, "deleteUser"); err != nil {
			return nil, err
		}

		user, err := store.Users().ToggleDeleted(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete user", err)
		}

		return &ToggleUserOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "active-desactive-user",
		Method:      http.MethodPatch,
		Path:        "/users/active-desactive/{id}",
		Summary:     "Toggle a user's active flag",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *ToggleUserInput) (*ToggleUserOutput, error) {
		if err := checker.Require(ctx, "activeDesactiveUser"); err != nil {
			return nil, err
		}

		user, err := store.Users().ToggleActive(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to toggle user", err)
		}

		return &ToggleUserOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-package-to-users",
		Method:      http.MethodPost,
		Path:        "/users/assign-package",
		Summary:     "Assign a package to several users",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *AssignPackageToUsersInput) (*AssignPackageToUsersOutput, error) {
		if err := checker.Require(ctx, "assignPackageToUsers"); err != nil {
			return nil, err
		}

		if _, err := store.Packages().GetByID(ctx, input.Body.PackageID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("package not found")
			}
			return nil, huma.Error500InternalServerError("failed to get package", err)
		}

		out := &AssignPackageToUsersOutput{}
		out.Body.Results = make([]domain.PackageAssignment, 0, len(input.Body.UserIDs))
		for _, userID := range input.Body.UserIDs {
			_, err := store.Users().SetPackage(ctx, userID, input.Body.PackageID)
			if err != nil {
				out.Body.Results = append(out.Body.Results, domain.PackageAssignment{
					UserID: userID,
					Action: "error",
					Error:  err.Error(),
				})
				continue
			}
			out.Body.Results = append(out.Body.Results, domain.PackageAssignment{
				UserID: userID,
				Action: "updated",
			})
		}

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-domaine-to-users",
		Method:      http.MethodPost,
		Path:        "/users/assign-domaine",
		Summary:     "Assign a domaine to several users",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *AssignDomaineToUsersInput) (*AssignDomaineToUsersOutput, error) {
		if err := checker.Require(ctx, "assignDomaineToUsers"); err != nil {
			return nil, err
		}

		if _, err := store.Domaines().GetByID(ctx, input.Body.DomaineID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("domaine not found")
			}
			return nil, huma.Error500InternalServerError("failed to get domaine", err)
		}

		users, err := store.Users().SetDomaine(ctx, input.Body.DomaineID, input.Body.UserIDs)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to assign domaine", err)
		}

		return &AssignDomaineToUsersOutput{Body: users}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-workspace-to-users",
		Method:      http.MethodPost,
		Path:        "/users/assign-workspace",
		Summary:     "Add several users to a workspace",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *AssignWorkspaceToUsersInput) (*AssignWorkspaceToUsersOutput, error) {
		if err := checker.Require(ctx, "assignWorkspaceToUsers"); err != nil {
			return nil, err
		}

		if _, err := store.Workspaces().GetByID(ctx, input.Body.WorkspaceID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("workspace not found")
			}
			return nil, huma.Error500InternalServerError("failed to get workspace", err)
		}

		if err := store.Users().AddToWorkspace(ctx, input.Body.WorkspaceID, input.Body.UserIDs); err != nil {
			return nil, huma.Error500InternalServerError("failed to add users to workspace", err)
		}

		out := &AssignWorkspaceToUsersOutput{}
		out.Body.Message = "users added to workspace"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-role-to-users",
		Method:      http.MethodPost,
		Path:        "/users/assign-role",
		Summary:     "Assign a role to several users",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *AssignRoleToUsersInput) (*AssignRoleToUsersOutput, error) {
		if err := checker.Require(ctx, "assignRoleToUsers"); err != nil {
			return nil, err
		}

		if _, err := store.Roles().GetByID(ctx, input.Body.RoleID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("role not found")
			}
			return nil, huma.Error500InternalServerError("failed to get role", err)
		}

		updated := make([]*domain.User, 0, len(input.Body.UserIDs))
		for _, userID := range input.Body.UserIDs {
			user, err := store.Users().SetRole(ctx, userID, input.Body.RoleID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("user not found")
				}
				return nil, huma.Error500InternalServerError("failed to assign role", err)
			}
			updated = append(updated, user)
		}

		return &AssignRoleToUsersOutput{Body: updated}, nil
	})
}
