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

type CreateWorkspaceInput struct {
	Body struct {
		WorkspaceName string    `json:"workspace_name" minLength:"1" maxLength:"255" doc:"Workspace name"`
		DomaineID     uuid.UUID `json:"domaine_id" doc:"Owning domaine"`
		SoldeTotal    int64     `json:"solde_total,omitempty" minimum:"0" doc:"Initial solde, debited from the domaine"`
	}
}

type CreateWorkspaceOutput struct {
	Body *domain.Workspace
}

type ListWorkspacesInput struct{}

type ListWorkspacesOutput struct {
	Body []*domain.Workspace
}

type GetWorkspaceInput struct {
	ID uuid.UUID `path:"id" doc:"Workspace ID"`
}

type GetWorkspaceOutput struct {
	Body *domain.Workspace
}

type UpdateWorkspaceInput struct {
	ID   uuid.UUID `path:"id" doc:"Workspace ID"`
	Body struct {
		WorkspaceName string `json:"workspace_name,omitempty" maxLength:"255" doc:"Workspace name"`
	}
}

type UpdateWorkspaceOutput struct {
	Body *domain.Workspace
}

type ToggleWorkspaceInput struct {
	ID uuid.UUID `path:"id" doc:"Workspace ID"`
}

type ToggleWorkspaceOutput struct {
	Body *domain.Workspace
}

type AssignDomaineToWorkspacesInput struct {
	Body struct {
		DomaineID    uuid.UUID   `json:"domaine_id" doc:"Domaine ID"`
		WorkspaceIDs []uuid.UUID `json:"workspace_ids" minItems:"1" doc:"Workspaces to move"`
	}
}

type AssignDomaineToWorkspacesOutput struct {
	Body []*domain.Workspace
}

func RegisterWorkspaceRoutes(api huma.API, store DataStore, checker *authz.Checker) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-workspace",
		Method:        http.MethodPost,
		Path:          "/workspaces",
		Summary:       "Create a new workspace",
		Tags:          []string{"Workspaces"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateWorkspaceInput) (*CreateWorkspaceOutput, error) {
		if err := checker.Require(ctx, "createWorkspace"); err != nil {
			return nil, err
		}

		w := &domain.Workspace{
			ID:            uuid.New(),
			WorkspaceName: input.Body.WorkspaceName,
			DomaineID:     input.Body.DomaineID,
			SoldeTotal:    input.Body.SoldeTotal,
			IsActive:      true,
		}

		if err := store.Workspaces().Create(ctx, w); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("domaine not found")
			case errors.Is(err, domain.ErrInsufficientSolde):
				return nil, huma.Error400BadRequest("solde insuffisant")
			}
			return nil, huma.Error500InternalServerError("failed to create workspace", err)
		}

		return &CreateWorkspaceOutput{Body: w}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-workspaces",
		Method:      http.MethodGet,
		Path:        "/workspaces",
		Summary:     "List all workspaces",
		Tags:        []string{"Workspaces"},
	}, func(ctx context.Context, _ *ListWorkspacesInput) (*ListWorkspacesOutput, error) {
		if err := checker.Require(ctx, "getAllWorkspaces"); err != nil {
			return nil, err
		}

		workspaces, err := store.Workspaces().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list workspaces", err)
		}

		return &ListWorkspacesOutput{Body: workspaces}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-workspace",
		Method:      http.MethodGet,
		Path:        "/workspaces/{id}",
		Summary:     "Get a workspace by ID",
		Tags:        []string{"Workspaces"},
	}, func(ctx context.Context, input *GetWorkspaceInput) (*GetWorkspaceOutput, error) {
		if err := checker.Require(ctx, "getWorkspaceById"); err != nil {
			return nil, err
		}

		w, err := store.Workspaces().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("workspace not found")
			}
			return nil, huma.Error500InternalServerError("failed to get workspace", err)
		}

		return &GetWorkspaceOutput{Body: w}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-workspace",
		Method:      http.MethodPut,
		Path:        "/workspaces/{id}",
		Summary:     "Update a workspace",
		Tags:        []string{"Workspaces"},
	}, func(ctx context.Context, input *UpdateWorkspaceInput) (*UpdateWorkspaceOutput, error) {
		if err := checker.Require(ctx, "updateWorkspace"); err != nil {
			return nil, err
		}

		existing, err := store.Workspaces().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("workspace not found")
			}
			return nil, huma.Error500InternalServerError("failed to get workspace", err)
		}

		if input.Body.WorkspaceName != "" {
			existing.WorkspaceName = input.Body.WorkspaceName
		}

		if updateErr := store.Workspaces().Update(ctx, existing); updateErr != nil {
			return nil, huma.Error500InternalServerError("failed to update workspace", updateErr)
		}

		return &UpdateWorkspaceOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-workspace",
		Method:      http.MethodDelete,
		Path:        "/workspaces/{id}",
		Summary:     "Toggle a workspace's deleted flag",
		Tags:        []string{"Workspaces"},
	}, func(ctx context.Context, input *ToggleWorkspaceInput) (*ToggleWorkspaceOutput, error) {
		if err := checker.Require(ctx, "deleteWorkspace"); err != nil {
			return nil, err
		}

		w, err := store.Workspaces().ToggleDeleted(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("workspace not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete workspace", err)
		}

		return &ToggleWorkspaceOutput{Body: w}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "active-desactive-workspace",
		Method:      http.MethodPatch,
		Path:        "/workspaces/active-desactive/{id}",
		Summary:     "Toggle a workspace's active flag",
		Tags:        []string{"Workspaces"},
	}, func(ctx context.Context, input *ToggleWorkspaceInput) (*ToggleWorkspaceOutput, error) {
		if err := checker.Require(ctx, "activeDesactiveWorkspace"); err != nil {
			return nil, err
		}

		w, err := store.Workspaces().ToggleActive(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("workspace not found")
			}
			return nil, huma.Error500InternalServerError("failed to toggle workspace", err)
		}

		return &ToggleWorkspaceOutput{Body: w}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-domaine-to-workspaces",
		Method:      http.MethodPost,
		Path:        "/workspaces/assign-domaine",
		Summary:     "Move several workspaces under a domaine",
		Tags:        []string{"Workspaces"},
	}, func(ctx context.Context, input *AssignDomaineToWorkspacesInput) (*AssignDomaineToWorkspacesOutput, error) {
		if err := checker.Require(ctx, "assignDomainToWorkspaces"); err != nil {
			return nil, err
		}

		if _, err := store.Domaines().GetByID(ctx, input.Body.DomaineID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("domaine not found")
			}
			return nil, huma.Error500InternalServerError("failed to get domaine", err)
		}

		workspaces, err := store.Workspaces().SetDomaine(ctx, input.Body.DomaineID, input.Body.WorkspaceIDs)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to assign domaine", err)
		}

		return &AssignDomaineToWorkspacesOutput{Body: workspaces}, nil
	})
}
