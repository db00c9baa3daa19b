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

type CreateDomaineInput struct {
	Body struct {
		DomaineName string     `json:"domaine_name" minLength:"1" maxLength:"255" doc:"Domaine name"`
		DomaineDesc string     `json:"domaine_description,omitempty" doc:"Description"`
		SoldeTotal  int64      `json:"solde_total,omitempty" minimum:"0" doc:"Solde"`
		PackageID   *uuid.UUID `json:"package_id,omitempty" doc:"Owning package"`
	}
}

type CreateDomaineOutput struct {
	Body *domain.Domaine
}

type ListDomainesInput struct{}

type ListDomainesOutput struct {
	Body []*domain.Domaine
}

type GetDomaineInput struct {
	ID uuid.UUID `path:"id" doc:"Domaine ID"`
}

type GetDomaineOutput struct {
	Body *domain.Domaine
}

type UpdateDomaineInput struct {
	ID   uuid.UUID `path:"id" doc:"Domaine ID"`
	Body struct {
		DomaineName string `json:"domaine_name,omitempty" maxLength:"255" doc:"Domaine name"`
		DomaineDesc string `json:"domaine_description,omitempty" doc:"Description"`
		SoldeTotal  *int64 `json:"solde_total,omitempty" minimum:"0" doc:"Solde"`
	}
}

type UpdateDomaineOutput struct {
	Body *domain.Domaine
}

type ToggleDomaineInput struct {
	ID uuid.UUID `path:"id" doc:"Domaine ID"`
}

type ToggleDomaineOutput struct {
	Body *domain.Domaine
}

type AssignSoldeInput struct {
	Body struct {
		DomaineID    uuid.UUID   `json:"domaine_id" doc:"Source domaine"`
		Tokens       int64       `json:"tokens" minimum:"1" doc:"Amount debited from the domaine and set on each workspace"`
		WorkspaceIDs []uuid.UUID `json:"workspace_ids" minItems:"1" doc:"Target workspaces"`
	}
}

type AssignSoldeOutput struct {
	Body struct {
		Domaine    *domain.Domaine     `json:"domaine"`
		Workspaces []*domain.Workspace `json:"workspaces"`
	}
}

func RegisterDomaineRoutes(api huma.API, store DataStore, checker *authz.Checker) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-domaine",
		Method:        http.MethodPost,
		Path:          "/domaines",
		Summary:       "Create a new domaine",
		Tags:          []string{"Domaines"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateDomaineInput) (*CreateDomaineOutput, error) {
		if err := checker.Require(ctx, "createDomaine"); err != nil {
			return nil, err
		}

		d := &domain.Domaine{
			ID:          uuid.New(),
			DomaineName: input.Body.DomaineName,
			DomaineDesc: input.Body.DomaineDesc,
			SoldeTotal:  input.Body.SoldeTotal,
			PackageID:   input.Body.PackageID,
			IsActive:    true,
		}

		if err := store.Domaines().Create(ctx, d); err != nil {
			return nil, huma.Error500InternalServerError("failed to create domaine", err)
		}

		return &CreateDomaineOutput{Body: d}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-domaines",
		Method:      http.MethodGet,
		Path:        "/domaines",
		Summary:     "List all domaines",
		Tags:        []string{"Domaines"},
	}, func(ctx context.Context, _ *ListDomainesInput) (*ListDomainesOutput, error) {
		if err := checker.Require(ctx, "getAllDomaines"); err != nil {
			return nil, err
		}

		domaines, err := store.Domaines().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list domaines", err)
		}

		return &ListDomainesOutput{Body: domaines}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-domaine",
		Method:      http.MethodGet,
		Path:        "/domaines/{id}",
		Summary:     "Get a domaine by ID",
		Tags:        []string{"Domaines"},
	}, func(ctx context.Context, input *GetDomaineInput) (*GetDomaineOutput, error) {
		if err := checker.Require(ctx, "getDomaineById"); err != nil {
			return nil, err
		}

		d, err := store.Domaines().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("domaine not found")
			}
			return nil, huma.Error500InternalServerError("failed to get domaine", err)
		}

		return &GetDomaineOutput{Body: d}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-domaine",
		Method:      http.MethodPut,
		Path:        "/domaines/{id}",
		Summary:     "Update a domaine",
		Tags:        []string{"Domaines"},
	}, func(ctx context.Context, input *UpdateDomaineInput) (*UpdateDomaineOutput, error) {
		if err := checker.Require(ctx, "updateDomaine"); err != nil {
			return nil, err
		}

		existing, err := store.Domaines().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("domaine not found")
			}
			return nil, huma.Error500InternalServerError("failed to get domaine", err)
		}

		if input.Body.DomaineName != "" {
			existing.DomaineName = input.Body.DomaineName
		}
		if input.Body.DomaineDesc != "" {
			existing.DomaineDesc = input.Body.DomaineDesc
		}
		if input.Body.SoldeTotal != nil {
			existing.SoldeTotal = *input.Body.SoldeTotal
		}

		if updateErr := store.Domaines().Update(ctx, existing); updateErr != nil {
			return nil, huma.Error500InternalServerError("failed to update domaine", updateErr)
		}

		return &UpdateDomaineOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-domaine",
		Method:      http.MethodDelete,
		Path:        "/domaines/{id}",
		Summary:     "Toggle a domaine's deleted flag",
		Tags:        []string{"Domaines"},
	}, func(ctx context.Context, input *ToggleDomaineInput) (*ToggleDomaineOutput, error) {
		if err := checker.Require(ctx, "deleteDomaine"); err != nil {
			return nil, err
		}

		d, err := store.Domaines().ToggleDeleted(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("domaine not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete domaine", err)
		}

		return &ToggleDomaineOutput{Body: d}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "active-desactive-domaine",
		Method:      http.MethodPatch,
		Path:        "/domaines/active-desactive/{id}",
		Summary:     "Toggle a domaine's active flag",
		Tags:        []string{"Domaines"},
	}, func(ctx context.Context, input *ToggleDomaineInput) (*ToggleDomaineOutput, error) {
		if err := checker.Require(ctx, "activeDesactiveDomaine"); err != nil {
			return nil, err
		}

		d, err := store.Domaines().ToggleActive(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("domaine not found")
			}
			return nil, huma.Error500InternalServerError("failed to toggle domaine", err)
		}

		return &ToggleDomaineOutput{Body: d}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-solde-to-workspaces",
		Method:      http.MethodPost,
		Path:        "/domaines/assign-solde-to-workspaces",
		Summary:     "Debit a domaine and set each workspace's solde to the amount",
		Tags:        []string{"Domaines"},
	}, func(ctx context.Context, input *AssignSoldeInput) (*AssignSoldeOutput, error) {
		if err := checker.Require(ctx, "assignSoldeToWorkspaces"); err != nil {
			return nil, err
		}

		d, workspaces, err := store.Domaines().TransferSolde(ctx, input.Body.DomaineID, input.Body.Tokens, input.Body.WorkspaceIDs)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("domaine not found")
			case errors.Is(err, domain.ErrInsufficientSolde):
				return nil, huma.Error400BadRequest("solde insuffisant")
			}
			return nil, huma.Error500InternalServerError("failed to transfer solde", err)
		}

		out := &AssignSoldeOutput{}
		out.Body.Domaine = d
		out.Body.Workspaces = workspaces
		return out, nil
	})
}
