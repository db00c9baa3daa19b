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

type CreatePackageInput struct {
	Body struct {
		PackageName     string `json:"package_name" minLength:"1" maxLength:"255" doc:"Package name"`
		PackageDesc     string `json:"package_description,omitempty" doc:"Description"`
		NumberWorkspace int    `json:"number_workspace,omitempty" minimum:"0" doc:"Workspace limit"`
		NumberChatbot   int    `json:"number_chatbot,omitempty" minimum:"0" doc:"Chatbot limit"`
		NumberDomaine   int    `json:"number_domaine,omitempty" minimum:"0" doc:"Domaine limit"`
		SoldeTotal      int64  `json:"solde_total,omitempty" minimum:"0" doc:"Solde"`
	}
}

type CreatePackageOutput struct {
	Body *domain.Package
}

type ListPackagesInput struct{}

type ListPackagesOutput struct {
	Body []*domain.Package
}

type GetPackageInput struct {
	ID uuid.UUID `path:"id" doc:"Package ID"`
}

type GetPackageOutput struct {
	Body *domain.Package
}

type UpdatePackageInput struct {
	ID   uuid.UUID `path:"id" doc:"Package ID"`
	Body struct {
		PackageName     string `json:"package_name,omitempty" maxLength:"255" doc:"Package name"`
		PackageDesc     string `json:"package_description,omitempty" doc:"Description"`
		NumberWorkspace *int   `json:"number_workspace,omitempty" minimum:"0" doc:"Workspace limit"`
		NumberChatbot   *int   `json:"number_chatbot,omitempty" minimum:"0" doc:"Chatbot limit"`
		NumberDomaine   *int   `json:"number_domaine,omitempty" minimum:"0" doc:"Domaine limit"`
		SoldeTotal      *int64 `json:"solde_total,omitempty" minimum:"0" doc:"Solde"`
	}
}

type UpdatePackageOutput struct {
	Body *domain.Package
}

type DeletePackageInput struct {
	ID uuid.UUID `path:"id" doc:"Package ID"`
}

type TogglePackageInput struct {
	ID uuid.UUID `path:"id" doc:"Package ID"`
}

type TogglePackageOutput struct {
	Body *domain.Package
}

type AssignDomainesToPackageInput struct {
	Body struct {
		PackageID  uuid.UUID   `json:"package_id" doc:"Package ID"`
		DomaineIDs []uuid.UUID `json:"domaine_ids" minItems:"1" doc:"Domaines to attach"`
	}
}

type AssignDomainesToPackageOutput struct {
	Body []*domain.Domaine
}

type UnassignDomaineFromPackageInput struct {
	Body struct {
		PackageID uuid.UUID `json:"package_id" doc:"Package ID"`
		DomaineID uuid.UUID `json:"domaine_id" doc:"Domaine to detach"`
	}
}

type UnassignDomaineFromPackageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type ListPackageDomainesInput struct {
	ID uuid.UUID `path:"id" doc:"Package ID"`
}

type ListPackageDomainesOutput struct {
	Body []*domain.Domaine
}

func RegisterPackageRoutes(api huma.API, store DataStore, checker *authz.Checker) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-package",
		Method:        http.MethodPost,
		Path:          "/packages",
		Summary:       "Create a new package",
		Tags:          []string{"Packages"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreatePackageInput) (*CreatePackageOutput, error) {
		if err := checker.Require(ctx, "createPackage"); err != nil {
			return nil, err
		}

		p := &domain.Package{
			ID:              uuid.New(),
			PackageName:     input.Body.PackageName,
			PackageDesc:     input.Body.PackageDesc,
			NumberWorkspace: input.Body.NumberWorkspace,
			NumberChatbot:   input.Body.NumberChatbot,
			NumberDomaine:   input.Body.NumberDomaine,
			SoldeTotal:      input.Body.SoldeTotal,
			IsActive:        true,
		}

		if err := store.Packages().Create(ctx, p); err != nil {
			return nil, huma.Error500InternalServerError("failed to create package", err)
		}

		return &CreatePackageOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-packages",
		Method:      http.MethodGet,
		Path:        "/packages",
		Summary:     "List all packages",
		Tags:        []string{"Packages"},
	}, func(ctx context.Context, _ *ListPackagesInput) (*ListPackagesOutput, error) {
		if err := checker.Require(ctx, "getAllPackages"); err != nil {
			return nil, err
		}

		packages, err := store.Packages().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list packages", err)
		}

		return &ListPackagesOutput{Body: packages}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-package",
		Method:      http.MethodGet,
		Path:        "/packages/{id}",
		Summary:     "Get a package by ID",
		Tags:        []string{"Packages"},
	}, func(ctx context.Context, input *GetPackageInput) (*GetPackageOutput, error) {
		if err := checker.Require(ctx, "getPackageById"); err != nil {
			return nil, err
		}

		p, err := store.Packages().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("package not found")
			}
			return nil, huma.Error500InternalServerError("failed to get package", err)
		}

		return &GetPackageOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-package",
		Method:      http.MethodPut,
		Path:        "/packages/{id}",
		Summary:     "Update a package",
		Tags:        []string{"Packages"},
	}, func(ctx context.Context, input *UpdatePackageInput) (*UpdatePackageOutput, error) {
		if err := checker.Require(ctx, "updatePackage"); err != nil {
			return nil, err
		}

		existing, err := store.Packages().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("package not found")
			}
			return nil, huma.Error500InternalServerError("failed to get package", err)
		}

		if input.Body.PackageName != "" {
			existing.PackageName = input.Body.PackageName
		}
		if input.Body.PackageDesc != "" {
			existing.PackageDesc = input.Body.PackageDesc
		}
		if input.Body.NumberWorkspace != nil {
			existing.NumberWorkspace = *input.Body.NumberWorkspace
		}
		if input.Body.NumberChatbot != nil {
			existing.NumberChatbot = *input.Body.NumberChatbot
		}
		if input.Body.NumberDomaine != nil {
			existing.NumberDomaine = *input.Body.NumberDomaine
		}
		if input.Body.SoldeTotal != nil {
			existing.SoldeTotal = *input.Body.SoldeTotal
		}

		if updateErr := store.Packages().Update(ctx, existing); updateErr != nil {
			return nil, huma.Error500InternalServerError("failed to update package", updateErr)
		}

		return &UpdatePackageOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-package",
		Method:      http.MethodDelete,
		Path:        "/packages/{id}",
		Summary:     "Delete a package",
		Tags:        []string{"Packages"},
	}, func(ctx context.Context, input *DeletePackageInput) (*struct{}, error) {
		if err := checker.Require(ctx, "deletePackage"); err != nil {
			return nil, err
		}

		if err := store.Packages().Delete(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("package not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete package", err)
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "active-desactive-package",
		Method:      http.MethodPatch,
		Path:        "/packages/active-desactive/{id}",
		Summary:     "Toggle a package's active flag",
		Tags:        []string{"Packages"},
	}, func(ctx context.Context, input *TogglePackageInput) (*TogglePackageOutput, error) {
		if err := checker.Require(ctx, "activeDesactivePackage"); err != nil {
			return nil, err
		}

		p, err := store.Packages().ToggleActive(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("package not found")
			}
			return nil, huma.Error500InternalServerError("failed to toggle package", err)
		}

		return &TogglePackageOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-package-to-domaine",
		Method:      http.MethodPost,
		Path:        "/packages/assign-domaine",
		Summary:     "Attach domaines to a package",
		Tags:        []string{"Packages"},
	}, func(ctx context.Context, input *AssignDomainesToPackageInput) (*AssignDomainesToPackageOutput, error) {
		if err := checker.Require(ctx, "assignPackageToDomaine"); err != nil {
			return nil, err
		}

		if _, err := store.Packages().GetByID(ctx, input.Body.PackageID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("package not found")
			}
			return nil, huma.Error500InternalServerError("failed to get package", err)
		}

		domaines, err := store.Packages().AssignDomaines(ctx, input.Body.PackageID, input.Body.DomaineIDs)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to assign domaines", err)
		}

		return &AssignDomainesToPackageOutput{Body: domaines}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "unassign-domaine-from-package",
		Method:      http.MethodPost,
		Path:        "/packages/unassign-domaine",
		Summary:     "Detach a domaine from a package",
		Tags:        []string{"Packages"},
	}, func(ctx context.Context, input *UnassignDomaineFromPackageInput) (*UnassignDomaineFromPackageOutput, error) {
		if err := checker.Require(ctx, "unassignDomaineFromPackage"); err != nil {
			return nil, err
		}

		if err := store.Packages().UnassignDomaine(ctx, input.Body.PackageID, input.Body.DomaineID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("domaine not attached to package")
			}
			return nil, huma.Error500InternalServerError("failed to unassign domaine", err)
		}

		out := &UnassignDomaineFromPackageOutput{}
		out.Body.Message = "domaine unassigned"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-package-domaines",
		Method:      http.MethodGet,
		Path:        "/packages/{id}/domaines",
		Summary:     "List the domaines attached to a package",
		Tags:        []string{"Packages"},
	}, func(ctx context.Context, input *ListPackageDomainesInput) (*ListPackageDomainesOutput, error) {
		if err := checker.Require(ctx, "getDomainsByPackageId"); err != nil {
			return nil, err
		}

		if _, err := store.Packages().GetByID(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("package not found")
			}
			return nil, huma.Error500InternalServerError("failed to get package", err)
		}

		domaines, err := store.Packages().ListDomaines(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list domaines", err)
		}

		return &ListPackageDomainesOutput{Body: domaines}, nil
	})
}
