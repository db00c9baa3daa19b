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

type CreateChatbotInput struct {
	Body struct {
		ChatbotName string    `json:"chatbot_name" minLength:"1" maxLength:"255" doc:"Chatbot name"`
		Title       string    `json:"chatbot_title,omitempty" maxLength:"255" doc:"Display title"`
		Description string    `json:"chatbot_description,omitempty" doc:"Description"`
		WorkspaceID uuid.UUID `json:"workspace_id" doc:"Owning workspace"`
		SoldeTotal  int64     `json:"solde_total,omitempty" minimum:"0" doc:"Solde"`
	}
}

type CreateChatbotOutput struct {
	Body *domain.Chatbot
}

type ListChatbotsInput struct{}

type ListChatbotsOutput struct {
	Body []*domain.Chatbot
}

type GetChatbotInput struct {
	ID uuid.UUID `path:"id" doc:"Chatbot ID"`
}

type GetChatbotOutput struct {
	Body *domain.Chatbot
}

type UpdateChatbotInput struct {
	ID   uuid.UUID `path:"id" doc:"Chatbot ID"`
	Body struct {
		ChatbotName string `json:"chatbot_name,omitempty" maxLength:"255" doc:"Chatbot name"`
		Title       string `json:"chatbot_title,omitempty" maxLength:"255" doc:"Display title"`
		Description string `json:"chatbot_description,omitempty" doc:"Description"`
		SoldeTotal  *int64 `json:"solde_total,omitempty" minimum:"0" doc:"Solde"`
	}
}

type UpdateChatbotOutput struct {
	Body *domain.Chatbot
}

type ToggleChatbotInput struct {
	ID uuid.UUID `path:"id" doc:"Chatbot ID"`
}

type ToggleChatbotOutput struct {
	Body *domain.Chatbot
}

type AssignChatbotToWorkspaceInput struct {
	Body struct {
		ChatbotID   uuid.UUID `json:"chatbot_id" doc:"Chatbot ID"`
		WorkspaceID uuid.UUID `json:"workspace_id" doc:"Target workspace"`
	}
}

type AssignChatbotToWorkspaceOutput struct {
	Body *domain.Chatbot
}

func RegisterChatbotRoutes(api huma.API, store DataStore, checker *authz.Checker) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-chatbot",
		Method:        http.MethodPost,
		Path:          "/chatbots",
		Summary:       "Create a new chatbot",
		Tags:          []string{"Chatbots"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateChatbotInput) (*CreateChatbotOutput, error) {
		if err := checker.Require(ctx, "createChatbot"); err != nil {
			return nil, err
		}

		if _, err := store.Workspaces().GetByID(ctx, input.Body.WorkspaceID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("workspace not found")
			}
			return nil, huma.Error500InternalServerError("failed to get workspace", err)
		}

		c := &domain.Chatbot{
			ID:          uuid.New(),
			ChatbotName: input.Body.ChatbotName,
			Title:       input.Body.Title,
			Description: input.Body.Description,
			WorkspaceID: input.Body.WorkspaceID,
			SoldeTotal:  input.Body.SoldeTotal,
			IsActive:    true,
		}

		if err := store.Chatbots().Create(ctx, c); err != nil {
			return nil, huma.Error500InternalServerError("failed to create chatbot", err)
		}

		return &CreateChatbotOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-chatbots",
		Method:      http.MethodGet,
		Path:        "/chatbots",
		Summary:     "List all chatbots",
		Tags:        []string{"Chatbots"},
	}, func(ctx context.Context, _ *ListChatbotsInput) (*ListChatbotsOutput, error) {
		if err := checker.Require(ctx, "getAllChatbots"); err != nil {
			return nil, err
		}

		chatbots, err := store.Chatbots().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list chatbots", err)
		}

		return &ListChatbotsOutput{Body: chatbots}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-chatbot",
		Method:      http.MethodGet,
		Path:        "/chatbots/{id}",
		Summary:     "Get a chatbot by ID",
		Tags:        []string{"Chatbots"},
	}, func(ctx context.Context, input *GetChatbotInput) (*GetChatbotOutput, error) {
		if err := checker.Require(ctx, "getChatbotById"); err != nil {
			return nil, err
		}

		c, err := store.Chatbots().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("chatbot not found")
			}
			return nil, huma.Error500InternalServerError("failed to get chatbot", err)
		}

		return &GetChatbotOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-chatbot",
		Method:      http.MethodPut,
		Path:        "/chatbots/{id}",
		Summary:     "Update a chatbot",
		Tags:        []string{"Chatbots"},
	}, func(ctx context.Context, input *UpdateChatbotInput) (*UpdateChatbotOutput, error) {
		if err := checker.Require(ctx, "updateChatbot"); err != nil {
			return nil, err
		}

		existing, err := store.Chatbots().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("chatbot not found")
			}
			return nil, huma.Error500InternalServerError("failed to get chatbot", err)
		}

		if input.Body.ChatbotName != "" {
			existing.ChatbotName = input.Body.ChatbotName
		}
		if input.Body.Title != "" {
			existing.Title = input.Body.Title
		}
		if input.Body.Description != "" {
			existing.Description = input.Body.Description
		}
		if input.Body.SoldeTotal != nil {
			existing.SoldeTotal = *input.Body.SoldeTotal
		}

		if updateErr := store.Chatbots().Update(ctx, existing); updateErr != nil {
			return nil, huma.Error500InternalServerError("failed to update chatbot", updateErr)
		}

		return &UpdateChatbotOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-chatbot",
		Method:      http.MethodDelete,
		Path:        "/chatbots/{id}",
		Summary:     "Toggle a chatbot's deleted flag",
		Tags:        []string{"Chatbots"},
	}, func(ctx context.Context, input *ToggleChatbotInput) (*ToggleChatbotOutput, error) {
		if err := checker.Require(ctx, "deleteChatbot"); err != nil {
			return nil, err
		}

		c, err := store.Chatbots().ToggleDeleted(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("chatbot not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete chatbot", err)
		}

		return &ToggleChatbotOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "active-desactive-chatbot",
		Method:      http.MethodPatch,
		Path:        "/chatbots/active-desactive/{id}",
		Summary:     "Toggle a chatbot's active flag",
		Tags:        []string{"Chatbots"},
	}, func(ctx context.Context, input *ToggleChatbotInput) (*ToggleChatbotOutput, error) {
		if err := checker.Require(ctx, "activeDesactiveChatbot"); err != nil {
			return nil, err
		}

		c, err := store.Chatbots().ToggleActive(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("chatbot not found")
			}
			return nil, huma.Error500InternalServerError("failed to toggle chatbot", err)
		}

		return &ToggleChatbotOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-chatbot-to-workspace",
		Method:      http.MethodPost,
		Path:        "/chatbots/assign-workspace",
		Summary:     "Move a chatbot to another workspace",
		Tags:        []string{"Chatbots"},
	}, func(ctx context.Context, input *AssignChatbotToWorkspaceInput) (*AssignChatbotToWorkspaceOutput, error) {
		if err := checker.Require(ctx, "assignChatbotToWorkspace"); err != nil {
			return nil, err
		}

		if _, err := store.Workspaces().GetByID(ctx, input.Body.WorkspaceID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("workspace not found")
			}
			return nil, huma.Error500InternalServerError("failed to get workspace", err)
		}

		c, err := store.Chatbots().SetWorkspace(ctx, input.Body.ChatbotID, input.Body.WorkspaceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("chatbot not found")
			}
			return nil, huma.Error500InternalServerError("failed to assign workspace", err)
		}

		return &AssignChatbotToWorkspaceOutput{Body: c}, nil
	})
}
