package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Chatbot struct {
	ID          uuid.UUID `json:"chatbot_id"`
	ChatbotName string    `json:"chatbot_name"`
	Title       string    `json:"chatbot_title"`
	Description string    `json:"chatbot_description"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	SoldeTotal  int64     `json:"solde_total"`
	IsActive    bool      `json:"is_active"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChatbotRepository interface {
	Create(ctx context.Context, c *Chatbot) error
	GetByID(ctx context.Context, id uuid.UUID) (*Chatbot, error)
	List(ctx context.Context) ([]*Chatbot, error)
	Update(ctx context.Context, c *Chatbot) error
	ToggleDeleted(ctx context.Context, id uuid.UUID) (*Chatbot, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (*Chatbot, error)

	SetWorkspace(ctx context.Context, chatbotID, workspaceID uuid.UUID) (*Chatbot, error)
}
