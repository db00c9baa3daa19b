package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID            uuid.UUID `json:"workspace_id"`
	WorkspaceName string    `json:"workspace_name"`
	DomaineID     uuid.UUID `json:"domaine_id"`
	SoldeTotal    int64     `json:"solde_total"`
	IsActive      bool      `json:"is_active"`
	IsDeleted     bool      `json:"is_deleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type WorkspaceRepository interface {
	// Create inserts the workspace and debits its initial solde from the owning
	// domaine in the same transaction. Returns ErrInsufficientSolde when the
	// domaine cannot cover it, ErrNotFound when the domaine does not exist.
	Create(ctx context.Context, w *Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	List(ctx context.Context) ([]*Workspace, error)
	Update(ctx context.Context, w *Workspace) error
	ToggleDeleted(ctx context.Context, id uuid.UUID) (*Workspace, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (*Workspace, error)

	SetDomaine(ctx context.Context, domaineID uuid.UUID, workspaceIDs []uuid.UUID) ([]*Workspace, error)
}
