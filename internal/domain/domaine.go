package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Domaine is the top-level budget-holding unit of the hierarchy. Its solde is
// the budget it may delegate to the workspaces it owns.
type Domaine struct {
	ID          uuid.UUID  `json:"domaine_id"`
	DomaineName string     `json:"domaine_name"`
	DomaineDesc string     `json:"domaine_description"`
	SoldeTotal  int64      `json:"solde_total"`
	PackageID   *uuid.UUID `json:"package_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsDeleted   bool       `json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type DomaineRepository interface {
	Create(ctx context.Context, d *Domaine) error
	GetByID(ctx context.Context, id uuid.UUID) (*Domaine, error)
	List(ctx context.Context) ([]*Domaine, error)
	Update(ctx context.Context, d *Domaine) error
	ToggleDeleted(ctx context.Context, id uuid.UUID) (*Domaine, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (*Domaine, error)

	// TransferSolde debits tokens from the domaine and sets each target
	// workspace's solde to tokens, all in one transaction. The debit is a
	// conditional update: it matches only while solde_total >= tokens, so a
	// concurrent transfer cannot overdraw the domaine. Returns
	// ErrInsufficientSolde without mutating anything when the balance is short.
	TransferSolde(ctx context.Context, domaineID uuid.UUID, tokens int64, workspaceIDs []uuid.UUID) (*Domaine, []*Workspace, error)
}
