package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Package is a plan bundling capacity limits and a solde, assignable to domaines.
// The number_* limits are declared but not enforced anywhere yet.
type Package struct {
	ID              uuid.UUID `json:"package_id"`
	PackageName     string    `json:"package_name"`
	PackageDesc     string    `json:"package_description"`
	NumberWorkspace int       `json:"number_workspace"`
	NumberChatbot   int       `json:"number_chatbot"`
	NumberDomaine   int       `json:"number_domaine"`
	SoldeTotal      int64     `json:"solde_total"`
	IsActive        bool      `json:"is_active"`
	IsDeleted       bool      `json:"is_deleted"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PackageRepository interface {
	Create(ctx context.Context, p *Package) error
	GetByID(ctx context.Context, id uuid.UUID) (*Package, error)
	List(ctx context.Context) ([]*Package, error)
	Update(ctx context.Context, p *Package) error
	// Delete removes the row. Packages are the one entity with a hard delete;
	// everything else soft-deletes via ToggleDeleted.
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleActive(ctx context.Context, id uuid.UUID) (*Package, error)

	AssignDomaines(ctx context.Context, packageID uuid.UUID, domaineIDs []uuid.UUID) ([]*Domaine, error)
	UnassignDomaine(ctx context.Context, packageID, domaineID uuid.UUID) error
	ListDomaines(ctx context.Context, packageID uuid.UUID) ([]*Domaine, error)
}
