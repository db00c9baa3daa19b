package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"user_id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Age          int        `json:"age"`
	SoldeTotal   int64      `json:"solde_total"`
	RoleID       *uuid.UUID `json:"role_id,omitempty"`
	DomaineID    *uuid.UUID `json:"domaine_id,omitempty"`
	PackageID    *uuid.UUID `json:"package_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	IsDeleted    bool       `json:"is_deleted"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserWithNames is the list projection joining referenced display names.
type UserWithNames struct {
	User
	DomaineName *string `json:"domaine_name"`
	PackageName *string `json:"package_name"`
	RoleName    *string `json:"role_name"`
}

// PackageAssignment reports the per-user outcome of a bulk package assignment.
type PackageAssignment struct {
	UserID uuid.UUID `json:"user_id"`
	Action string    `json:"action"` // "updated" or "error"
	Error  string    `json:"error,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*UserWithNames, error)
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	ToggleDeleted(ctx context.Context, id uuid.UUID) (*User, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (*User, error)

	SetRole(ctx context.Context, id, roleID uuid.UUID) (*User, error)
	SetPackage(ctx context.Context, id, packageID uuid.UUID) (*User, error)
	SetDomaine(ctx context.Context, domaineID uuid.UUID, userIDs []uuid.UUID) ([]*User, error)
	AddToWorkspace(ctx context.Context, workspaceID uuid.UUID, userIDs []uuid.UUID) error
}
