package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/botplane/botplane/internal/domain"
)

type PermissionRepo struct {
	pool *pgxpool.Pool
}

func NewPermissionRepo(pool *pgxpool.Pool) *PermissionRepo {
	return &PermissionRepo{pool: pool}
}

func (r *PermissionRepo) Create(ctx context.Context, p *domain.Permission) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO permissions (permission_id, permission_name, is_deleted, created_at)
		 VALUES ($1, $2, $3, $4)`,
		p.ID, p.PermissionName, p.IsDeleted, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("permissionRepo.Create: %w", domain.ErrConflict)
		}
		return fmt.Errorf("permissionRepo.Create: %w", err)
	}

	return nil
}

func (r *PermissionRepo) List(ctx context.Context) ([]*domain.Permission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT permission_id, permission_name, is_deleted, created_at
		 FROM permissions ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("permissionRepo.List: %w", err)
	}
	defer rows.Close()

	var permissions []*domain.Permission
	for rows.Next() {
		var p domain.Permission

		err = rows.Scan(&p.ID, &p.PermissionName, &p.IsDeleted, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("permissionRepo.List: scan: %w", err)
		}

		permissions = append(permissions, &p)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("permissionRepo.List: rows: %w", err)
	}

	return permissions, nil
}

func (r *PermissionRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	var p domain.Permission

	err := r.pool.QueryRow(ctx,
		`UPDATE permissions SET is_deleted = NOT is_deleted
		 WHERE permission_id = $1
		 RETURNING permission_id, permission_name, is_deleted, created_at`,
		id,
	).Scan(&p.ID, &p.PermissionName, &p.IsDeleted, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("permissionRepo.ToggleDeleted: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("permissionRepo.ToggleDeleted: %w", err)
	}

	return &p, nil
}
