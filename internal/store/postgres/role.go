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

type RoleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

func (r *RoleRepo) Create(ctx context.Context, role *domain.Role) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO roles (role_id, role_name, is_deleted, created_at)
		 VALUES ($1, $2, $3, $4)`,
		role.ID, role.RoleName, role.IsDeleted, role.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("roleRepo.Create: %w", domain.ErrConflict)
		}
		return fmt.Errorf("roleRepo.Create: %w", err)
	}

	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role

	err := r.pool.QueryRow(ctx,
		`SELECT role_id, role_name, is_deleted, created_at FROM roles WHERE role_id = $1`,
		id,
	).Scan(&role.ID, &role.RoleName, &role.IsDeleted, &role.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("roleRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("roleRepo.GetByID: %w", err)
	}

	return &role, nil
}

func (r *RoleRepo) List(ctx context.Context) ([]*domain.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT role_id, role_name, is_deleted, created_at FROM roles ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("roleRepo.List: %w", err)
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role

		err = rows.Scan(&role.ID, &role.RoleName, &role.IsDeleted, &role.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("roleRepo.List: scan: %w", err)
		}

		roles = append(roles, &role)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("roleRepo.List: rows: %w", err)
	}

	return roles, nil
}

func (r *RoleRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role

	err := r.pool.QueryRow(ctx,
		`UPDATE roles SET is_deleted = NOT is_deleted
		 WHERE role_id = $1
		 RETURNING role_id, role_name, is_deleted, created_at`,
		id,
	).Scan(&role.ID, &role.RoleName, &role.IsDeleted, &role.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("roleRepo.ToggleDeleted: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("roleRepo.ToggleDeleted: %w", err)
	}

	return &role, nil
}

func (r *RoleRepo) AssignPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("roleRepo.AssignPermissions: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, permissionID := range permissionIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			roleID, permissionID,
		)
		if err != nil {
			return fmt.Errorf("roleRepo.AssignPermissions: %w", err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("roleRepo.AssignPermissions: commit: %w", err)
	}

	return nil
}

func (r *RoleRepo) UnassignPermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`,
		roleID, permissionID,
	)
	if err != nil {
		return fmt.Errorf("roleRepo.UnassignPermission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("roleRepo.UnassignPermission: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *RoleRepo) PermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.permission_name
		 FROM role_permissions rp
		 JOIN permissions p ON p.permission_id = rp.permission_id
		 WHERE rp.role_id = $1 AND NOT p.is_deleted`,
		roleID,
	)
	if err != nil {
		return nil, fmt.Errorf("roleRepo.PermissionsForRole: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string

		err = rows.Scan(&name)
		if err != nil {
			return nil, fmt.Errorf("roleRepo.PermissionsForRole: scan: %w", err)
		}

		names = append(names, name)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("roleRepo.PermissionsForRole: rows: %w", err)
	}

	return names, nil
}
