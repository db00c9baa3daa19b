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

const userCols = `user_id, email, password_hash, full_name, age, solde_total,
	role_id, domaine_id, package_id, is_active, is_deleted, created_at, updated_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Age, &u.SoldeTotal,
		&u.RoleID, &u.DomaineID, &u.PackageID, &u.IsActive, &u.IsDeleted,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (user_id, email, password_hash, full_name, age, solde_total,
		                    role_id, domaine_id, package_id, is_active, is_deleted,
		                    created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Age, u.SoldeTotal,
		u.RoleID, u.DomaineID, u.PackageID, u.IsActive, u.IsDeleted,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("userRepo.Create: %w", domain.ErrConflict)
		}
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE user_id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}

	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}

	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*domain.UserWithNames, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.user_id, u.email, u.password_hash, u.full_name, u.age, u.solde_total,
		        u.role_id, u.domaine_id, u.package_id, u.is_active, u.is_deleted,
		        u.created_at, u.updated_at,
		        d.domaine_name, p.package_name, r.role_name
		 FROM users u
		 LEFT JOIN domaines d ON d.domaine_id = u.domaine_id
		 LEFT JOIN packages p ON p.package_id = u.package_id
		 LEFT JOIN roles r ON r.role_id = u.role_id
		 ORDER BY u.created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.List: %w", err)
	}
	defer rows.Close()

	var users []*domain.UserWithNames
	for rows.Next() {
		var u domain.UserWithNames

		err = rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Age, &u.SoldeTotal,
			&u.RoleID, &u.DomaineID, &u.PackageID, &u.IsActive, &u.IsDeleted,
			&u.CreatedAt, &u.UpdatedAt,
			&u.DomaineName, &u.PackageName, &u.RoleName,
		)
		if err != nil {
			return nil, fmt.Errorf("userRepo.List: scan: %w", err)
		}

		users = append(users, &u)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("userRepo.List: rows: %w", err)
	}

	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET full_name = $1, age = $2, solde_total = $3, role_id = $4,
		     domaine_id = $5, package_id = $6, is_deleted = $7, updated_at = now()
		 WHERE user_id = $8`,
		u.FullName, u.Age, u.SoldeTotal, u.RoleID, u.DomaineID, u.PackageID,
		u.IsDeleted, u.ID,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE user_id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("userRepo.UpdatePassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.UpdatePassword: %w", domain.ErrNotFound)
	}

	return nil
}

// ToggleDeleted flips is_deleted in a single statement so two concurrent
// toggles cannot lose an update.
func (r *UserRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET is_deleted = NOT is_deleted, updated_at = now()
		 WHERE user_id = $1
		 RETURNING `+userCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.ToggleDeleted: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.ToggleDeleted: %w", err)
	}

	return u, nil
}

func (r *UserRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET is_active = NOT is_active, updated_at = now()
		 WHERE user_id = $1
		 RETURNING `+userCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.ToggleActive: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.ToggleActive: %w", err)
	}

	return u, nil
}

func (r *UserRepo) SetRole(ctx context.Context, id, roleID uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET role_id = $1, updated_at = now()
		 WHERE user_id = $2
		 RETURNING `+userCols, roleID, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.SetRole: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.SetRole: %w", err)
	}

	return u, nil
}

func (r *UserRepo) SetPackage(ctx context.Context, id, packageID uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET package_id = $1, updated_at = now()
		 WHERE user_id = $2
		 RETURNING `+userCols, packageID, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.SetPackage: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.SetPackage: %w", err)
	}

	return u, nil
}

func (r *UserRepo) SetDomaine(ctx context.Context, domaineID uuid.UUID, userIDs []uuid.UUID) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE users SET domaine_id = $1, updated_at = now()
		 WHERE user_id = ANY($2)
		 RETURNING `+userCols, domaineID, userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.SetDomaine: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("userRepo.SetDomaine: scan: %w", scanErr)
		}
		users = append(users, u)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("userRepo.SetDomaine: rows: %w", err)
	}

	return users, nil
}

func (r *UserRepo) AddToWorkspace(ctx context.Context, workspaceID uuid.UUID, userIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("userRepo.AddToWorkspace: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, userID := range userIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO users_workspaces (user_id, workspace_id)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			userID, workspaceID,
		)
		if err != nil {
			return fmt.Errorf("userRepo.AddToWorkspace: %w", err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("userRepo.AddToWorkspace: commit: %w", err)
	}

	return nil
}
