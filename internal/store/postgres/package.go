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

const packageCols = `package_id, package_name, package_description, number_workspace,
	number_chatbot, number_domaine, solde_total, is_active, is_deleted, created_at, updated_at`

type PackageRepo struct {
	pool *pgxpool.Pool
}

func NewPackageRepo(pool *pgxpool.Pool) *PackageRepo {
	return &PackageRepo{pool: pool}
}

func scanPackage(row pgx.Row) (*domain.Package, error) {
	var p domain.Package
	err := row.Scan(
		&p.ID, &p.PackageName, &p.PackageDesc, &p.NumberWorkspace,
		&p.NumberChatbot, &p.NumberDomaine, &p.SoldeTotal,
		&p.IsActive, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepo) Create(ctx context.Context, p *domain.Package) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO packages (package_id, package_name, package_description,
		                       number_workspace, number_chatbot, number_domaine,
		                       solde_total, is_active, is_deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.PackageName, p.PackageDesc, p.NumberWorkspace, p.NumberChatbot,
		p.NumberDomaine, p.SoldeTotal, p.IsActive, p.IsDeleted, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("packageRepo.Create: %w", err)
	}

	return nil
}

func (r *PackageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	p, err := scanPackage(r.pool.QueryRow(ctx,
		`SELECT `+packageCols+` FROM packages WHERE package_id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("packageRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("packageRepo.GetByID: %w", err)
	}

	return p, nil
}

func (r *PackageRepo) List(ctx context.Context) ([]*domain.Package, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+packageCols+` FROM packages ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("packageRepo.List: %w", err)
	}
	defer rows.Close()

	var packages []*domain.Package
	for rows.Next() {
		p, scanErr := scanPackage(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("packageRepo.List: scan: %w", scanErr)
		}
		packages = append(packages, p)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("packageRepo.List: rows: %w", err)
	}

	return packages, nil
}

func (r *PackageRepo) Update(ctx context.Context, p *domain.Package) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE packages
		 SET package_name = $1, package_description = $2, number_workspace = $3,
		     number_chatbot = $4, number_domaine = $5, solde_total = $6, updated_at = now()
		 WHERE package_id = $7`,
		p.PackageName, p.PackageDesc, p.NumberWorkspace, p.NumberChatbot,
		p.NumberDomaine, p.SoldeTotal, p.ID,
	)
	if err != nil {
		return fmt.Errorf("packageRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("packageRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

// Delete removes the package row. Legacy behavior: packages are hard-deleted,
// unlike every other entity.
func (r *PackageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM packages WHERE package_id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("packageRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("packageRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *PackageRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	p, err := scanPackage(r.pool.QueryRow(ctx,
		`UPDATE packages SET is_active = NOT is_active, updated_at = now()
		 WHERE package_id = $1
		 RETURNING `+packageCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("packageRepo.ToggleActive: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("packageRepo.ToggleActive: %w", err)
	}

	return p, nil
}

func (r *PackageRepo) AssignDomaines(ctx context.Context, packageID uuid.UUID, domaineIDs []uuid.UUID) ([]*domain.Domaine, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE domaines SET package_id = $1, updated_at = now()
		 WHERE domaine_id = ANY($2)
		 RETURNING `+domaineCols, packageID, domaineIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("packageRepo.AssignDomaines: %w", err)
	}
	defer rows.Close()

	var domaines []*domain.Domaine
	for rows.Next() {
		d, scanErr := scanDomaine(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("packageRepo.AssignDomaines: scan: %w", scanErr)
		}
		domaines = append(domaines, d)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("packageRepo.AssignDomaines: rows: %w", err)
	}

	return domaines, nil
}

func (r *PackageRepo) UnassignDomaine(ctx context.Context, packageID, domaineID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE domaines SET package_id = NULL, updated_at = now()
		 WHERE domaine_id = $1 AND package_id = $2`,
		domaineID, packageID,
	)
	if err != nil {
		return fmt.Errorf("packageRepo.UnassignDomaine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("packageRepo.UnassignDomaine: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *PackageRepo) ListDomaines(ctx context.Context, packageID uuid.UUID) ([]*domain.Domaine, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+domaineCols+` FROM domaines WHERE package_id = $1 ORDER BY created_at`,
		packageID,
	)
	if err != nil {
		return nil, fmt.Errorf("packageRepo.ListDomaines: %w", err)
	}
	defer rows.Close()

	var domaines []*domain.Domaine
	for rows.Next() {
		d, scanErr := scanDomaine(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("packageRepo.ListDomaines: scan: %w", scanErr)
		}
		domaines = append(domaines, d)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("packageRepo.ListDomaines: rows: %w", err)
	}

	return domaines, nil
}
