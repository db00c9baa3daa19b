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

const domaineCols = `domaine_id, domaine_name, domaine_description, solde_total,
	package_id, is_active, is_deleted, created_at, updated_at`

type DomaineRepo struct {
	pool *pgxpool.Pool
}

func NewDomaineRepo(pool *pgxpool.Pool) *DomaineRepo {
	return &DomaineRepo{pool: pool}
}

func scanDomaine(row pgx.Row) (*domain.Domaine, error) {
	var d domain.Domaine
	err := row.Scan(
		&d.ID, &d.DomaineName, &d.DomaineDesc, &d.SoldeTotal, &d.PackageID,
		&d.IsActive, &d.IsDeleted, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DomaineRepo) Create(ctx context.Context, d *domain.Domaine) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO domaines (domaine_id, domaine_name, domaine_description,
		                       solde_total, package_id, is_active, is_deleted,
		                       created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.DomaineName, d.DomaineDesc, d.SoldeTotal, d.PackageID,
		d.IsActive, d.IsDeleted, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("domaineRepo.Create: %w", err)
	}

	return nil
}

func (r *DomaineRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Domaine, error) {
	d, err := scanDomaine(r.pool.QueryRow(ctx,
		`SELECT `+domaineCols+` FROM domaines WHERE domaine_id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("domaineRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("domaineRepo.GetByID: %w", err)
	}

	return d, nil
}

func (r *DomaineRepo) List(ctx context.Context) ([]*domain.Domaine, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+domaineCols+` FROM domaines ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("domaineRepo.List: %w", err)
	}
	defer rows.Close()

	var domaines []*domain.Domaine
	for rows.Next() {
		d, scanErr := scanDomaine(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("domaineRepo.List: scan: %w", scanErr)
		}
		domaines = append(domaines, d)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("domaineRepo.List: rows: %w", err)
	}

	return domaines, nil
}

func (r *DomaineRepo) Update(ctx context.Context, d *domain.Domaine) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE domaines
		 SET domaine_name = $1, domaine_description = $2, solde_total = $3, updated_at = now()
		 WHERE domaine_id = $4`,
		d.DomaineName, d.DomaineDesc, d.SoldeTotal, d.ID,
	)
	if err != nil {
		return fmt.Errorf("domaineRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("domaineRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *DomaineRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Domaine, error) {
	d, err := scanDomaine(r.pool.QueryRow(ctx,
		`UPDATE domaines SET is_deleted = NOT is_deleted, updated_at = now()
		 WHERE domaine_id = $1
		 RETURNING `+domaineCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("domaineRepo.ToggleDeleted: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("domaineRepo.ToggleDeleted: %w", err)
	}

	return d, nil
}

func (r *DomaineRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Domaine, error) {
	d, err := scanDomaine(r.pool.QueryRow(ctx,
		`UPDATE domaines SET is_active = NOT is_active, updated_at = now()
		 WHERE domaine_id = $1
		 RETURNING `+domaineCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("domaineRepo.ToggleActive: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("domaineRepo.ToggleActive: %w", err)
	}

	return d, nil
}

// TransferSolde moves budget from a domaine to a set of workspaces in one
// transaction. The debit is conditional on sufficient balance so concurrent
// transfers serialize on the row instead of overdrawing it. Each target
// workspace's solde is set to tokens, not incremented; a repeated transfer
// overwrites the previous allocation.
func (r *DomaineRepo) TransferSolde(ctx context.Context, domaineID uuid.UUID, tokens int64, workspaceIDs []uuid.UUID) (*domain.Domaine, []*domain.Workspace, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("domaineRepo.TransferSolde: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	d, err := scanDomaine(tx.QueryRow(ctx,
		`UPDATE domaines SET solde_total = solde_total - $1, updated_at = now()
		 WHERE domaine_id = $2 AND solde_total >= $1
		 RETURNING `+domaineCols, tokens, domaineID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the domaine is missing or its balance is short; distinguish
		// so the handler can answer 404 vs 400.
		var exists bool
		checkErr := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM domaines WHERE domaine_id = $1)`, domaineID,
		).Scan(&exists)
		if checkErr != nil {
			return nil, nil, fmt.Errorf("domaineRepo.TransferSolde: %w", checkErr)
		}
		if !exists {
			return nil, nil, fmt.Errorf("domaineRepo.TransferSolde: %w", domain.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("domaineRepo.TransferSolde: %w", domain.ErrInsufficientSolde)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("domaineRepo.TransferSolde: %w", err)
	}

	rows, err := tx.Query(ctx,
		`UPDATE workspaces SET solde_total = $1, updated_at = now()
		 WHERE workspace_id = ANY($2)
		 RETURNING `+workspaceCols, tokens, workspaceIDs,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("domaineRepo.TransferSolde: %w", err)
	}

	var workspaces []*domain.Workspace
	for rows.Next() {
		w, scanErr := scanWorkspace(rows)
		if scanErr != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("domaineRepo.TransferSolde: scan: %w", scanErr)
		}
		workspaces = append(workspaces, w)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("domaineRepo.TransferSolde: rows: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("domaineRepo.TransferSolde: commit: %w", err)
	}

	return d, workspaces, nil
}
