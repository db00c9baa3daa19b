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

const workspaceCols = `workspace_id, workspace_name, domaine_id, solde_total,
	is_active, is_deleted, created_at, updated_at`

type WorkspaceRepo struct {
	pool *pgxpool.Pool
}

func NewWorkspaceRepo(pool *pgxpool.Pool) *WorkspaceRepo {
	return &WorkspaceRepo{pool: pool}
}

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	err := row.Scan(
		&w.ID, &w.WorkspaceName, &w.DomaineID, &w.SoldeTotal,
		&w.IsActive, &w.IsDeleted, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts the workspace and debits its initial solde from the owning
// domaine in one transaction. The debit matches only while the domaine balance
// covers the amount, so the insert never leaves a domaine overdrawn.
func (r *WorkspaceRepo) Create(ctx context.Context, w *domain.Workspace) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("workspaceRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	tag, err := tx.Exec(ctx,
		`UPDATE domaines SET solde_total = solde_total - $1, updated_at = now()
		 WHERE domaine_id = $2 AND solde_total >= $1`,
		w.SoldeTotal, w.DomaineID,
	)
	if err != nil {
		return fmt.Errorf("workspaceRepo.Create: debit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		checkErr := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM domaines WHERE domaine_id = $1)`, w.DomaineID,
		).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("workspaceRepo.Create: %w", checkErr)
		}
		if !exists {
			return fmt.Errorf("workspaceRepo.Create: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("workspaceRepo.Create: %w", domain.ErrInsufficientSolde)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO workspaces (workspace_id, workspace_name, domaine_id, solde_total,
		                         is_active, is_deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		w.ID, w.WorkspaceName, w.DomaineID, w.SoldeTotal,
		w.IsActive, w.IsDeleted, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("workspaceRepo.Create: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("workspaceRepo.Create: commit: %w", err)
	}

	return nil
}

func (r *WorkspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	w, err := scanWorkspace(r.pool.QueryRow(ctx,
		`SELECT `+workspaceCols+` FROM workspaces WHERE workspace_id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("workspaceRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("workspaceRepo.GetByID: %w", err)
	}

	return w, nil
}

func (r *WorkspaceRepo) List(ctx context.Context) ([]*domain.Workspace, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+workspaceCols+` FROM workspaces ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("workspaceRepo.List: %w", err)
	}
	defer rows.Close()

	var workspaces []*domain.Workspace
	for rows.Next() {
		w, scanErr := scanWorkspace(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("workspaceRepo.List: scan: %w", scanErr)
		}
		workspaces = append(workspaces, w)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("workspaceRepo.List: rows: %w", err)
	}

	return workspaces, nil
}

func (r *WorkspaceRepo) Update(ctx context.Context, w *domain.Workspace) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE workspaces
		 SET workspace_name = $1, domaine_id = $2, solde_total = $3, updated_at = now()
		 WHERE workspace_id = $4`,
		w.WorkspaceName, w.DomaineID, w.SoldeTotal, w.ID,
	)
	if err != nil {
		return fmt.Errorf("workspaceRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workspaceRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *WorkspaceRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	w, err := scanWorkspace(r.pool.QueryRow(ctx,
		`UPDATE workspaces SET is_deleted = NOT is_deleted, updated_at = now()
		 WHERE workspace_id = $1
		 RETURNING `+workspaceCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("workspaceRepo.ToggleDeleted: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("workspaceRepo.ToggleDeleted: %w", err)
	}

	return w, nil
}

func (r *WorkspaceRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	w, err := scanWorkspace(r.pool.QueryRow(ctx,
		`UPDATE workspaces SET is_active = NOT is_active, updated_at = now()
		 WHERE workspace_id = $1
		 RETURNING `+workspaceCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("workspaceRepo.ToggleActive: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("workspaceRepo.ToggleActive: %w", err)
	}

	return w, nil
}

func (r *WorkspaceRepo) SetDomaine(ctx context.Context, domaineID uuid.UUID, workspaceIDs []uuid.UUID) ([]*domain.Workspace, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE workspaces SET domaine_id = $1, updated_at = now()
		 WHERE workspace_id = ANY($2)
		 RETURNING `+workspaceCols, domaineID, workspaceIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("workspaceRepo.SetDomaine: %w", err)
	}
	defer rows.Close()

	var workspaces []*domain.Workspace
	for rows.Next() {
		w, scanErr := scanWorkspace(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("workspaceRepo.SetDomaine: scan: %w", scanErr)
		}
		workspaces = append(workspaces, w)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("workspaceRepo.SetDomaine: rows: %w", err)
	}

	return workspaces, nil
}
