package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/botplane/botplane/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	pool        *pgxpool.Pool
	users       *UserRepo
	packages    *PackageRepo
	domaines    *DomaineRepo
	workspaces  *WorkspaceRepo
	chatbots    *ChatbotRepo
	roles       *RoleRepo
	permissions *PermissionRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:        pool,
		users:       NewUserRepo(pool),
		packages:    NewPackageRepo(pool),
		domaines:    NewDomaineRepo(pool),
		workspaces:  NewWorkspaceRepo(pool),
		chatbots:    NewChatbotRepo(pool),
		roles:       NewRoleRepo(pool),
		permissions: NewPermissionRepo(pool),
	}, nil
}

// Migrate applies the embedded SQL migrations.
func Migrate(databaseURL string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("postgres.Migrate: source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("postgres.Migrate: init: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres.Migrate: up: %w", err)
	}

	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// isUniqueViolation reports whether err is a unique constraint violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) Users() domain.UserRepository             { return s.users }
func (s *Store) Packages() domain.PackageRepository       { return s.packages }
func (s *Store) Domaines() domain.DomaineRepository       { return s.domaines }
func (s *Store) Workspaces() domain.WorkspaceRepository   { return s.workspaces }
func (s *Store) Chatbots() domain.ChatbotRepository       { return s.chatbots }
func (s *Store) Roles() domain.RoleRepository             { return s.roles }
func (s *Store) Permissions() domain.PermissionRepository { return s.permissions }
