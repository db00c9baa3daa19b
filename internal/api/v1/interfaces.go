package v1

import (
	"context"

	"github.com/botplane/botplane/internal/auth"
	"github.com/botplane/botplane/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Users() domain.UserRepository
	Packages() domain.PackageRepository
	Domaines() domain.DomaineRepository
	Workspaces() domain.WorkspaceRepository
	Chatbots() domain.ChatbotRepository
	Roles() domain.RoleRepository
	Permissions() domain.PermissionRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	SignUp(ctx context.Context, email, password, fullName string, age int, soldeTotal int64) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}
