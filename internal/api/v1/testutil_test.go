package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/botplane/botplane/internal/auth"
	"github.com/botplane/botplane/internal/authz"
	"github.com/botplane/botplane/internal/domain"
	"github.com/botplane/botplane/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context + checker helpers, injecting an authenticated user for DoCtx
// ---------------------------------------------------------------------------

func authedCtx(roleID uuid.UUID) context.Context {
	user := &domain.User{ID: uuid.New(), Email: "caller@example.com", RoleID: &roleID, IsActive: true}
	ctx := context.WithValue(context.Background(), middleware.ContextKeyUser, user)
	return context.WithValue(ctx, middleware.ContextKeyRoleName, "admin")
}

func rolelessCtx() context.Context {
	user := &domain.User{ID: uuid.New(), Email: "caller@example.com", IsActive: true}
	return context.WithValue(context.Background(), middleware.ContextKeyUser, user)
}

// staticPerms grants the same permission set to every role.
type staticPerms []string

func (s staticPerms) PermissionsForRole(context.Context, uuid.UUID) ([]string, error) {
	return s, nil
}

func allowing(perms ...string) *authz.Checker {
	return authz.NewChecker(staticPerms(perms))
}

// recordingInvalidator captures which roles had their cache dropped.
type recordingInvalidator struct {
	roleIDs []uuid.UUID
}

func (r *recordingInvalidator) Invalidate(_ context.Context, roleID uuid.UUID) error {
	r.roleIDs = append(r.roleIDs, roleID)
	return nil
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	users       domain.UserRepository
	packages    domain.PackageRepository
	domaines    domain.DomaineRepository
	workspaces  domain.WorkspaceRepository
	chatbots    domain.ChatbotRepository
	roles       domain.RoleRepository
	permissions domain.PermissionRepository
}

func (m *mockDataStore) Users() domain.UserRepository             { return m.users }
func (m *mockDataStore) Packages() domain.PackageRepository       { return m.packages }
func (m *mockDataStore) Domaines() domain.DomaineRepository       { return m.domaines }
func (m *mockDataStore) Workspaces() domain.WorkspaceRepository   { return m.workspaces }
func (m *mockDataStore) Chatbots() domain.ChatbotRepository       { return m.chatbots }
func (m *mockDataStore) Roles() domain.RoleRepository             { return m.roles }
func (m *mockDataStore) Permissions() domain.PermissionRepository { return m.permissions }

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc         func(ctx context.Context, u *domain.User) error
	getByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	listFunc           func(ctx context.Context) ([]*domain.UserWithNames, error)
	updateFunc         func(ctx context.Context, u *domain.User) error
	updatePasswordFunc func(ctx context.Context, id uuid.UUID, passwordHash string) error
	toggleDeletedFunc  func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	toggleActiveFunc   func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	setRoleFunc        func(ctx context.Context, id, roleID uuid.UUID) (*domain.User, error)
	setPackageFunc     func(ctx context.Context, id, packageID uuid.UUID) (*domain.User, error)
	setDomaineFunc     func(ctx context.Context, domaineID uuid.UUID, userIDs []uuid.UUID) ([]*domain.User, error)
	addToWorkspaceFunc func(ctx context.Context, workspaceID uuid.UUID, userIDs []uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.UserWithNames, error) {
	return m.listFunc(ctx)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.updateFunc(ctx, u)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.updatePasswordFunc(ctx, id, passwordHash)
}

func (m *mockUserRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.toggleDeletedFunc(ctx, id)
}

func (m *mockUserRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.toggleActiveFunc(ctx, id)
}

func (m *mockUserRepo) SetRole(ctx context.Context, id, roleID uuid.UUID) (*domain.User, error) {
	return m.setRoleFunc(ctx, id, roleID)
}

func (m *mockUserRepo) SetPackage(ctx context.Context, id, packageID uuid.UUID) (*domain.User, error) {
	return m.setPackageFunc(ctx, id, packageID)
}

func (m *mockUserRepo) SetDomaine(ctx context.Context, domaineID uuid.UUID, userIDs []uuid.UUID) ([]*domain.User, error) {
	return m.setDomaineFunc(ctx, domaineID, userIDs)
}

func (m *mockUserRepo) AddToWorkspace(ctx context.Context, workspaceID uuid.UUID, userIDs []uuid.UUID) error {
	return m.addToWorkspaceFunc(ctx, workspaceID, userIDs)
}

// ---------------------------------------------------------------------------
// Mock PackageRepository
// ---------------------------------------------------------------------------

type mockPackageRepo struct {
	createFunc          func(ctx context.Context, p *domain.Package) error
	getByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Package, error)
	listFunc            func(ctx context.Context) ([]*domain.Package, error)
	updateFunc          func(ctx context.Context, p *domain.Package) error
	deleteFunc          func(ctx context.Context, id uuid.UUID) error
	toggleActiveFunc    func(ctx context.Context, id uuid.UUID) (*domain.Package, error)
	assignDomainesFunc  func(ctx context.Context, packageID uuid.UUID, domaineIDs []uuid.UUID) ([]*domain.Domaine, error)
	unassignDomaineFunc func(ctx context.Context, packageID, domaineID uuid.UUID) error
	listDomainesFunc    func(ctx context.Context, packageID uuid.UUID) ([]*domain.Domaine, error)
}

func (m *mockPackageRepo) Create(ctx context.Context, p *domain.Package) error {
	return m.createFunc(ctx, p)
}

func (m *mockPackageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockPackageRepo) List(ctx context.Context) ([]*domain.Package, error) {
	return m.listFunc(ctx)
}

func (m *mockPackageRepo) Update(ctx context.Context, p *domain.Package) error {
	return m.updateFunc(ctx, p)
}

func (m *mockPackageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockPackageRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	return m.toggleActiveFunc(ctx, id)
}

func (m *mockPackageRepo) AssignDomaines(ctx context.Context, packageID uuid.UUID, domaineIDs []uuid.UUID) ([]*domain.Domaine, error) {
	return m.assignDomainesFunc(ctx, packageID, domaineIDs)
}

func (m *mockPackageRepo) UnassignDomaine(ctx context.Context, packageID, domaineID uuid.UUID) error {
	return m.unassignDomaineFunc(ctx, packageID, domaineID)
}

func (m *mockPackageRepo) ListDomaines(ctx context.Context, packageID uuid.UUID) ([]*domain.Domaine, error) {
	return m.listDomainesFunc(ctx, packageID)
}

// ---------------------------------------------------------------------------
// Mock DomaineRepository
// ---------------------------------------------------------------------------

type mockDomaineRepo struct {
	createFunc        func(ctx context.Context, d *domain.Domaine) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Domaine, error)
	listFunc          func(ctx context.Context) ([]*domain.Domaine, error)
	updateFunc        func(ctx context.Context, d *domain.Domaine) error
	toggleDeletedFunc func(ctx context.Context, id uuid.UUID) (*domain.Domaine, error)
	toggleActiveFunc  func(ctx context.Context, id uuid.UUID) (*domain.Domaine, error)
	transferSoldeFunc func(ctx context.Context, domaineID uuid.UUID, tokens int64, workspaceIDs []uuid.UUID) (*domain.Domaine, []*domain.Workspace, error)
}

func (m *mockDomaineRepo) Create(ctx context.Context, d *domain.Domaine) error {
	return m.createFunc(ctx, d)
}

func (m *mockDomaineRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Domaine, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockDomaineRepo) List(ctx context.Context) ([]*domain.Domaine, error) {
	return m.listFunc(ctx)
}

func (m *mockDomaineRepo) Update(ctx context.Context, d *domain.Domaine) error {
	return m.updateFunc(ctx, d)
}

func (m *mockDomaineRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Domaine, error) {
	return m.toggleDeletedFunc(ctx, id)
}

func (m *mockDomaineRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Domaine, error) {
	return m.toggleActiveFunc(ctx, id)
}

func (m *mockDomaineRepo) TransferSolde(ctx context.Context, domaineID uuid.UUID, tokens int64, workspaceIDs []uuid.UUID) (*domain.Domaine, []*domain.Workspace, error) {
	return m.transferSoldeFunc(ctx, domaineID, tokens, workspaceIDs)
}

// ---------------------------------------------------------------------------
// Mock WorkspaceRepository
// ---------------------------------------------------------------------------

type mockWorkspaceRepo struct {
	createFunc        func(ctx context.Context, w *domain.Workspace) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	listFunc          func(ctx context.Context) ([]*domain.Workspace, error)
	updateFunc        func(ctx context.Context, w *domain.Workspace) error
	toggleDeletedFunc func(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	toggleActiveFunc  func(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	setDomaineFunc    func(ctx context.Context, domaineID uuid.UUID, workspaceIDs []uuid.UUID) ([]*domain.Workspace, error)
}

func (m *mockWorkspaceRepo) Create(ctx context.Context, w *domain.Workspace) error {
	return m.createFunc(ctx, w)
}

func (m *mockWorkspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockWorkspaceRepo) List(ctx context.Context) ([]*domain.Workspace, error) {
	return m.listFunc(ctx)
}

func (m *mockWorkspaceRepo) Update(ctx context.Context, w *domain.Workspace) error {
	return m.updateFunc(ctx, w)
}

func (m *mockWorkspaceRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	return m.toggleDeletedFunc(ctx, id)
}

func (m *mockWorkspaceRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	return m.toggleActiveFunc(ctx, id)
}

func (m *mockWorkspaceRepo) SetDomaine(ctx context.Context, domaineID uuid.UUID, workspaceIDs []uuid.UUID) ([]*domain.Workspace, error) {
	return m.setDomaineFunc(ctx, domaineID, workspaceIDs)
}

// ---------------------------------------------------------------------------
// Mock ChatbotRepository
// ---------------------------------------------------------------------------

type mockChatbotRepo struct {
	createFunc        func(ctx context.Context, c *domain.Chatbot) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Chatbot, error)
	listFunc          func(ctx context.Context) ([]*domain.Chatbot, error)
	updateFunc        func(ctx context.Context, c *domain.Chatbot) error
	toggleDeletedFunc func(ctx context.Context, id uuid.UUID) (*domain.Chatbot, error)
	toggleActiveFunc  func(ctx context.Context, id uuid.UUID) (*domain.Chatbot, error)
	setWorkspaceFunc  func(ctx context.Context, chatbotID, workspaceID uuid.UUID) (*domain.Chatbot, error)
}

func (m *mockChatbotRepo) Create(ctx context.Context, c *domain.Chatbot) error {
	return m.createFunc(ctx, c)
}

func (m *mockChatbotRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chatbot, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockChatbotRepo) List(ctx context.Context) ([]*domain.Chatbot, error) {
	return m.listFunc(ctx)
}

func (m *mockChatbotRepo) Update(ctx context.Context, c *domain.Chatbot) error {
	return m.updateFunc(ctx, c)
}

func (m *mockChatbotRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Chatbot, error) {
	return m.toggleDeletedFunc(ctx, id)
}

func (m *mockChatbotRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Chatbot, error) {
	return m.toggleActiveFunc(ctx, id)
}

func (m *mockChatbotRepo) SetWorkspace(ctx context.Context, chatbotID, workspaceID uuid.UUID) (*domain.Chatbot, error) {
	return m.setWorkspaceFunc(ctx, chatbotID, workspaceID)
}

// ---------------------------------------------------------------------------
// Mock RoleRepository
// ---------------------------------------------------------------------------

type mockRoleRepo struct {
	createFunc             func(ctx context.Context, r *domain.Role) error
	getByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	listFunc               func(ctx context.Context) ([]*domain.Role, error)
	toggleDeletedFunc      func(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	assignPermissionsFunc  func(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error
	unassignPermissionFunc func(ctx context.Context, roleID, permissionID uuid.UUID) error
	permissionsForRoleFunc func(ctx context.Context, roleID uuid.UUID) ([]string, error)
}

func (m *mockRoleRepo) Create(ctx context.Context, r *domain.Role) error {
	return m.createFunc(ctx, r)
}

func (m *mockRoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRoleRepo) List(ctx context.Context) ([]*domain.Role, error) {
	return m.listFunc(ctx)
}

func (m *mockRoleRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	return m.toggleDeletedFunc(ctx, id)
}

func (m *mockRoleRepo) AssignPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	return m.assignPermissionsFunc(ctx, roleID, permissionIDs)
}

func (m *mockRoleRepo) UnassignPermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	return m.unassignPermissionFunc(ctx, roleID, permissionID)
}

func (m *mockRoleRepo) PermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	return m.permissionsForRoleFunc(ctx, roleID)
}

// ---------------------------------------------------------------------------
// Mock PermissionRepository
// ---------------------------------------------------------------------------

type mockPermissionRepo struct {
	createFunc        func(ctx context.Context, p *domain.Permission) error
	listFunc          func(ctx context.Context) ([]*domain.Permission, error)
	toggleDeletedFunc func(ctx context.Context, id uuid.UUID) (*domain.Permission, error)
}

func (m *mockPermissionRepo) Create(ctx context.Context, p *domain.Permission) error {
	return m.createFunc(ctx, p)
}

func (m *mockPermissionRepo) List(ctx context.Context) ([]*domain.Permission, error) {
	return m.listFunc(ctx)
}

func (m *mockPermissionRepo) ToggleDeleted(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	return m.toggleDeletedFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	signUpFunc         func(ctx context.Context, email, password, fullName string, age int, soldeTotal int64) (*domain.User, error)
	loginFunc          func(ctx context.Context, email, password string) (*auth.LoginResult, error)
	refreshFunc        func(ctx context.Context, refreshToken string) (string, error)
	forgotPasswordFunc func(ctx context.Context, email string) (string, error)
	resetPasswordFunc  func(ctx context.Context, resetToken, newPassword string) error
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password, fullName string, age int, soldeTotal int64) (*domain.User, error) {
	return m.signUpFunc(ctx, email, password, fullName, age, soldeTotal)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*auth.LoginResult, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFunc(ctx, refreshToken)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	return m.forgotPasswordFunc(ctx, email)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return m.resetPasswordFunc(ctx, resetToken, newPassword)
}
