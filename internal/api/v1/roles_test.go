package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/botplane/botplane/internal/api/v1"
	"github.com/botplane/botplane/internal/domain"
)

// ---------------------------------------------------------------------------
// POST /roles + GET /roles
// ---------------------------------------------------------------------------

func TestCreateRole(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		var created *domain.Role

		_, api := humatest.New(t)
		store := &mockDataStore{
			roles: &mockRoleRepo{
				createFunc: func(_ context.Context, r *domain.Role) error {
					created = r
					return nil
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing("createRole"), &recordingInvalidator{})

		resp := api.PostCtx(authedCtx(uuid.New()), "/roles", map[string]any{
			"role_name": "editor",
		})

		require.Equal(t, http.StatusCreated, resp.Code)
		require.NotNil(t, created)
		assert.Equal(t, "editor", created.RoleName)
	})

	t.Run("duplicate_role_name", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			roles: &mockRoleRepo{
				createFunc: func(_ context.Context, _ *domain.Role) error {
					return domain.ErrConflict
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing("createRole"), &recordingInvalidator{})

		resp := api.PostCtx(authedCtx(uuid.New()), "/roles", map[string]any{
			"role_name": "editor",
		})

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestListRoles(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			roles: &mockRoleRepo{
				listFunc: func(_ context.Context) ([]*domain.Role, error) {
					return []*domain.Role{
						{ID: uuid.New(), RoleName: "admin"},
						{ID: uuid.New(), RoleName: "editor"},
					}, nil
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing("getAllRoles"), &recordingInvalidator{})

		resp := api.GetCtx(authedCtx(uuid.New()), "/roles")

		require.Equal(t, http.StatusOK, resp.Code)

		var body []domain.Role
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, "admin", body[0].RoleName)
	})
}

// ---------------------------------------------------------------------------
// Permission CRUD
// ---------------------------------------------------------------------------

func TestCreatePermission(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		var created *domain.Permission

		_, api := humatest.New(t)
		store := &mockDataStore{
			permissions: &mockPermissionRepo{
				createFunc: func(_ context.Context, p *domain.Permission) error {
					created = p
					return nil
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing("createPermission"), &recordingInvalidator{})

		resp := api.PostCtx(authedCtx(uuid.New()), "/roles/permissions", map[string]any{
			"permission_name": "createUser",
		})

		require.Equal(t, http.StatusCreated, resp.Code)
		require.NotNil(t, created)
		assert.Equal(t, "createUser", created.PermissionName)
	})

	t.Run("duplicate_permission_name", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			permissions: &mockPermissionRepo{
				createFunc: func(_ context.Context, _ *domain.Permission) error {
					return domain.ErrConflict
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing("createPermission"), &recordingInvalidator{})

		resp := api.PostCtx(authedCtx(uuid.New()), "/roles/permissions", map[string]any{
			"permission_name": "createUser",
		})

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestTogglePermission(t *testing.T) {
	t.Parallel()

	t.Run("double_call_restores", func(t *testing.T) {
		t.Parallel()

		pid := uuid.New()
		state := &domain.Permission{ID: pid, PermissionName: "createUser"}

		_, api := humatest.New(t)
		store := &mockDataStore{
			permissions: &mockPermissionRepo{
				toggleDeletedFunc: func(_ context.Context, _ uuid.UUID) (*domain.Permission, error) {
					state.IsDeleted = !state.IsDeleted
					return state, nil
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing(), &recordingInvalidator{})

		resp := api.DeleteCtx(authedCtx(uuid.New()), "/roles/permissions/"+pid.String())
		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Permission
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.True(t, body.IsDeleted)

		resp = api.DeleteCtx(authedCtx(uuid.New()), "/roles/permissions/"+pid.String())
		require.Equal(t, http.StatusOK, resp.Code)

		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.False(t, body.IsDeleted)
	})
}

// ---------------------------------------------------------------------------
// Role-permission assignment
// ---------------------------------------------------------------------------

func TestAssignPermissionsToRole(t *testing.T) {
	t.Parallel()

	t.Run("assigns_and_invalidates_cache", func(t *testing.T) {
		t.Parallel()

		roleID := uuid.New()
		p1 := uuid.New()
		p2 := uuid.New()
		inv := &recordingInvalidator{}

		_, api := humatest.New(t)
		store := &mockDataStore{
			roles: &mockRoleRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Role, error) {
					return &domain.Role{ID: roleID, RoleName: "editor"}, nil
				},
				assignPermissionsFunc: func(_ context.Context, rID uuid.UUID, permissionIDs []uuid.UUID) error {
					assert.Equal(t, roleID, rID)
					assert.Equal(t, []uuid.UUID{p1, p2}, permissionIDs)
					return nil
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing("assignPermissionsToRole"), inv)

		resp := api.PostCtx(authedCtx(uuid.New()), "/roles/assign-permissions", map[string]any{
			"role_id":        roleID.String(),
			"permission_ids": []string{p1.String(), p2.String()},
		})

		require.Equal(t, http.StatusOK, resp.Code)
		require.Len(t, inv.roleIDs, 1)
		assert.Equal(t, roleID, inv.roleIDs[0])
	})

	t.Run("role_not_found", func(t *testing.T) {
		t.Parallel()

		inv := &recordingInvalidator{}

		_, api := humatest.New(t)
		store := &mockDataStore{
			roles: &mockRoleRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Role, error) {
					return nil, domain.ErrNotFound
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing("assignPermissionsToRole"), inv)

		resp := api.PostCtx(authedCtx(uuid.New()), "/roles/assign-permissions", map[string]any{
			"role_id":        uuid.NewString(),
			"permission_ids": []string{uuid.NewString()},
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Empty(t, inv.roleIDs)
	})
}

func TestUnassignPermissionFromRole(t *testing.T) {
	t.Parallel()

	t.Run("unassigns_and_invalidates_cache", func(t *testing.T) {
		t.Parallel()

		roleID := uuid.New()
		permID := uuid.New()
		inv := &recordingInvalidator{}

		_, api := humatest.New(t)
		store := &mockDataStore{
			roles: &mockRoleRepo{
				unassignPermissionFunc: func(_ context.Context, rID, pID uuid.UUID) error {
					assert.Equal(t, roleID, rID)
					assert.Equal(t, permID, pID)
					return nil
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing(), inv)

		resp := api.PostCtx(authedCtx(uuid.New()), "/roles/unassign-permission", map[string]any{
			"role_id":       roleID.String(),
			"permission_id": permID.String(),
		})

		require.Equal(t, http.StatusOK, resp.Code)
		require.Len(t, inv.roleIDs, 1)
		assert.Equal(t, roleID, inv.roleIDs[0])
	})

	t.Run("not_assigned", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			roles: &mockRoleRepo{
				unassignPermissionFunc: func(_ context.Context, _, _ uuid.UUID) error {
					return domain.ErrNotFound
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing(), &recordingInvalidator{})

		resp := api.PostCtx(authedCtx(uuid.New()), "/roles/unassign-permission", map[string]any{
			"role_id":       uuid.NewString(),
			"permission_id": uuid.NewString(),
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /roles/permissions-by-role/{id}
// ---------------------------------------------------------------------------

func TestGetRolePermissions(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		roleID := uuid.New()

		_, api := humatest.New(t)
		store := &mockDataStore{
			roles: &mockRoleRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Role, error) {
					return &domain.Role{ID: roleID, RoleName: "editor"}, nil
				},
				permissionsForRoleFunc: func(_ context.Context, rID uuid.UUID) ([]string, error) {
					assert.Equal(t, roleID, rID)
					return []string{"createUser", "getAllUsers"}, nil
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing("getPermissionsByRole"), &recordingInvalidator{})

		resp := api.GetCtx(authedCtx(uuid.New()), "/roles/permissions-by-role/"+roleID.String())

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			RoleName    string   `json:"role_name"`
			Permissions []string `json:"permissions"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "editor", body.RoleName)
		assert.Equal(t, []string{"createUser", "getAllUsers"}, body.Permissions)
	})

	t.Run("role_not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			roles: &mockRoleRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Role, error) {
					return nil, domain.ErrNotFound
				},
			},
		}
		v1.RegisterRoleRoutes(api, store, allowing("getPermissionsByRole"), &recordingInvalidator{})

		resp := api.GetCtx(authedCtx(uuid.New()), "/roles/permissions-by-role/"+uuid.NewString())

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
