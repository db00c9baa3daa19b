package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botplane/botplane/internal/authz"
	"github.com/botplane/botplane/internal/domain"
	"github.com/botplane/botplane/internal/server/middleware"
)

type permsFunc func(ctx context.Context, roleID uuid.UUID) ([]string, error)

func (f permsFunc) PermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	return f(ctx, roleID)
}

func ctxWithUser(roleID *uuid.UUID, roleName string) context.Context {
	user := &domain.User{ID: uuid.New(), RoleID: roleID, IsActive: true}
	ctx := context.WithValue(context.Background(), middleware.ContextKeyUser, user)
	if roleName != "" {
		ctx = context.WithValue(ctx, middleware.ContextKeyRoleName, roleName)
	}
	return ctx
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestRequire(t *testing.T) {
	t.Parallel()

	t.Run("no_user_in_context", func(t *testing.T) {
		t.Parallel()

		checker := authz.NewChecker(permsFunc(func(context.Context, uuid.UUID) ([]string, error) {
			return []string{"createUser"}, nil
		}))

		err := checker.Require(context.Background(), "createUser")
		require.Error(t, err)
		assert.Equal(t, 401, statusOf(t, err))
	})

	t.Run("user_without_role", func(t *testing.T) {
		t.Parallel()

		checker := authz.NewChecker(permsFunc(func(context.Context, uuid.UUID) ([]string, error) {
			return []string{"createUser"}, nil
		}))

		err := checker.Require(ctxWithUser(nil, ""), "createUser")
		require.Error(t, err)
		assert.Equal(t, 403, statusOf(t, err))
	})

	t.Run("permission_held", func(t *testing.T) {
		t.Parallel()

		roleID := uuid.New()
		checker := authz.NewChecker(permsFunc(func(_ context.Context, rID uuid.UUID) ([]string, error) {
			assert.Equal(t, roleID, rID)
			return []string{"createUser", "getAllUsers"}, nil
		}))

		err := checker.Require(ctxWithUser(&roleID, "admin"), "createUser")
		assert.NoError(t, err)
	})

	t.Run("permission_missing", func(t *testing.T) {
		t.Parallel()

		roleID := uuid.New()
		checker := authz.NewChecker(permsFunc(func(context.Context, uuid.UUID) ([]string, error) {
			return []string{"getAllUsers"}, nil
		}))

		err := checker.Require(ctxWithUser(&roleID, "viewer"), "createUser")
		require.Error(t, err)
		assert.Equal(t, 403, statusOf(t, err))
	})

	t.Run("empty_permission_set_denies_everything", func(t *testing.T) {
		t.Parallel()

		roleID := uuid.New()
		checker := authz.NewChecker(permsFunc(func(context.Context, uuid.UUID) ([]string, error) {
			return nil, nil
		}))

		for _, perm := range []string{"createUser", "getAllUsers", "assignSoldeToWorkspaces"} {
			err := checker.Require(ctxWithUser(&roleID, "empty"), perm)
			require.Error(t, err)
			assert.Equal(t, 403, statusOf(t, err))
		}
	})

	t.Run("source_error_is_500", func(t *testing.T) {
		t.Parallel()

		roleID := uuid.New()
		checker := authz.NewChecker(permsFunc(func(context.Context, uuid.UUID) ([]string, error) {
			return nil, errors.New("db: timeout")
		}))

		err := checker.Require(ctxWithUser(&roleID, "admin"), "createUser")
		require.Error(t, err)
		assert.Equal(t, 500, statusOf(t, err))
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	checker := authz.NewChecker(permsFunc(func(context.Context, uuid.UUID) ([]string, error) {
		return nil, nil
	}))

	t.Run("matching_role", func(t *testing.T) {
		t.Parallel()

		roleID := uuid.New()
		err := checker.RequireRole(ctxWithUser(&roleID, "admin"), "admin", "owner")
		assert.NoError(t, err)
	})

	t.Run("wrong_role", func(t *testing.T) {
		t.Parallel()

		roleID := uuid.New()
		err := checker.RequireRole(ctxWithUser(&roleID, "viewer"), "admin")
		require.Error(t, err)
		assert.Equal(t, 403, statusOf(t, err))
	})

	t.Run("no_user", func(t *testing.T) {
		t.Parallel()

		err := checker.RequireRole(context.Background(), "admin")
		require.Error(t, err)
		assert.Equal(t, 401, statusOf(t, err))
	})
}
