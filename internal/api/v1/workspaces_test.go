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
// POST /workspaces
// ---------------------------------------------------------------------------

func TestCreateWorkspace(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		domaineID := uuid.New()
		var created *domain.Workspace

		_, api := humatest.New(t)
		store := &mockDataStore{
			workspaces: &mockWorkspaceRepo{
				createFunc: func(_ context.Context, w *domain.Workspace) error {
					created = w
					return nil
				},
			},
		}
		v1.RegisterWorkspaceRoutes(api, store, allowing("createWorkspace"))

		resp := api.PostCtx(authedCtx(uuid.New()), "/workspaces", map[string]any{
			"workspace_name": "research",
			"domaine_id":     domaineID.String(),
			"solde_total":    250,
		})

		require.Equal(t, http.StatusCreated, resp.Code)
		require.NotNil(t, created)
		assert.Equal(t, "research", created.WorkspaceName)
		assert.Equal(t, domaineID, created.DomaineID)
		assert.Equal(t, int64(250), created.SoldeTotal)
		assert.True(t, created.IsActive)
	})

	t.Run("insufficient_domaine_solde", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			workspaces: &mockWorkspaceRepo{
				createFunc: func(_ context.Context, _ *domain.Workspace) error {
					return domain.ErrInsufficientSolde
				},
			},
		}
		v1.RegisterWorkspaceRoutes(api, store, allowing("createWorkspace"))

		resp := api.PostCtx(authedCtx(uuid.New()), "/workspaces", map[string]any{
			"workspace_name": "research",
			"domaine_id":     uuid.NewString(),
			"solde_total":    999999,
		})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "solde insuffisant")
	})

	t.Run("domaine_not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			workspaces: &mockWorkspaceRepo{
				createFunc: func(_ context.Context, _ *domain.Workspace) error {
					return domain.ErrNotFound
				},
			},
		}
		v1.RegisterWorkspaceRoutes(api, store, allowing("createWorkspace"))

		resp := api.PostCtx(authedCtx(uuid.New()), "/workspaces", map[string]any{
			"workspace_name": "research",
			"domaine_id":     uuid.NewString(),
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// Toggles
// ---------------------------------------------------------------------------

func TestToggleWorkspace(t *testing.T) {
	t.Parallel()

	t.Run("active_toggle_double_call_restores", func(t *testing.T) {
		t.Parallel()

		wid := uuid.New()
		state := &domain.Workspace{ID: wid, WorkspaceName: "research", IsActive: true}

		_, api := humatest.New(t)
		store := &mockDataStore{
			workspaces: &mockWorkspaceRepo{
				toggleActiveFunc: func(_ context.Context, _ uuid.UUID) (*domain.Workspace, error) {
					state.IsActive = !state.IsActive
					return state, nil
				},
			},
		}
		v1.RegisterWorkspaceRoutes(api, store, allowing("activeDesactiveWorkspace"))

		resp := api.PatchCtx(authedCtx(uuid.New()), "/workspaces/active-desactive/"+wid.String())
		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Workspace
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.False(t, body.IsActive)

		resp = api.PatchCtx(authedCtx(uuid.New()), "/workspaces/active-desactive/"+wid.String())
		require.Equal(t, http.StatusOK, resp.Code)

		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.True(t, body.IsActive)
	})
}

// ---------------------------------------------------------------------------
// POST /workspaces/assign-domaine
// ---------------------------------------------------------------------------

func TestAssignDomaineToWorkspaces(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		domaineID := uuid.New()
		w1 := uuid.New()
		w2 := uuid.New()

		_, api := humatest.New(t)
		store := &mockDataStore{
			domaines: &mockDomaineRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Domaine, error) {
					return &domain.Domaine{ID: domaineID}, nil
				},
			},
			workspaces: &mockWorkspaceRepo{
				setDomaineFunc: func(_ context.Context, dID uuid.UUID, workspaceIDs []uuid.UUID) ([]*domain.Workspace, error) {
					assert.Equal(t, domaineID, dID)
					assert.Equal(t, []uuid.UUID{w1, w2}, workspaceIDs)
					return []*domain.Workspace{
						{ID: w1, DomaineID: dID},
						{ID: w2, DomaineID: dID},
					}, nil
				},
			},
		}
		v1.RegisterWorkspaceRoutes(api, store, allowing("assignDomainToWorkspaces"))

		resp := api.PostCtx(authedCtx(uuid.New()), "/workspaces/assign-domaine", map[string]any{
			"domaine_id":    domaineID.String(),
			"workspace_ids": []string{w1.String(), w2.String()},
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body []domain.Workspace
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, domaineID, body[0].DomaineID)
	})

	t.Run("domaine_not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			domaines: &mockDomaineRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Domaine, error) {
					return nil, domain.ErrNotFound
				},
			},
			workspaces: &mockWorkspaceRepo{},
		}
		v1.RegisterWorkspaceRoutes(api, store, allowing("assignDomainToWorkspaces"))

		resp := api.PostCtx(authedCtx(uuid.New()), "/workspaces/assign-domaine", map[string]any{
			"domaine_id":    uuid.NewString(),
			"workspace_ids": []string{uuid.NewString()},
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
