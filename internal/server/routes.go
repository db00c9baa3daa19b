package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/botplane/botplane/internal/api/v1"
	"github.com/botplane/botplane/internal/authz"
	"github.com/botplane/botplane/internal/store/postgres"
)

func registerAuthRoutes(api huma.API, authSvc v1.AuthService) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, store *postgres.Store, checker *authz.Checker, invalidator authz.Invalidator) {
	v1.RegisterUserRoutes(api, store, checker)
	v1.RegisterPackageRoutes(api, store, checker)
	v1.RegisterDomaineRoutes(api, store, checker)
	v1.RegisterWorkspaceRoutes(api, store, checker)
	v1.RegisterChatbotRoutes(api, store, checker)
	v1.RegisterRoleRoutes(api, store, checker, invalidator)
}
