package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-intel-service/internal/api/http/handlers"
	"github.com/spec-kit/field-intel-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Hierarchy      *handlers.HierarchyHandler
	Delegations    *handlers.DelegationHandler
	Dashboard      *handlers.DashboardHandler
	Reorg          *handlers.ReorgHandler
	Accounts       *handlers.AccountsHandler
	Webhook        *handlers.WebhookHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Mutating hierarchy, delegation, reorg and
// admin-data routes are gated to admins; reads need any authenticated caller.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	// The encoder posts here without credentials; method filtering happens in
	// the handler so non-POST methods get 405 rather than 404.
	app.All("/webhooks/bunny", cfg.Webhook.HandleEncoderCallback)

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authed.Get("/auth/me", cfg.Auth.Me)
	authed.Post("/auth/devices", cfg.Auth.RegisterDevice)

	authed.Get("/hierarchy", cfg.Hierarchy.ListAssignments)
	authed.Get("/hierarchy/:personId", cfg.Hierarchy.GetProfile)
	authed.Get("/hierarchy/:personId/impact", cfg.Hierarchy.RemoveImpact)
	authed.Get("/hierarchy/:personId/breadcrumbs", cfg.Hierarchy.Breadcrumbs)

	authed.Get("/delegations/to/:personId", cfg.Delegations.ListTo)
	authed.Get("/delegations/by/:personId", cfg.Delegations.ListBy)

	authed.Get("/dashboard/unassigned-people", cfg.Dashboard.UnassignedPeople)
	authed.Get("/dashboard/accounts/:accountId/potential", cfg.Dashboard.AccountPotential)
	authed.Get("/dashboard/:personId/subordinates", cfg.Dashboard.Subordinates)
	authed.Get("/dashboard/:personId/unassigned-accounts", cfg.Dashboard.UnassignedAccounts)
	authed.Get("/dashboard/:personId/potential", cfg.Dashboard.ScopePotential)

	authed.Get("/accounts/:id", cfg.Accounts.GetAccount)
	authed.Get("/accounts/:id/calls", cfg.Accounts.ListCalls)
	authed.Post("/accounts/:id/calls", cfg.Accounts.LogCall)
	authed.Get("/custom-fields", cfg.Accounts.ListFields)
	authed.Get("/regions", cfg.Accounts.ListRegions)

	admin := authed.Group("", auth.RequireAdmin())
	admin.Put("/hierarchy/:personId", cfg.Hierarchy.AssignRole)
	admin.Post("/hierarchy/:personId/tier", cfg.Hierarchy.SetTier)
	admin.Delete("/hierarchy/:personId", cfg.Hierarchy.RemovePerson)

	admin.Post("/delegations/assign", cfg.Delegations.Assign)
	admin.Post("/delegations/unassign", cfg.Delegations.Unassign)
	admin.Post("/delegations/reassign", cfg.Delegations.Reassign)

	admin.Post("/reorg/drop", cfg.Reorg.ResolveDrop)
	admin.Post("/reorg/commit", cfg.Reorg.Commit)

	admin.Post("/imports/accounts", cfg.Accounts.Import)
	admin.Post("/custom-fields", cfg.Accounts.CreateField)
	admin.Put("/accounts/:id/custom-fields/:fieldId", cfg.Accounts.SetFieldValue)
	admin.Post("/regions", cfg.Accounts.CreateRegion)
}
