// internal/handlers/router.go
package handlers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/config"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/handlers/admin"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/handlers/authn"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/handlers/companies"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/handlers/directory"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/handlers/reports"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/handlers/templates"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/handlers/workorders"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/middleware"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo"
)

// RegisterRoutes wires the full surface. Everything under the tenant group
// resolves and re-validates the x-company-id / x-user-id scope once per
// request; role gates sit on the mutating routes.
func RegisterRoutes(mux *chi.Mux, r repo.Repo, cfg config.Config) {
	co := companies.New(r)
	an := authn.New(r)
	dir := directory.New(r)
	tpl := templates.New(r)
	rep := reports.New(r)
	wo := workorders.New(r)
	ad := admin.New(r)

	// Public: onboarding and login
	mux.Post("/companies", co.Create)
	mux.Get("/companies", co.List)
	mux.Get("/companies/{id}", co.Get)
	mux.Post("/auth/login", an.Login)

	// Admin: shared-secret guarded seeding
	mux.Route("/admin", func(sr chi.Router) {
		sr.Use(middleware.AdminKey(cfg.Admin.Key))
		sr.Post("/dev-user", ad.DevUser)
	})

	// Tenant-scoped surface
	mux.Group(func(g chi.Router) {
		g.Use(middleware.TenantResolver(r))
		g.Use(middleware.EnrichLogger)

		g.Route("/customers", func(sr chi.Router) {
			sr.Get("/", dir.ListCustomers)
			sr.With(middleware.RequireRole(models.RoleAdmin)).Post("/", dir.CreateCustomer)
		})
		g.Route("/sites", func(sr chi.Router) {
			sr.Get("/", dir.ListSites)
			sr.With(middleware.RequireRole(models.RoleAdmin)).Post("/", dir.CreateSite)
		})
		g.Route("/assets", func(sr chi.Router) {
			sr.Get("/", dir.ListAssets)
			sr.With(middleware.RequireRole(models.RoleAdmin)).Post("/", dir.CreateAsset)
		})
		g.Route("/contacts", func(sr chi.Router) {
			sr.Get("/", dir.ListContacts)
			sr.With(middleware.RequireRole(models.RoleAdmin)).Post("/", dir.CreateContact)
		})

		g.Route("/maintenance-templates", func(sr chi.Router) {
			sr.Get("/", tpl.List)
			sr.Get("/{id}", tpl.Get)
			adm := sr.With(middleware.RequireRole(models.RoleAdmin))
			adm.Post("/", tpl.Create)
			adm.Patch("/{id}", tpl.Update)
			adm.Delete("/{id}", tpl.Archive)
		})

		g.Route("/maintenance-reports", func(sr chi.Router) {
			sr.Get("/", rep.List)
			sr.Get("/{id}", rep.Get)
			tech := sr.With(middleware.RequireRole(models.RoleTech))
			tech.Post("/", rep.Create)
			tech.Patch("/{id}", rep.UpdateHeader)
			tech.Patch("/{id}/items", rep.PatchItems)
			tech.Post("/{id}/finalize", rep.Finalize)
		})

		g.Route("/work-orders", func(sr chi.Router) {
			sr.Get("/", wo.List)
			sr.Get("/{id}", wo.Get)
			tech := sr.With(middleware.RequireRole(models.RoleTech))
			tech.Post("/", wo.Create)
			tech.Patch("/{id}", wo.Update)
			tech.Patch("/{id}/status", wo.SetStatus)
		})
	})
}
