package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/internship-service/internal/api/http/handlers"
	"github.com/spec-kit/internship-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Interns        *handlers.InternsHandler
	Contacts       *handlers.ContactsHandler
	Sync           *handlers.SyncHandler
	AuthMiddleware *auth.AuthMiddleware
	// PublicLimiter throttles unauthenticated endpoints; nil disables it.
	PublicLimiter *RateLimiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	verify := api.Group("/verify")
	if cfg.PublicLimiter != nil {
		verify.Use(cfg.PublicLimiter.Handle("verify"))
	}
	verify.Get("/:internId", cfg.Interns.Verify)

	contact := api.Group("/contact")
	if cfg.PublicLimiter != nil {
		contact.Use(cfg.PublicLimiter.Handle("contact"))
	}
	contact.Post("/", cfg.Contacts.Submit)

	api.Post("/auth/login", cfg.Auth.Login)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/me", cfg.Auth.Me)
	admin.Post("/register", cfg.Auth.Register)
	admin.Post("/password/change", cfg.Auth.ChangePassword)

	admin.Get("/interns/stats", cfg.Interns.Stats)
	admin.Post("/interns", cfg.Interns.Create)
	admin.Get("/interns", cfg.Interns.List)
	admin.Get("/interns/:id", cfg.Interns.Get)
	admin.Patch("/interns/:id", cfg.Interns.Update)
	admin.Delete("/interns/:id", cfg.Interns.Delete)
	admin.Post("/interns/:id/offer-letter", cfg.Interns.SendOfferLetter)
	admin.Get("/interns/:id/offer-letter/preview", cfg.Interns.PreviewOfferLetter)
	admin.Post("/interns/:id/certificate", cfg.Interns.SendCertificate)
	admin.Get("/interns/:id/certificate/preview", cfg.Interns.PreviewCertificate)

	admin.Get("/contacts/stats", cfg.Contacts.Stats)
	admin.Get("/contacts", cfg.Contacts.List)
	admin.Get("/contacts/:id", cfg.Contacts.Get)
	admin.Patch("/contacts/:id/status", cfg.Contacts.UpdateStatus)
	admin.Delete("/contacts/:id", cfg.Contacts.Delete)

	admin.Post("/sync", cfg.Sync.Trigger)
	admin.Get("/sync/status", cfg.Sync.Status)
}
