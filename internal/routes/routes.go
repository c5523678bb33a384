package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/talentbridge/intake-backend/internal/handlers"
	"github.com/talentbridge/intake-backend/internal/middleware"
)

const (
	RoleAdmin              = "admin"
	ScopeOpportunityWriter = "opportunities:write"
)

func Setup(
	app *fiber.App,
	resolver *middleware.IdentityResolver,
	applicantHandler *handlers.ApplicantHandler,
	uploadHandler *handlers.UploadHandler,
	submissionHandler *handlers.SubmissionHandler,
	opportunityHandler *handlers.OpportunityHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Intake entry point; opens the cookie session used by the rest of
	// the unauthenticated flow. Stricter limit than the general API.
	applicants := api.Group("/applicants")
	applicants.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	applicants.Post("/", applicantHandler.Create)

	// Account deletion accepts a valid token even before the applicant
	// row exists.
	api.Delete("/applicants/me", resolver.RequireJWTAllowUnregistered(), applicantHandler.DeleteAccount)

	// Privileged applicant updates
	admin := api.Group("/admin", resolver.RequireRole(RoleAdmin))
	admin.Patch("/applicants/:id/external-id", applicantHandler.AttachExternalID)
	admin.Patch("/applicants/:id/pause", applicantHandler.SetPaused)

	// Partner intake, scope-gated. Registered before the cookie-or-token
	// group: that group's middleware hangs off the /api prefix and would
	// otherwise run for partner requests too.
	api.Post("/opportunities", resolver.RequireScope(ScopeOpportunityWriter), opportunityHandler.Create)

	// Upload lifecycle and submissions: bearer token or session cookie
	authed := api.Group("", resolver.RequireJWTOrCookie())
	authed.Post("/uploads", uploadHandler.Request)
	authed.Post("/uploads/:id/complete", uploadHandler.Complete)
	authed.Get("/uploads/resume", uploadHandler.ResumeDownload)

	authed.Put("/submissions/draft", submissionHandler.SaveDraft)
	authed.Post("/submissions", submissionHandler.CreateFinal)
	authed.Get("/submissions/current", submissionHandler.Current)
}
