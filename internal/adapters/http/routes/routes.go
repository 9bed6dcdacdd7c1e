package routes

import (
	"time"

	"teampulse/internal/adapters/http/handlers"
	"teampulse/internal/adapters/http/middleware"
	"teampulse/internal/adapters/persistence"
	"teampulse/internal/config"
	"teampulse/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, ds *persistence.DataSource, svc *services.Services) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, ds)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	agentHandler := handlers.NewAgentHandler(svc.Agents)
	missionHandler := handlers.NewMissionHandler(svc.Missions)
	actionHandler := handlers.NewActionHandler(svc.Actions)
	archiveHandler := handlers.NewArchiveHandler(svc.Archives)
	settingsHandler := handlers.NewSettingsHandler(svc.Settings)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded avatars
	if cfg.Storage.AvatarDir != "" {
		app.Static("/avatars", cfg.Storage.AvatarDir, fiber.Static{
			MaxAge: int((24 * time.Hour).Seconds()),
		})
	}

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	auth := apiV1.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	requireAuth := middleware.AuthMiddleware(cfg, svc.Auth)
	auth.Get("/me", requireAuth, authHandler.Me)

	apiV1.Get("/dashboard", requireAuth, middleware.NoCacheHeaders(), dashboardHandler.GetDashboard)

	// Agents
	agents := apiV1.Group("/agents", requireAuth)
	agents.Get("/", agentHandler.ListAgents)
	agents.Post("/", middleware.AdminOnly(), agentHandler.CreateAgent)
	agents.Post("/avatar", middleware.AdminOnly(), agentHandler.UploadAvatar)
	agents.Get("/:id", agentHandler.GetAgent)
	agents.Put("/:id", middleware.AdminOnly(), agentHandler.UpdateAgent)
	agents.Delete("/:id", middleware.AdminOnly(), agentHandler.DeactivateAgent)

	// Missions
	missions := apiV1.Group("/missions", requireAuth)
	missions.Get("/", missionHandler.ListMissions)
	missions.Post("/", middleware.AdminOnly(), missionHandler.CreateMission)
	missions.Get("/:id", missionHandler.GetMission)
	missions.Put("/:id", middleware.AdminOnly(), missionHandler.UpdateMission)
	missions.Delete("/:id", middleware.AdminOnly(), missionHandler.DeactivateMission)

	// Actions ledger. Registration checks the role against settings in the handler.
	actions := apiV1.Group("/actions", requireAuth)
	actions.Get("/recent", middleware.NoCacheHeaders(), actionHandler.ListRecent)
	actions.Post("/", actionHandler.RegisterAction)
	actions.Delete("/:id", middleware.AdminOnly(), actionHandler.DeleteAction)

	// Archives
	archives := apiV1.Group("/archives", requireAuth)
	archives.Get("/", archiveHandler.ListArchives)
	archives.Get("/:month", middleware.PrivateCacheHeaders(5*time.Minute), archiveHandler.GetArchive)
	archives.Post("/:month/close", middleware.AdminOnly(), archiveHandler.CloseMonth)

	// Settings
	settings := apiV1.Group("/settings", requireAuth)
	settings.Get("/", settingsHandler.GetSettings)
	settings.Put("/", middleware.AdminOnly(), settingsHandler.UpdateSettings)
}
