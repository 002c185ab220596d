package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/session"

	"camacero/api-gateway/config"
	"camacero/api-gateway/handlers"
	"camacero/api-gateway/internal/auth"
	"camacero/api-gateway/internal/builder"
	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/middleware"
	"camacero/api-gateway/models"
)

func main() {
	cfg := config.Load()
	config.InitLogger()

	if err := config.InitSupabase(cfg); err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	// Repository selection happens once here: in-memory when Supabase is
	// not configured, remote-first with local fallback otherwise.
	local := store.NewMemory()
	var dataStore store.Store = local
	if config.SupabaseClient != nil {
		dataStore = store.NewFallback(store.NewSupabase(config.SupabaseClient), local, config.Log)
	}

	sessions := session.New(session.Config{
		Expiration:     12 * time.Hour,
		KeyLookup:      "cookie:camacero_session",
		CookieHTTPOnly: true,
	})

	authService := auth.NewService(dataStore, config.Log)
	builderManager := builder.NewManager()
	h := handlers.NewApplicationHandler(config.Log, dataStore, authService, sessions, builderManager)

	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger())

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	// Public directory routes
	app.Get("/", h.ListCompanies)

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/empresas", h.ListCompanies)
	apiV1.Get("/empresas/:id", h.GetCompany)
	apiV1.Get("/noticias", h.ListArticles)
	apiV1.Get("/noticias/:id", h.GetArticle)
	apiV1.Get("/exito", h.CheckoutSuccess)
	apiV1.Get("/status/supabase", h.SupabaseStatus)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", h.LoginCompany)
	authRoutes.Post("/admin/login", h.LoginAdmin)
	authRoutes.Post("/logout", h.Logout)
	authRoutes.Get("/me", h.Me)

	// Company portal routes, gated by authentication only
	portal := apiV1.Group("/portal", middleware.RequireAuth(sessions, false))
	portal.Get("/dashboard", h.PortalDashboard)
	portal.Get("/perfil", h.PortalProfile)
	portal.Patch("/perfil", h.UpdatePortalProfile)
	portal.Get("/servicios", h.ListPortalProducts)
	portal.Post("/servicios", middleware.RequirePermission(sessions, "write"), h.CreatePortalProduct)
	portal.Patch("/servicios/:id", middleware.RequirePermission(sessions, "write"), h.UpdatePortalProduct)
	portal.Delete("/servicios/:id", middleware.RequirePermission(sessions, "write"), h.DeletePortalProduct)
	portal.Get("/noticias", h.ListPortalArticles)
	portal.Get("/ajustes", h.GetSettings)
	portal.Put("/ajustes", h.SaveSetting)
	portal.Get("/ajustes/generator", h.GetGeneratorConfig)
	portal.Put("/ajustes/generator", h.SaveGeneratorConfig)

	// Superadmin back office, gated by the superadmin role
	admin := apiV1.Group("/admin",
		middleware.RequireAuth(sessions, true),
		middleware.RequireRole(sessions, models.RoleSuperAdmin),
	)
	admin.Get("/dashboard", h.AdminDashboard)
	admin.Get("/empresas", h.ListCompanies)
	admin.Post("/empresas", h.CreateCompany)
	admin.Get("/empresas/:id", h.GetCompany)
	admin.Patch("/empresas/:id", h.UpdateCompany)
	admin.Delete("/empresas/:id", h.DeleteCompany)
	admin.Get("/usuarios", middleware.RequirePermission(sessions, "manage_users"), h.ListUsers)
	admin.Get("/ajustes", h.GetSettings)
	admin.Put("/ajustes", h.SaveSetting)
	admin.Get("/templates", h.ListTemplates)
	admin.Post("/templates", h.SaveTemplate)
	admin.Get("/templates/:id", h.GetTemplate)
	admin.Put("/templates/:id", h.SaveTemplate)
	admin.Delete("/templates/:id", h.DeleteTemplate)
	admin.Get("/campaigns", h.ListCampaigns)
	admin.Post("/campaigns", h.CreateCampaign)

	// Builder sessions for templates and campaigns
	builderRoutes := admin.Group("/builder/sessions")
	builderRoutes.Post("", h.OpenBuilder)
	builderRoutes.Get("/:sid", h.BuilderState)
	builderRoutes.Post("/:sid/elements", h.InsertElement)
	builderRoutes.Patch("/:sid/elements/order", h.MoveElement)
	builderRoutes.Delete("/:sid/elements/:instanceId", h.DeleteElement)
	builderRoutes.Post("/:sid/selection", h.SelectElement)
	builderRoutes.Patch("/:sid/selection/content", h.EditSelectedContent)
	builderRoutes.Post("/:sid/template", h.SaveBuilderTemplate)
	builderRoutes.Post("/:sid/campaign", h.SaveBuilderCampaign)

	// Unknown paths redirect to the landing route
	app.Use(func(c *fiber.Ctx) error {
		return c.Redirect("/", fiber.StatusFound)
	})

	log.Printf("Starting API Gateway on port %s...", cfg.ServerPort)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
