package routes

import (
	"time"

	"agrisense-api/internal/adapters/http/handlers"
	"agrisense-api/internal/adapters/http/middleware"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/config"
	"agrisense-api/internal/core/services"
	"agrisense-api/internal/pkg/jwt"
	"agrisense-api/internal/pkg/metrics"
	"agrisense-api/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the long-lived collaborators built in main
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Tokens   *jwt.Manager
	Hasher   *password.Hasher
	Enricher *services.WeatherEnricher
	Model    services.ModelService  // nil when AI_SERVICE_URL is unset
	Chat     services.ChatCompleter // nil when HF_TOKEN is unset
	Prices   services.PriceSource   // nil when AGMARKNET_API_KEY is unset
	Images   services.ImageFinder   // nil when UNSPLASH_ACCESS_KEY is unset
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps *Dependencies) {
	cfg, log := deps.Config, deps.Logger

	// Initialize repositories
	farmerRepo := repositories.NewFarmerRepository(deps.DB)
	assetRepo := repositories.NewAssetRepository(deps.DB)

	// Initialize services
	authService := services.NewAuthService(farmerRepo, assetRepo, deps.Hasher, deps.Tokens, deps.Enricher, log, deps.Metrics)
	farmerService := services.NewFarmerService(farmerRepo, log)
	assetService := services.NewAssetService(assetRepo, farmerRepo, log)
	dashboardService := services.NewDashboardService(farmerRepo, assetService, deps.Enricher)
	advisorService := services.NewAdvisorService(farmerRepo, services.AdvisorBackends{
		Model:  deps.Model,
		Chat:   deps.Chat,
		Prices: deps.Prices,
		Images: deps.Images,
	}, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DB, cfg)
	authHandler := handlers.NewAuthHandler(authService, log)
	farmerHandler := handlers.NewFarmerHandler(farmerService, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)
	assetHandler := handlers.NewAssetHandler(assetService, log)
	advisorHandler := handlers.NewAdvisorHandler(advisorService, log)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	// Swagger documentation
	app.Get("/swagger/*", middleware.PublicCache(time.Hour), swagger.HandlerDefault)

	farmer := app.Group("/farmer")
	setupAuthRoutes(farmer, authHandler, cfg)
	setupFarmerRoutes(farmer, farmerHandler, dashboardHandler, assetHandler, advisorHandler, deps.Tokens)

	admin := app.Group("/admin", middleware.AdminOnly(deps.Tokens), middleware.NoStore())
	setupAdminRoutes(admin, farmerHandler, assetHandler)
}

// setupAuthRoutes configures the public signup and login routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	limit := middleware.AuthRateLimiter(cfg)
	noStore := middleware.NoStore()

	router.Post("/signup", limit, noStore, handler.Signup)
	router.Post("/login", limit, noStore, handler.Login)
}

// setupFarmerRoutes configures protected farmer routes. Guards are applied per
// route because the group also carries the public auth routes.
func setupFarmerRoutes(
	router fiber.Router,
	farmerHandler *handlers.FarmerHandler,
	dashboardHandler *handlers.DashboardHandler,
	assetHandler *handlers.AssetHandler,
	advisorHandler *handlers.AdvisorHandler,
	tokens *jwt.Manager,
) {
	anyRole := middleware.FarmerOrAdmin(tokens)
	farmerOnly := middleware.FarmerOnly(tokens)
	noStore := middleware.NoStore()

	// Profile
	router.Get("/profile", anyRole, noStore, farmerHandler.GetProfile)
	router.Put("/update", anyRole, noStore, farmerHandler.UpdateProfile)
	router.Get("/dashboard", anyRole, noStore, dashboardHandler.GetFarmerDashboard)

	// Assets
	router.Get("/assets/:farmerId", anyRole, assetHandler.GetAssets)
	router.Get("/assets/:farmerId/stats", anyRole, assetHandler.GetStats)
	router.Post("/assets", anyRole, assetHandler.SaveAssets)

	// Advisor
	router.Post("/recommend-crop", farmerOnly, advisorHandler.RecommendCrop)
	router.Post("/predict-yield", farmerOnly, advisorHandler.PredictYield)
	router.Post("/chat", anyRole, advisorHandler.Chat)
	router.Get("/crop-prices", anyRole, advisorHandler.CropPrices)
	router.Post("/finance-advice", anyRole, advisorHandler.FinanceAdvice)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(router fiber.Router, farmerHandler *handlers.FarmerHandler, assetHandler *handlers.AssetHandler) {
	router.Get("/farmers", farmerHandler.ListFarmers)
	router.Get("/assets", assetHandler.ListAll)
}
