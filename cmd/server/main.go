package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agrisense-api/internal/adapters/agmarknet"
	"agrisense-api/internal/adapters/aimodel"
	"agrisense-api/internal/adapters/http/middleware"
	"agrisense-api/internal/adapters/http/routes"
	"agrisense-api/internal/adapters/llm"
	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/adapters/unsplash"
	"agrisense-api/internal/adapters/weather"
	"agrisense-api/internal/config"
	"agrisense-api/internal/core/services"
	"agrisense-api/internal/pkg/jwt"
	"agrisense-api/internal/pkg/logger"
	"agrisense-api/internal/pkg/metrics"
	"agrisense-api/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "agrisense-api/docs" // Swagger docs
)

// @title AgriSense API
// @version 1.0
// @description Farmer accounts, sessions and profile sync for AgriSense

// @contact.name API Support

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.AppMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	// Connect to database
	db, err := config.ConnectDatabase(cfg, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		zl.Fatal("failed to auto migrate", zap.Error(err))
	}
	zl.Info("database migration completed")

	hasher := password.NewHasher(password.DefaultCost)

	// Seed bootstrap admin
	if err := config.NewSeeder(db, hasher, cfg.AdminSeed, zl).Run(context.Background()); err != nil {
		zl.Warn("seeding failed", zap.Error(err))
	}

	m := metrics.New()
	tokens := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenMins)*time.Minute)

	// Weather enrichment; a nil provider disables it
	var provider services.WeatherProvider
	if cfg.WeatherEnabled() {
		client := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout)
		provider = weather.NewCachedProvider(client, cfg.Weather.CacheSize, cfg.Weather.CacheTTL, m)
	} else {
		zl.Warn("WEATHERAPI_COM_KEY not set, weather enrichment disabled")
	}
	farmerRepo := repositories.NewFarmerRepository(db)
	enricher := services.NewWeatherEnricher(provider, farmerRepo, zl, m)

	deps := &routes.Dependencies{
		DB:       db,
		Config:   cfg,
		Logger:   zl,
		Metrics:  m,
		Tokens:   tokens,
		Hasher:   hasher,
		Enricher: enricher,
	}
	if cfg.AI.ModelServiceURL != "" {
		deps.Model = aimodel.NewClient(cfg.AI.ModelServiceURL, cfg.AI.Timeout)
	}
	if cfg.AI.LLMToken != "" {
		deps.Chat = llm.NewClient(cfg.AI.LLMBaseURL, cfg.AI.LLMToken, cfg.AI.LLMModel, cfg.AI.Timeout)
	}
	if cfg.Market.AgmarknetKey != "" {
		deps.Prices = agmarknet.NewClient(cfg.Market.AgmarknetBaseURL, cfg.Market.AgmarknetKey, cfg.Market.Timeout)
	} else {
		zl.Warn("AGMARKNET_API_KEY not set, crop prices disabled")
	}
	if cfg.Market.UnsplashKey != "" {
		deps.Images = unsplash.NewClient(cfg.Market.UnsplashBaseURL, cfg.Market.UnsplashKey, cfg.Market.Timeout)
	}

	// Background weather sync
	cronService, err := services.NewCronService(cfg.Weather.SyncSchedule, farmerRepo, enricher, zl)
	if err != nil {
		zl.Fatal("invalid WEATHER_SYNC_CRON", zap.Error(err))
	}
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AgriSense API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, m)

	// Setup routes
	routes.Setup(app, deps)

	// Graceful shutdown
	go gracefulShutdown(app, zl)

	// Start server
	zl.Info("server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Error("server stopped with error", zap.Error(err))
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, zl *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
	zl.Info("server stopped gracefully")
}
