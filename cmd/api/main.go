package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/ratingfy/internal/config"
	"github.com/Pesokrava/ratingfy/internal/delivery/events"
	httpDelivery "github.com/Pesokrava/ratingfy/internal/delivery/http"
	"github.com/Pesokrava/ratingfy/internal/delivery/http/handler"
	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/cache"
	"github.com/Pesokrava/ratingfy/internal/pkg/database"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/ratingfy/internal/repository/cache"
	"github.com/Pesokrava/ratingfy/internal/repository/media"
	"github.com/Pesokrava/ratingfy/internal/repository/postgres"
	"github.com/Pesokrava/ratingfy/internal/usecase/account"
	"github.com/Pesokrava/ratingfy/internal/usecase/review"
	"github.com/Pesokrava/ratingfy/internal/usecase/visibility"

	_ "github.com/Pesokrava/ratingfy/docs"
)

// @title Ratingfy API
// @version 1.0
// @description Product reviews for Shopify storefronts: submission, moderation and display.

// @contact.name API Support
// @contact.url http://github.com/Pesokrava/ratingfy

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization

// @tag.name Storefront
// @tag.description Public endpoints called by the theme extension

// @tag.name Reviews
// @tag.description Review moderation for the embedded admin

// @tag.name Account
// @tag.description Tenant registration and display settings

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.LogLevel)
	logger.SetGlobalLogger(appLogger)
	appLogger.Info("Starting Ratingfy API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(context.Background(), cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	applied, err := database.RunMigrations(context.Background(), db)
	if err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}
	if len(applied) > 0 {
		appLogger.Infof("Applied migrations: %v", applied)
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(context.Background(), cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	nc, err := events.Connect(cfg.NATS.URL, "ratingfy-api", appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		appLogger.Fatal("Failed to create JetStream context", err)
	}
	if err := events.NewStreamConfig(js, appLogger).EnsureStream(); err != nil {
		appLogger.Fatal("Failed to ensure stream", err)
	}
	publisher := events.NewPublisher(js, appLogger.Component("publisher"))

	mediaStore, uploadDir, err := newMediaStore(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialise media store", err)
	}
	appLogger.Infof("Media backend: %s", cfg.Media.Backend)

	reviewRepo := postgres.NewReviewRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	ratingRepo := postgres.NewRatingSummaryRepository(db)
	visibilityCache := cacheRepo.NewVisibilityCache(redisClient, cfg.Cache.VisibilityTTL)

	reviewService := review.NewService(
		reviewRepo,
		accountRepo,
		settingsRepo,
		mediaStore,
		visibilityCache,
		publisher,
		cfg.Media.PublicURL,
		appLogger.Component("review"),
	)
	resolver := visibility.NewResolver(
		reviewRepo,
		accountRepo,
		settingsRepo,
		ratingRepo,
		visibilityCache,
		cfg.Media.PublicURL,
		appLogger.Component("visibility"),
	)
	accountService := account.NewService(accountRepo, settingsRepo, visibilityCache, appLogger.Component("account"))

	storefrontHandler := handler.NewStorefrontHandler(reviewService, resolver, appLogger)
	reviewHandler := handler.NewReviewHandler(reviewService, cfg.Media.MaxUploadBytes, appLogger)
	accountHandler := handler.NewAccountHandler(accountService, appLogger)

	router := httpDelivery.NewRouter(storefrontHandler, reviewHandler, accountHandler, uploadDir, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	if err := nc.Drain(); err != nil {
		appLogger.Warnf("Failed to drain NATS connection: %v", err)
	}

	appLogger.Info("Server stopped gracefully")
}

// newMediaStore returns the configured attachment store and, for the local
// backend, the directory the router serves under /uploads
func newMediaStore(cfg *config.Config) (domain.MediaStore, string, error) {
	switch cfg.Media.Backend {
	case "cloudinary":
		store, err := media.NewCloudinaryStore(cfg.Media.CloudinaryURL, cfg.Media.CloudinaryDir)
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		store, err := media.NewLocalStore(cfg.Media.UploadDir)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}
