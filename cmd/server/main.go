package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/backoffice-backend/config"
	"github.com/ikkim/backoffice-backend/internal/app/controller"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/internal/app/service"
	"github.com/ikkim/backoffice-backend/internal/db"
	"github.com/ikkim/backoffice-backend/internal/middleware"
	"github.com/ikkim/backoffice-backend/internal/router"
	"github.com/ikkim/backoffice-backend/internal/scheduler"
	"github.com/ikkim/backoffice-backend/internal/storage"
	"github.com/ikkim/backoffice-backend/internal/websocket"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"github.com/ikkim/backoffice-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Backoffice Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis (optional; logout blacklisting degrades gracefully)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	bankAccountRepo := repository.NewBankAccountRepository(db.GetDB())
	rewardRepo := repository.NewRewardRepository(db.GetDB())
	voucherRepo := repository.NewVoucherRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	alertRepo := repository.NewAlertRepository(db.GetDB())

	// Websocket hub for live stock alerts
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo, variantRepo)
	bankAccountService := service.NewBankAccountService(bankAccountRepo)
	rewardService := service.NewRewardService(rewardRepo)
	voucherService := service.NewVoucherService(voucherRepo)
	reportService := service.NewReportService(orderRepo)
	alertService := service.NewAlertService(alertRepo, hub)

	// S3-backed media storage for product and reward images
	mediaStorage := storage.NewMediaStorage(&cfg.S3)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.Secret)
	productController := controller.NewProductController(productService, alertService)
	bankAccountController := controller.NewBankAccountController(bankAccountService)
	rewardController := controller.NewRewardController(rewardService)
	voucherController := controller.NewVoucherController(voucherService)
	reportController := controller.NewReportController(reportService)
	alertController := controller.NewAlertController(alertService, hub, cfg.CORS.AllowedOrigins)
	uploadController := controller.NewUploadController(mediaStorage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		bankAccountController,
		rewardController,
		voucherController,
		reportController,
		alertController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Daily voucher expiry sweep
	voucherScheduler := scheduler.NewVoucherScheduler(voucherService)
	if err := voucherScheduler.Start(); err != nil {
		logger.Fatal("Failed to start voucher scheduler", err)
	}
	defer voucherScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
