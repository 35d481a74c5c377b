package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/database"
	"github.com/swiftship/courier-backend/internal/config"
	"github.com/swiftship/courier-backend/internal/handlers"
	"github.com/swiftship/courier-backend/internal/jobs"
	"github.com/swiftship/courier-backend/internal/logger"
	"github.com/swiftship/courier-backend/internal/models"
	"github.com/swiftship/courier-backend/internal/routes"
	"github.com/swiftship/courier-backend/internal/services"
	"github.com/swiftship/courier-backend/internal/storage"
)

func main() {
	// .env is a local development convenience; deployed environments
	// configure through real environment variables.
	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("environments/.env.development")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	var store storage.Store
	storageLabel := "postgres"
	if cfg.UseMemoryStore {
		zlog.Warn("using in-memory storage, not for production")
		store = storage.NewMemoryStore()
		storageLabel = "memory"
	} else {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			zlog.Fatal("database connection failed", zap.Error(err))
		}
		if err := db.AutoMigrate(&models.OTP{}, &models.Booking{}); err != nil {
			zlog.Fatal("database migration failed", zap.Error(err))
		}
		store = storage.NewDatabaseStore(db)
	}

	var gateway services.SMSGateway
	smsReady := false
	gateway, err = services.NewTwilioGateway(cfg.Twilio, zlog)
	if err != nil {
		zlog.Warn("SMS gateway not configured, OTP delivery will fail", zap.Error(err))
		gateway = services.UnconfiguredGateway{}
	} else {
		smsReady = true
	}

	analyzer := services.NewExtractionClient(cfg.Extraction, zlog)

	otpService := services.NewOTPService(store, gateway, cfg.OTP, zlog)
	awbGenerator := services.NewAWBGenerator(store, cfg.AWBMaxAttempts, zlog)
	bookingService := services.NewBookingService(store, otpService, awbGenerator, analyzer, cfg.NameMatchThreshold, zlog)

	cleanupJob := jobs.NewOTPCleanupJob(store, cfg.OTPCleanupInterval, zlog)
	cleanupJob.Start()

	app := fiber.New(fiber.Config{
		AppName: "SwiftShip Courier Backend",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	otpHandler := handlers.NewOTPHandler(otpService, cfg.IsProduction(), zlog)
	bookingHandler := handlers.NewBookingHandler(bookingService, cfg.IsProduction(), zlog)
	healthHandler := handlers.NewHealthHandler(store, smsReady, storageLabel)
	routes.SetupRoutes(app, otpHandler, bookingHandler, healthHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		zlog.Info("shutting down")
		cleanupJob.Stop()
		_ = app.Shutdown()
	}()

	zlog.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("storage", storageLabel),
		zap.String("environment", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
