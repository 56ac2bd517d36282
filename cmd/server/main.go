package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/config"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/controller"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	"github.com/doorhan-crimea/doorhan-backend/internal/db"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/doorhan-crimea/doorhan-backend/internal/router"
	"github.com/doorhan-crimea/doorhan-backend/internal/scheduler"
	"github.com/doorhan-crimea/doorhan-backend/internal/storage"
	ws "github.com/doorhan-crimea/doorhan-backend/internal/websocket"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	redisclient "github.com/doorhan-crimea/doorhan-backend/pkg/redis"
	"github.com/doorhan-crimea/doorhan-backend/pkg/telegram"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Doorhan backend", map[string]interface{}{
		"environment":    cfg.Server.Environment,
		"port":           cfg.Server.Port,
		"log_level":      logLevel,
		"upload_backend": cfg.Upload.Backend,
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

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Session revocation needs Redis; without it logout only clears the cookie
	var revoker service.SessionRevoker = service.NoopRevoker{}
	if cfg.Redis.Enabled() {
		if err := redisclient.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer redisclient.Close()
		revoker = redisclient.NewSessionRevoker(redisclient.GetClient())
	} else {
		logger.Warn("Redis is not configured, session revocation disabled")
	}

	// Contact form notifications
	var notifier service.ContactNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tg, err := telegram.NewClient(telegram.Config{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
			BaseURL:  cfg.Telegram.APIURL,
		})
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client", err)
		}
		notifier = tg
	} else {
		logger.Warn("Telegram is not configured, contact form submissions will fail")
	}

	store, err := newStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize upload storage", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Admin event feed
	hub := ws.NewHub()
	go hub.Run(ctx)

	// Initialize repositories
	database := db.GetDB()
	userRepo := repository.NewUserRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	productRepo := repository.NewProductRepository(database)
	colorRepo := repository.NewColorRepository(database)
	colorAttachmentRepo := repository.NewColorAttachmentRepository(database)
	sliderPhotoRepo := repository.NewSliderPhotoRepository(database)
	pdfRepo := repository.NewPdfAttachmentRepository(database)
	advantageRepo := repository.NewAdvantageRepository(database)
	blogRepo := repository.NewBlogPostRepository(database)
	uploadRefRepo := repository.NewUploadReferenceRepository(database, cfg.Upload.ImageDir, cfg.Upload.PDFDir)

	// Initialize services
	uploadService := service.NewUploadService(store, service.UploadConfig{
		ImageDir: cfg.Upload.ImageDir,
		PDFDir:   cfg.Upload.PDFDir,
		MaxBytes: cfg.Upload.MaxBytes,
	})
	authService := service.NewAuthService(userRepo, cfg.Session.Secret, cfg.Session.TTL, revoker)
	categoryService := service.NewCategoryService(categoryRepo, hub)
	productService := service.NewProductService(productRepo, pdfRepo, store, hub)
	colorService := service.NewColorService(colorRepo, hub)
	colorAttachmentService := service.NewColorAttachmentService(colorAttachmentRepo, hub)
	sliderPhotoService := service.NewSliderPhotoService(sliderPhotoRepo, hub)
	pdfService := service.NewPdfAttachmentService(pdfRepo, uploadService, hub)
	advantageService := service.NewAdvantageService(advantageRepo, hub)
	blogService := service.NewBlogService(blogRepo, hub)
	searchService := service.NewSearchService(productRepo)
	breadcrumbService := service.NewBreadcrumbService(categoryRepo, productRepo)
	sitemapService := service.NewSitemapService(categoryRepo, productRepo, cfg.Server.PublicBaseURL)
	contactService := service.NewContactService(notifier, hub)
	cleanupService := service.NewUploadCleanupService(store, uploadRefRepo, cfg.Upload.CleanupGrace, cfg.Upload.ImageDir, cfg.Upload.PDFDir)

	// Initialize controllers
	controllers := router.Controllers{
		Category:        controller.NewCategoryController(categoryService),
		Product:         controller.NewProductController(productService),
		Color:           controller.NewColorController(colorService),
		ColorAttachment: controller.NewColorAttachmentController(colorAttachmentService),
		SliderPhoto:     controller.NewSliderPhotoController(sliderPhotoService),
		PdfAttachment:   controller.NewPdfAttachmentController(pdfService),
		Advantage:       controller.NewAdvantageController(advantageService),
		Blog:            controller.NewBlogController(blogService),
		Upload:          controller.NewUploadController(uploadService),
		Auth: controller.NewAuthController(authService, controller.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		}),
		Site:  controller.NewSiteController(searchService, breadcrumbService, sitemapService, contactService),
		Event: controller.NewEventController(hub, cfg.CORS.AllowedOrigins),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Session.CookieName, authService)
	ipAllowlist := middleware.NewIPAllowlist(cfg.Admin.AllowedIPs)

	engine := router.NewRouter(controllers, authMiddleware, ipAllowlist, cfg).Setup()

	cleanupScheduler := scheduler.NewUploadCleanupScheduler(cleanupService, cfg.Upload.CleanupSchedule)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Fatal("Failed to start upload cleanup scheduler", err)
	}
	defer cleanupScheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", err)
	}
	logger.Info("Server stopped successfully")
}

// newStorage picks the upload backend. Both serve the same public path layout.
func newStorage(cfg *config.Config) (storage.Storage, error) {
	dirs := []string{cfg.Upload.ImageDir, cfg.Upload.PDFDir}
	if cfg.Upload.Backend == "s3" {
		return storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
			dirs...,
		), nil
	}
	return storage.NewLocalStorage(cfg.Upload.PublicDir, dirs...)
}
