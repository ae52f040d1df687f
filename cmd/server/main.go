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

	"github.com/minhasantafonte/santafonte-backend/config"
	"github.com/minhasantafonte/santafonte-backend/internal/app/controller"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	"github.com/minhasantafonte/santafonte-backend/internal/cart"
	"github.com/minhasantafonte/santafonte-backend/internal/configurator"
	"github.com/minhasantafonte/santafonte-backend/internal/db"
	"github.com/minhasantafonte/santafonte-backend/internal/metrics"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
	"github.com/minhasantafonte/santafonte-backend/internal/router"
	"github.com/minhasantafonte/santafonte-backend/internal/scheduler"
	"github.com/minhasantafonte/santafonte-backend/internal/storage"
	"github.com/minhasantafonte/santafonte-backend/internal/websocket"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"github.com/minhasantafonte/santafonte-backend/pkg/mailer"
	"github.com/minhasantafonte/santafonte-backend/pkg/redis"
)

const (
	customizerTTL   = 7 * 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

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
		EnableColor: logFormat == "console",
	})

	logger.Info("Starting Santa Fonte Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	metrics.Init(cfg.Metrics.Prefix)

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

	// Visitor state lives in Redis when it is reachable, in memory otherwise
	var (
		cartStore       cart.Store
		customizerStore configurator.Store
		blacklist       service.TokenBlacklist
	)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory stores", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if client := redis.GetClient(); client != nil {
		defer redis.Close()
		cartStore = cart.NewRedisStore(client)
		customizerStore = configurator.NewRedisStore(client, customizerTTL)
		blacklist = service.NewRedisTokenBlacklist(client)
	} else {
		cartStore = cart.NewMemoryStore()
		customizerStore = configurator.NewMemoryStore()
		blacklist = service.NewMemoryTokenBlacklist()
	}

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	var notifier service.SaleNotifier
	if client, err := mailer.NewClient(mailer.Config{
		BaseURL:    cfg.Mailer.BaseURL,
		ServiceID:  cfg.Mailer.ServiceID,
		TemplateID: cfg.Mailer.TemplateID,
		PublicKey:  cfg.Mailer.PublicKey,
		PrivateKey: cfg.Mailer.PrivateKey,
		Recipients: cfg.Mailer.Recipients,
	}); err != nil {
		logger.Warn("Sale notifications disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		notifier = client
	}

	// Initialize repositories
	gdb := db.GetDB()
	productRepo := repository.NewProductRepository(gdb)
	optionRepo := repository.NewRosaryOptionRepository(gdb)
	configRepo := repository.NewStoreConfigRepository(gdb)
	saleRepo := repository.NewSaleRepository(gdb)
	articleRepo := repository.NewArticleRepository(gdb)
	userRepo := repository.NewAdminUserRepository(gdb)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		blacklist,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo)
	optionService := service.NewOptionService(optionRepo, configRepo)
	saleService := service.NewSaleService(saleRepo, notifier, hub)
	articleService := service.NewArticleService(articleRepo)
	cartService := service.NewCartService(cartStore, productService, cfg.Checkout.WhatsAppPhone)
	customizerService := service.NewCustomizerService(customizerStore, optionService, cartService)

	for name, loader := range map[string]interface{ Load() error }{
		"products": productService,
		"options":  optionService,
		"sales":    saleService,
		"articles": articleService,
	} {
		if err := loader.Load(); err != nil {
			logger.Fatal("Failed to load collection", err, map[string]interface{}{
				"collection": name,
			})
		}
	}

	if cfg.Admin.Password != "" {
		created, err := authService.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			logger.Error("Failed to bootstrap admin account", err, map[string]interface{}{
				"email": cfg.Admin.Email,
			})
		} else if created {
			logger.Info("Admin account bootstrapped", map[string]interface{}{
				"email": cfg.Admin.Email,
			})
		}
	}

	lowStock := scheduler.NewLowStockScheduler(
		productService,
		hub,
		cfg.Inventory.LowStockThreshold,
		cfg.Inventory.DigestSchedule,
	)
	if err := lowStock.Start(); err != nil {
		logger.Warn("Low stock digest disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer lowStock.Stop()
	}

	imageStorage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	controllers := router.Controllers{
		Auth:       controller.NewAuthController(authService),
		Product:    controller.NewProductController(productService),
		Option:     controller.NewOptionController(optionService),
		Cart:       controller.NewCartController(cartService),
		Customizer: controller.NewCustomizerController(customizerService),
		Sale:       controller.NewSaleController(saleService),
		Article:    controller.NewArticleController(articleService),
		Upload:     controller.NewUploadController(imageStorage),
		Admin: controller.NewAdminController(map[string]service.SyncStatusProvider{
			"products": productService,
			"options":  optionService,
			"sales":    saleService,
			"articles": articleService,
		}, productService, cfg.Inventory.LowStockThreshold),
		BoardSocket: controller.NewBoardSocketController(hub, cfg.CORS.AllowedOrigins),
	}

	r := router.NewRouter(
		controllers,
		middleware.NewAuthMiddleware(cfg.JWT.Secret, blacklist),
		middleware.NewCartSession(cfg.Session.Key, cfg.Session.MaxAge, cfg.Session.Secure),
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
