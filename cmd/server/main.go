package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/jx4/backend/internal/application/catalog"
	identityapp "github.com/jx4/backend/internal/application/identity"
	orderingapp "github.com/jx4/backend/internal/application/ordering"
	siteconfigapp "github.com/jx4/backend/internal/application/siteconfig"
	"github.com/jx4/backend/internal/domain/identity"
	"github.com/jx4/backend/internal/infrastructure/advisory"
	"github.com/jx4/backend/internal/infrastructure/auth"
	"github.com/jx4/backend/internal/infrastructure/cache"
	"github.com/jx4/backend/internal/infrastructure/config"
	"github.com/jx4/backend/internal/infrastructure/logger"
	"github.com/jx4/backend/internal/infrastructure/messaging"
	"github.com/jx4/backend/internal/infrastructure/persistence"
	"github.com/jx4/backend/internal/infrastructure/storage"
	"github.com/jx4/backend/internal/interfaces/http/handler"
	"github.com/jx4/backend/internal/interfaces/http/middleware"
	"github.com/jx4/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting JX4 Paracotos backend",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	configRepo := persistence.NewGormSiteConfigRepository(db.DB)
	userRepo := persistence.NewGormAdminUserRepository(db.DB)

	// Redis is optional: without it the snapshot cache starts cold and
	// customer profiles are not remembered across checkouts.
	var (
		snapshotStore cache.SnapshotStore
		customerStore cache.CustomerStore
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(
			fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			cfg.Redis.Password,
			cfg.Redis.DB,
		)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()

		if cfg.Cache.PersistSnapshot {
			snapshotStore = cache.NewRedisSnapshotStore(redisClient, log)
		}
		customerStore = cache.NewRedisCustomerStore(redisClient, log)
		log.Info("Redis connected",
			zap.Bool("persist_snapshot", cfg.Cache.PersistSnapshot),
		)
	}

	snapshotOpts := []cache.SnapshotCacheOption{
		cache.WithSnapshotLogger(log),
		cache.WithRefreshTimeout(cfg.Cache.RefreshTimeout),
	}
	if snapshotStore != nil {
		snapshotOpts = append(snapshotOpts, cache.WithSnapshotStore(snapshotStore))
	}
	snapshotCache := cache.NewSnapshotCache(productRepo, departmentRepo, configRepo, snapshotOpts...)

	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 10*time.Second)
	snapshotCache.Warm(warmCtx)
	cancelWarm()

	// Image storage: a stub serves local development without S3 credentials
	var imageStorage catalogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ImageStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		ensureCtx, cancelEnsure := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ensureCtx); err != nil {
			log.Warn("Failed to ensure image bucket", zap.Error(err))
		}
		cancelEnsure()
		imageStorage = s3Storage
	} else {
		imageStorage = &storage.StubImageStorage{}
		log.Info("Image storage disabled, using stub URLs")
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	linkBuilder := messaging.NewLinkBuilder(cfg.WhatsApp)
	advisoryAdapter := advisory.NewGeminiAdapter(cfg.Advisory, log)

	// Application services
	productService := catalogapp.NewProductService(productRepo, snapshotCache, imageStorage, cfg.Storage.PresignExpiry)
	departmentService := catalogapp.NewDepartmentService(departmentRepo, snapshotCache)
	configService := siteconfigapp.NewService(configRepo, snapshotCache)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	adminUserService := identityapp.NewAdminUserService(userRepo, log)
	checkoutService := orderingapp.NewCheckoutService(
		productRepo, departmentRepo, orderRepo, configRepo,
		linkBuilder, customerStore, log,
	)
	orderService := orderingapp.NewOrderService(orderRepo)

	if err := seedFirstSuper(context.Background(), userRepo, log); err != nil {
		log.Fatal("Failed to seed initial admin", zap.Error(err))
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	orderHandler := handler.NewOrderHandler(orderService)
	configHandler := handler.NewSiteConfigHandler(configService)
	adminUserHandler := handler.NewAdminUserHandler(adminUserService)
	storefrontHandler := handler.NewStorefrontHandler(snapshotCache, checkoutService, customerStore)
	advisoryHandler := handler.NewAdvisoryHandler(advisoryAdapter)

	requireAuth := middleware.JWTAuth(jwtService)

	// Public storefront surface: catalog, checkout, profile prefill
	storefront := router.NewGroup("/tienda").
		GET("/catalogo", storefrontHandler.GetCatalog).
		POST("/checkout", storefrontHandler.Checkout).
		GET("/clientes/:telefono", storefrontHandler.GetCustomerProfile)

	// Public auth surface
	authRoutes := router.NewGroup("/auth").
		POST("/login", authHandler.Login).
		POST("/refresh", authHandler.RefreshToken)

	// Admin console, everything behind JWT
	admin := router.NewGroup("/admin")
	admin.Use(requireAuth)
	admin.GET("/me", authHandler.GetCurrentUser)
	admin.POST("/productos", productHandler.Create).
		GET("/productos", productHandler.List).
		GET("/productos/:id", productHandler.GetByID).
		PUT("/productos/:id", productHandler.Update).
		DELETE("/productos/:id", productHandler.Delete).
		POST("/productos/imagenes", productHandler.GenerateImageUpload)
	admin.POST("/departamentos", departmentHandler.Create).
		GET("/departamentos", departmentHandler.List).
		GET("/departamentos/:id", departmentHandler.GetByID).
		PUT("/departamentos/:id", departmentHandler.Update).
		DELETE("/departamentos/:id", departmentHandler.Delete)
	admin.GET("/pedidos", orderHandler.List).
		GET("/pedidos/:id", orderHandler.GetByID)
	admin.GET("/configuracion", configHandler.Get).
		PUT("/configuracion", configHandler.Update)
	admin.POST("/usuarios", adminUserHandler.Create).
		GET("/usuarios", adminUserHandler.List).
		PUT("/usuarios/:id", adminUserHandler.Update).
		DELETE("/usuarios/:id", adminUserHandler.Delete)
	admin.POST("/sugerencias", advisoryHandler.Suggest)

	r := router.NewRouter(engine)
	r.Register(storefront).Register(authRoutes).Register(admin)
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// seedFirstSuper creates the bootstrap super account when the store has no
// super users at all. Credentials come from the environment so they never
// live in the config file; without them a fresh install refuses to start,
// since nobody could ever log into the console.
func seedFirstSuper(ctx context.Context, userRepo identity.AdminUserRepository, log *zap.Logger) error {
	count, err := userRepo.CountSupers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := os.Getenv("JX4_BOOTSTRAP_USERNAME")
	password := os.Getenv("JX4_BOOTSTRAP_PASSWORD")
	if username == "" || password == "" {
		return fmt.Errorf("no super user exists: set JX4_BOOTSTRAP_USERNAME and JX4_BOOTSTRAP_PASSWORD")
	}

	user, err := identity.NewAdminUser(username, password, identity.RoleSuper, nil)
	if err != nil {
		return err
	}
	if err := userRepo.Save(ctx, user); err != nil {
		return err
	}
	log.Info("Bootstrap super user created", zap.String("username", username))
	return nil
}
