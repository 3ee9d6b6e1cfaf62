package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/ak/backend/internal/application/catalog"
	identityapp "github.com/ak/backend/internal/application/identity"
	partnerapp "github.com/ak/backend/internal/application/partner"
	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/cache"
	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/ak/backend/internal/infrastructure/migration"
	"github.com/ak/backend/internal/infrastructure/persistence"
	"github.com/ak/backend/internal/infrastructure/telemetry"
	"github.com/ak/backend/internal/interfaces/http/handler"
	"github.com/ak/backend/internal/interfaces/http/middleware"
	"github.com/ak/backend/internal/interfaces/http/router"
	"github.com/ak/backend/migrations"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/ak/backend/docs"
)

//	@title			akApp API
//	@version		1.0
//	@description	Multi-company customer and catalog management API

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if err := prepareSchema(ctx, db, cfg.Database, log); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry, cfg.Database.Driver), log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	if err := telemetry.RegisterDBMetrics(db.DB, meterProvider, cfg.Telemetry.DBSlowQueryThresh, log); err != nil {
		log.Warn("Database metrics disabled", zap.Error(err))
	}

	stores, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).CreateStores()
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer func() { _ = stores.Close() }()

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	itemGroupRepo := persistence.NewGormItemGroupRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)

	// Services
	authService := identityapp.NewAuthService(userRepo, jwtService, stores.Blacklist, log)
	accountService := identityapp.NewAccountService(userRepo, stores.Users, log)
	tokenTTL := max(cfg.JWT.AccessTokenExpiration, cfg.JWT.RememberMeExpiration)
	userService := identityapp.NewUserService(userRepo, stores.Users, stores.Blacklist, tokenTTL, log)
	currentUser := identityapp.NewCurrentUserResolver(userRepo, stores.Users, stores.Blacklist, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	customerQueryService := partnerapp.NewCustomerQueryService(customerRepo, log)
	itemGroupService := catalogapp.NewItemGroupService(itemGroupRepo, itemRepo, log)
	itemService := catalogapp.NewItemService(itemRepo, itemGroupRepo, unitRepo, log)
	unitService := catalogapp.NewUnitService(unitRepo, log)

	// Handlers
	base := handler.NewBaseHandler(cfg.App.Name, cfg.Pagination)
	handlers := router.Handlers{
		Account:   handler.NewAccountHandler(base, authService, accountService),
		Customer:  handler.NewCustomerHandler(base, customerService, customerQueryService),
		ItemGroup: handler.NewItemGroupHandler(base, itemGroupService),
		Item:      handler.NewItemHandler(base, itemService),
		Unit:      handler.NewUnitHandler(base, unitService),
		User:      handler.NewUserHandler(base, userService),
		System: handler.NewSystemHandler(base, version, map[string]handler.Pinger{
			"db":    db,
			"redis": stores,
		}),
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID - generate or propagate the request id
	// 2. Recovery - catch panics
	// 3. Logger - log requests
	// 4. Tracing - request span tagged with the request id
	// 5. Metrics - per-route request metrics
	// 6. Security headers, CORS and body limit
	// 7. RateLimit - global rate limit (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	tracingCfg := middleware.DefaultTracingConfig(cfg.Telemetry.ServiceName)
	tracingCfg.Enabled = tracerProvider.IsEnabled()
	engine.Use(middleware.Tracing(tracingCfg))
	engine.Use(middleware.SpanRequestID())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{MeterProvider: meterProvider, Logger: log}))

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.App.IsProduction()
	engine.Use(middleware.SecureWithConfig(securityCfg))

	corsCfg := middleware.DefaultCORSConfig(cfg.App.Name)
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	corsCfg.ExposeHeaders = cfg.HTTP.CORSExposeHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Close()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	var authLimiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Close()
	}

	router.Mount(engine, handlers, router.Options{
		JWTService:  jwtService,
		Tenants:     currentUser,
		AuthLimiter: authLimiter,
		Metrics:     meterProvider,
		Swagger:     cfg.Swagger,
		Logger:      log,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush metrics", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// prepareSchema brings the schema up to date when auto migration is on:
// the SQL migrations for PostgreSQL, the gorm models for sqlite
func prepareSchema(ctx context.Context, db *persistence.Database, cfg config.DatabaseConfig, log *zap.Logger) error {
	if !cfg.AutoMigrate {
		return nil
	}
	if cfg.Driver == config.DriverSQLite {
		log.Info("Creating sqlite schema from models")
		return db.SyncSchema(ctx)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	// Close would also close the shared connection pool
	return m.Up()
}
