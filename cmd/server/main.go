package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/salonfin/backend/docs"
	catalogapp "github.com/salonfin/backend/internal/application/catalog"
	expenseapp "github.com/salonfin/backend/internal/application/expense"
	ledgerapp "github.com/salonfin/backend/internal/application/ledger"
	reportapp "github.com/salonfin/backend/internal/application/report"
	settingsapp "github.com/salonfin/backend/internal/application/settings"
	"github.com/salonfin/backend/internal/domain/report"
	"github.com/salonfin/backend/internal/infrastructure/auth"
	"github.com/salonfin/backend/internal/infrastructure/cache"
	"github.com/salonfin/backend/internal/infrastructure/config"
	"github.com/salonfin/backend/internal/infrastructure/logger"
	"github.com/salonfin/backend/internal/infrastructure/persistence"
	"github.com/salonfin/backend/internal/infrastructure/telemetry"
	"github.com/salonfin/backend/internal/interfaces/http/handler"
	"github.com/salonfin/backend/internal/interfaces/http/middleware"
	"github.com/salonfin/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

//go:generate swag init --generalInfo main.go --dir ./,../../internal/interfaces/http/handler --output ../../docs --parseDependency --parseInternal

//	@title			Salon Finance API
//	@version		1.0
//	@description	Cash flow, pricing and dashboard reports for beauty salons
//	@contact.name	API Support

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting salon finance backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = telemetry.BridgeLogger(log, cfg.Telemetry.ServiceName, loggerProvider, logger.ParseLevel(cfg.Log.Level))
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	httpMetrics, err := telemetry.NewHTTPMetrics(meterProvider.Meter("salon-finance/http"))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	businessMetrics, err := telemetry.NewBusinessMetrics(meterProvider.Meter("salon-finance/business"))
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Database.LogLevel), cfg.Database.SlowThreshold)
	db, err := persistence.NewDatabase(cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTracing {
		if err := telemetry.RegisterDBTracing(db.DB, "postgresql", !cfg.App.IsProduction(), log); err != nil {
			log.Warn("Database tracing disabled", zap.Error(err))
		}
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled {
		dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider.Meter("salon-finance/db"), cfg.Database.SlowThreshold, log)
		if err != nil {
			log.Warn("Database metrics disabled", zap.Error(err))
		} else {
			defer func() {
				if err := dbMetrics.Stop(); err != nil {
					log.Warn("Failed to stop database metrics", zap.Error(err))
				}
			}()
		}
	}

	// Report cache
	reportStore, err := cache.NewReportStore(cfg.Redis, !cfg.App.IsProduction(), log, cache.WithTTL(cfg.Report.CacheTTL))
	if err != nil {
		log.Fatal("Failed to initialize report cache", zap.Error(err))
	}
	defer func() {
		if err := reportStore.Close(); err != nil {
			log.Error("Error closing report cache", zap.Error(err))
		}
	}()

	// Repositories
	txRepo := persistence.NewGormTransactionRepository(db.DB)
	categoryRepo := persistence.NewGormExpenseCategoryRepository(db.DB)
	indirectExpenseRepo := persistence.NewGormIndirectExpenseRepository(db.DB)
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	paramsRepo := persistence.NewGormBusinessParamsRepository(db.DB)

	// Application services
	location, err := cfg.Report.Location()
	if err != nil {
		log.Fatal("Invalid report timezone", zap.Error(err))
	}
	dashboardOpts := []reportapp.DashboardOption{
		reportapp.WithConfig(reportapp.Config{
			Rates: report.Rates{
				Direct:      decimal.NewFromFloat(cfg.Report.DirectRate),
				Operational: decimal.NewFromFloat(cfg.Report.OperationalRate),
				Commission:  decimal.NewFromFloat(cfg.Report.CommissionRate),
				Tax:         decimal.NewFromFloat(cfg.Report.TaxRate),
			},
			TrendWindow: cfg.Report.TrendWindow,
			Location:    location,
		}),
		reportapp.WithLogger(log),
		reportapp.WithMetrics(businessMetrics),
	}
	if cfg.Report.CacheEnabled {
		dashboardOpts = append(dashboardOpts, reportapp.WithCache(reportStore))
	}

	// read-only params for the dashboard; writes go through settingsService
	paramsService := settingsapp.NewSettingsService(paramsRepo, nil, log)
	dashboardService := reportapp.NewDashboardService(txRepo, indirectExpenseRepo, serviceRepo, paramsService, dashboardOpts...)
	settingsService := settingsapp.NewSettingsService(paramsRepo, dashboardService, log)
	transactionService := ledgerapp.NewTransactionService(txRepo, dashboardService, log, ledgerapp.WithLocation(location), ledgerapp.WithMetrics(businessMetrics))
	expenseService := expenseapp.NewExpenseService(categoryRepo, indirectExpenseRepo, dashboardService, log)
	catalogService := catalogapp.NewCatalogService(materialRepo, serviceRepo, settingsService, dashboardService, log)

	// Handlers
	handlers := router.Handlers{
		Report:      handler.NewReportHandler(dashboardService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Expense:     handler.NewExpenseHandler(expenseService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Settings:    handler.NewSettingsHandler(settingsService),
	}
	healthHandler := handler.NewHealthHandler(telemetry.ServiceVersion, 2*time.Second, map[string]handler.HealthCheck{
		"database": func(context.Context) error { return db.Ping() },
		"cache":    reportStore.Ping,
	})

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	// Apply middleware stack in order:
	// 1. Tracing - start the server span so later middleware logs its trace ID
	// 2. RequestID - generate or propagate the request ID
	// 3. Logger - log requests
	// 4. Recovery - catch panics
	// 5. Security headers, CORS and body limit
	// 6. Metrics - count and time requests per route
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled, "/health"))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.HTTPMetrics(httpMetrics))

	// Health check endpoint (outside API versioning and authentication)
	engine.GET("/health", healthHandler.Health)

	// Swagger documentation endpoint
	if !cfg.App.IsProduction() {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		Validator: auth.NewJWTService(cfg.JWT),
		Logger:    log,
	}))
	r.Register(router.DomainGroups(handlers)...)
	r.Setup()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}
}
