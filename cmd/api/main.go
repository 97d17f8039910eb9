package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketing-dashboard-service/internal/config"
	dashboardHttp "marketing-dashboard-service/internal/dashboard/adapters/http/fiber"
	dashboardMemory "marketing-dashboard-service/internal/dashboard/adapters/memory"
	dashboardRepoPg "marketing-dashboard-service/internal/dashboard/adapters/postgres"
	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"
	dashboardUsecase "marketing-dashboard-service/internal/dashboard/core/usecase"
	"marketing-dashboard-service/internal/pkg/logger"
	"marketing-dashboard-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "marketing-dashboard-service/docs"
)

// @title Marketing Dashboard API
// @version 1.0
// @description Read-only email marketing dashboard metrics.
// @BasePath /
func main() {
	// Config
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := logger.Init(context.Background(), cfg.Log.Level)

	// Record store + schema capabilities
	store, caps, closeStore := openStore(ctx, cfg)
	defer closeStore()

	// Usecases
	getDashboardUC := dashboardUsecase.NewGetDashboardUseCase(store, caps,
		dashboardUsecase.WithLimits(dashboardUsecase.Limits{
			TopLinks:          cfg.Dashboard.TopLinksLimit,
			TopRevenue:        cfg.Dashboard.TopRevenueLimit,
			NewContactsWindow: cfg.Dashboard.NewContactsWindow(),
		}),
	)
	getFilterOptionsUC := dashboardUsecase.NewGetFilterOptionsUseCase(store, caps, cfg.Dashboard.FilterMailingsLimit)

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewHTTPMetrics(reg)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(middleware.RequestID(), middleware.AccessLog(), httpMetrics.Handler())

	dashboardHandler := dashboardHttp.NewDashboardHandler(getDashboardUC, getFilterOptionsUC)
	dashboardHandler.Register(app)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			log.Error().Err(err).Msg("fiber stopped")
		}
	}()

	log.Info().Str("addr", cfg.Server.Addr()).Str("store", cfg.Store.Driver).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("fiber shutdown error")
	}

	log.Info().Msg("server exiting")
}

func openStore(ctx context.Context, cfg *config.Config) (ports.RecordStore, domain.SchemaCapabilities, func()) {
	if cfg.Store.Driver == config.DriverMemory {
		fixture := dashboardMemory.DemoFixture(time.Now())
		if cfg.Store.FixturePath != "" {
			f, err := dashboardMemory.LoadFixture(cfg.Store.FixturePath)
			if err != nil {
				log.Fatal().Err(err).Str("path", cfg.Store.FixturePath).Msg("failed to load fixture")
			}
			fixture = f
		}
		store := dashboardMemory.NewStore(fixture)
		return store, store.Capabilities(), func() {}
	}

	db, err := dashboardRepoPg.Open(ctx, cfg.Database.DSN, dashboardRepoPg.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime(),
		ConnectRetries:  cfg.Database.ConnectRetries,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	sqlDB := dashboardRepoPg.NewSQLDB(db)
	tables := dashboardRepoPg.DefaultTables().Merge(cfg.Store.Tables)

	caps := cfg.Schema.Capabilities()
	if cfg.Schema.AutoDetect {
		caps, err = dashboardRepoPg.ProbeSchema(ctx, sqlDB, tables)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to detect schema")
		}
	}

	return dashboardRepoPg.NewRecordRepository(sqlDB, tables), caps, func() { db.Close() }
}
