package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-analytics-service/internal/config"
	"shop-analytics-service/internal/observability"

	recordsHttp "shop-analytics-service/internal/records/adapters/http/fiber"
	recordsStore "shop-analytics-service/internal/records/adapters/store"
	recordsUsecase "shop-analytics-service/internal/records/core/usecase"

	"shop-analytics-service/internal/metrics/adapters/chartboard"
	metricsHttp "shop-analytics-service/internal/metrics/adapters/http/fiber"
	"shop-analytics-service/internal/metrics/adapters/httpsource"
	"shop-analytics-service/internal/metrics/adapters/recordsource"
	"shop-analytics-service/internal/metrics/core/ports"
	metricsUsecase "shop-analytics-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "shop-analytics-service/docs"
)

const initialRefreshTimeout = 30 * time.Second

func main() {
	// Config
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// DB connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, db, err := recordsStore.Open(ctx, recordsStore.Options{
		Driver: cfg.Store.Driver,
		DSN:    cfg.Store.DSN,
		Table:  cfg.Store.Table,
	})
	if err != nil {
		cancel()
		log.Fatalf("failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer db.Close()

	if cfg.Store.AutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			cancel()
			log.Fatalf("failed to migrate %s store: %v", cfg.Store.Driver, err)
		}
	}
	cancel()

	metrics := observability.NewMetrics("")

	// Usecases
	fetchCollectionUC := recordsUsecase.NewFetchCollectionUseCase(repo, cfg.Store.SampleSize)
	storeRecordUC := recordsUsecase.NewStoreRecordUseCase(repo)

	var source ports.RecordSourcePort = recordsource.New(fetchCollectionUC)
	if cfg.Source.BaseURL != "" {
		source = httpsource.New(cfg.Source.BaseURL, cfg.Source.Timeout)
		log.Printf("[INFO] dashboard reads records from %s", cfg.Source.BaseURL)
	}

	board := chartboard.NewBoard(cfg.Charts.Width, cfg.Charts.Height, metrics)
	dashboardUC := metricsUsecase.NewDashboardUseCase(source, cfg.Granularity(),
		metricsUsecase.WithPublishers(board),
		metricsUsecase.WithObserver(metrics),
		metricsUsecase.WithLogger(log.Default()),
	)

	// HTTP (Fiber) app + handlers
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// records endpoints
	recordsHandler := recordsHttp.NewRecordHandler(fetchCollectionUC, storeRecordUC)
	recordsHandler.Register(app)

	// dashboard + chart endpoints
	dashboardHandler := metricsHttp.NewDashboardHandler(dashboardUC, board)
	dashboardHandler.Register(app)

	// Prometheus
	app.Get("/internal/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("server started on %s", cfg.Server.Addr)

	if cfg.Dashboard.RefreshOnStart {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), initialRefreshTimeout)
			defer cancel()
			if _, err := dashboardUC.Refresh(ctx, ""); err != nil {
				log.Printf("[WARN] initial dashboard refresh failed: %v", err)
				return
			}
			log.Printf("[INFO] initial dashboard refresh published")
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel = context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("fiber shutdown error: %v", err)
	}

	log.Println("server exiting")
}
