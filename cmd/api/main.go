package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoicely-api/internal/application/seed"
	"github.com/sangkips/invoicely-api/internal/application/service"
	"github.com/sangkips/invoicely-api/internal/config"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	domainRepo "github.com/sangkips/invoicely-api/internal/domain/repository"
	"github.com/sangkips/invoicely-api/internal/infrastructure/database"
	"github.com/sangkips/invoicely-api/internal/infrastructure/export"
	"github.com/sangkips/invoicely-api/internal/infrastructure/repository"
	"github.com/sangkips/invoicely-api/internal/presentation/http/handler"
	"github.com/sangkips/invoicely-api/internal/presentation/http/routes"
	"github.com/sangkips/invoicely-api/pkg/logger"
	"github.com/sangkips/invoicely-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	shutdownTimeout          = 10 * time.Second
	idempotencyCleanupPeriod = time.Hour
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	gormCfg := logger.DefaultGormLoggerConfig()
	gormCfg.Level = logger.GormLevel(cfg.Log.Level)
	db, err := database.Open(&cfg.Database, logger.NewGormLogger(zlog, gormCfg), zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	m := metrics.New()

	// Initialize repositories
	documentRepo := repository.NewDocumentRepository(db)
	productRepo := repository.NewProductRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	invoiceService := service.NewDocumentService(enum.DocumentKindInvoice, cfg.Numbering.InvoicePrefix, documentRepo, productRepo, zlog, m)
	receiptService := service.NewDocumentService(enum.DocumentKindReceipt, cfg.Numbering.ReceiptPrefix, documentRepo, productRepo, zlog, m)
	productService := service.NewProductService(productRepo, zlog)
	dashboardService := service.NewDashboardService(analyticsRepo, zlog)
	exportService := service.NewExportService(export.NewPDFRenderer(), export.NewExcelRenderer(), zlog, m)
	exportService.Register(service.ExportFormatESCPOS, export.NewThermalRenderer(cfg.Export.ThermalCharWidth))

	// Initialize handlers
	handlers := &routes.Handlers{
		Invoice:   handler.NewDocumentHandler(invoiceService, exportService),
		Receipt:   handler.NewDocumentHandler(receiptService, exportService),
		Product:   handler.NewProductHandler(productService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var seedDone <-chan struct{}
	if cfg.Seed.Enabled {
		reseeder := seed.NewReseeder(
			repository.NewDataResetter(db),
			productService,
			invoiceService,
			receiptService,
			seed.NewGenerator(cfg.Seed.RandSeed),
			seed.Counts{Products: cfg.Seed.Products, Invoices: cfg.Seed.Invoices, Receipts: cfg.Seed.Receipts},
			zlog.Named("seed"),
		)
		scheduler := seed.NewScheduler(reseeder, seed.SchedulerConfig{
			Interval:   cfg.Seed.Interval,
			MaxRetries: cfg.Seed.MaxRetries,
			RetryDelay: cfg.Seed.RetryDelay,
		}, zlog.Named("seed"), m)
		seedDone = scheduler.Start(ctx)
		handlers.Seed = handler.NewSeedHandler(scheduler)
	}

	go cleanupIdempotencyKeys(ctx, idempotencyRepo, zlog)

	// Setup routes
	router := routes.Setup(ctx, handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             zlog,
		Metrics:         m,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	if seedDone != nil {
		<-seedDone
	}
}

// cleanupIdempotencyKeys drops expired replay entries until ctx is cancelled
func cleanupIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *zap.Logger) {
	ticker := time.NewTicker(idempotencyCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn("failed to delete expired idempotency keys", zap.Error(err))
			}
		}
	}
}
