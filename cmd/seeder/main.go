package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sangkips/invoicely-api/internal/application/seed"
	"github.com/sangkips/invoicely-api/internal/application/service"
	"github.com/sangkips/invoicely-api/internal/config"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/sangkips/invoicely-api/internal/infrastructure/database"
	"github.com/sangkips/invoicely-api/internal/infrastructure/repository"
	"github.com/sangkips/invoicely-api/pkg/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	once := pflag.Bool("once", false, "run a single reseed and exit")
	pflag.Duration("interval", 0, "time between reseeds (SEED_INTERVAL)")
	pflag.Int("products", 0, "products per reseed (SEED_PRODUCTS)")
	pflag.Int("invoices", 0, "invoices per reseed (SEED_INVOICES)")
	pflag.Int("receipts", 0, "receipts per reseed (SEED_RECEIPTS)")
	pflag.Uint64("rand-seed", 0, "fixed PRNG seed, 0 for a random one (SEED_RAND_SEED)")
	pflag.Parse()

	// Flags override the environment only when set on the command line
	for key, flag := range map[string]string{
		"SEED_INTERVAL":  "interval",
		"SEED_PRODUCTS":  "products",
		"SEED_INVOICES":  "invoices",
		"SEED_RECEIPTS":  "receipts",
		"SEED_RAND_SEED": "rand-seed",
	} {
		if err := viper.BindPFlag(key, pflag.Lookup(flag)); err != nil {
			log.Fatalf("Failed to bind flag %s: %v", flag, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		ServiceName: cfg.App.Name + "-seeder",
		Environment: cfg.App.Env,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gormCfg := logger.DefaultGormLoggerConfig()
	gormCfg.Level = logger.GormLevel("warn")
	db, err := database.Open(&cfg.Database, logger.NewGormLogger(zlog, gormCfg), zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	documentRepo := repository.NewDocumentRepository(db)
	productRepo := repository.NewProductRepository(db)

	reseeder := seed.NewReseeder(
		repository.NewDataResetter(db),
		service.NewProductService(productRepo, zlog),
		service.NewDocumentService(enum.DocumentKindInvoice, cfg.Numbering.InvoicePrefix, documentRepo, productRepo, zlog, nil),
		service.NewDocumentService(enum.DocumentKindReceipt, cfg.Numbering.ReceiptPrefix, documentRepo, productRepo, zlog, nil),
		seed.NewGenerator(cfg.Seed.RandSeed),
		seed.Counts{Products: cfg.Seed.Products, Invoices: cfg.Seed.Invoices, Receipts: cfg.Seed.Receipts},
		zlog,
	)
	scheduler := seed.NewScheduler(reseeder, seed.SchedulerConfig{
		Interval:   cfg.Seed.Interval,
		MaxRetries: cfg.Seed.MaxRetries,
		RetryDelay: cfg.Seed.RetryDelay,
	}, zlog, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := scheduler.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zlog.Fatal("reseed failed", zap.Error(err))
		}
		return
	}

	<-scheduler.Start(ctx)
	st := scheduler.Status()
	zlog.Info("seeder stopped", zap.Int("runs", st.RunCount), zap.Int("errors", st.ErrorCount))
}
