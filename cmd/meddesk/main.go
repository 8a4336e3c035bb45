package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/meddesk/internal/config"
	"github.com/dmehra2102/prod-golang-projects/meddesk/internal/service"
	"github.com/dmehra2102/prod-golang-projects/meddesk/internal/storage"
	"github.com/dmehra2102/prod-golang-projects/meddesk/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/meddesk/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/meddesk/pkg/tracer"
)

// meddesk opens (or creates and seeds) the local front-desk database and
// prints a summary of its catalogs. The embedding desk application uses
// the same wiring and then drives internal/service directly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer tp.Shutdown(ctx)

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("failed to open storage backend",
			zap.String("backend", cfg.Storage.Backend),
			zap.Error(err),
		)
	}

	collector := metrics.NewCollector(cfg.App.Name, prometheus.DefaultRegisterer)
	svc := service.NewHospitalService(store, collector, log)

	if err := svc.EnsureSeed(ctx); err != nil {
		log.Fatal("failed to load hospital data", zap.Error(err))
	}

	log.Info("hospital desk ready",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("patients", len(svc.Patients())),
		zap.Int("medications", len(svc.Medications())),
		zap.Int("test_types", len(svc.TestTypes())),
		zap.Int("lab_orders", len(svc.LabOrders())),
		zap.Int("invoices", len(svc.Invoices())),
	)
}

func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	case config.BackendFile:
		return storage.NewFileStore(cfg.FileDir)
	case config.BackendRedis:
		return storage.OpenRedis(ctx, cfg.Redis)
	case config.BackendPostgres:
		return storage.OpenPostgres(cfg.Database)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
