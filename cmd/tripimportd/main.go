package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/tripdocs/internal/app"
	"github.com/joseph-ayodele/tripdocs/internal/common"
	"github.com/joseph-ayodele/tripdocs/internal/export"
	"github.com/joseph-ayodele/tripdocs/internal/importqueue"
	"github.com/joseph-ayodele/tripdocs/internal/ingest"
)

const serviceName = "tripdocs.import"

func main() {
	var (
		dir      = flag.String("dir", "", "directory to watch (overrides IMPORT_WATCH_DIR)")
		out      = flag.String("out", "", "review XLSX rewritten after every batch (optional)")
		debounce = flag.Duration("debounce", 2*time.Second, "quiet period before a changed file is queued")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *dir != "" {
		cfg.Import.WatchDir = *dir
	}
	if cfg.Import.WatchDir == "" {
		logger.Error("watch directory is required", "hint", "set IMPORT_WATCH_DIR or pass --dir")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(2)
	}
	if *out == "" {
		*out = filepath.Join(cfg.Import.WatchDir, ".trip-review.xlsx")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := app.OpenStorage(ctx, cfg, false, logger)
	if err != nil {
		logger.Error("failed to initialize database", "err", err)
		os.Exit(1)
	}
	defer storage.Close()

	// gRPC health + reflection so orchestrators and grpcurl can check the daemon
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	reflection.Register(grpcServer)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("listen failed", "addr", cfg.Server.GRPCAddr, "err", err)
		os.Exit(1)
	}
	go func() {
		logger.Info("grpc health serving", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve failed", "err", err)
			stop()
		}
	}()

	q := importqueue.NewQueue()
	processor := app.NewProcessor(cfg, storage.Store, logger)
	ingestor := ingest.NewIngestor(q, logger,
		ingest.WithExtensions(cfg.Import.AllowedExtensions),
		ingest.WithSkipHidden(cfg.Import.SkipHidden),
	)
	exporter := export.NewService(storage.Store, logger)

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{cfg.Import.WatchDir},
		Extensions:  cfg.Import.AllowedExtensions,
		SkipHidden:  cfg.Import.SkipHidden,
		InitialScan: true,
		Debounce:    *debounce,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("watcher start failed", "err", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		monitorDB(ctx, storage, hs, logger)
	}()

	kick := make(chan struct{}, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-kick:
			}
			if _, err := app.Drain(ctx, processor, q, logger); err != nil {
				logger.Warn("batch interrupted", "err", err)
			}
			writeReview(exporter, q, *out, logger)
		}
	}()

	logger.Info("watching for travel documents", "dir", cfg.Import.WatchDir)
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case path, ok := <-events:
			if !ok {
				break loop
			}
			if filepath.Clean(path) == filepath.Clean(*out) {
				continue
			}
			if _, err := ingestor.IngestPath(path); err != nil {
				logger.Warn("ingest failed", "path", path, "err", err)
				continue
			}
			select {
			case kick <- struct{}{}:
			default:
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Error("watcher error", "err", err)
		}
	}

	logger.Info("shutting down")
	hs.Shutdown()
	grpcServer.GracefulStop()
	wg.Wait()
	logger.Info("stopped", "queue", q.Len(), "pending", len(q.Pending()))
}

// monitorDB flips the health status when the database stops answering.
func monitorDB(ctx context.Context, storage *app.Storage, hs *health.Server, logger *slog.Logger) {
	t := time.NewTicker(30 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			status := healthpb.HealthCheckResponse_SERVING
			if err := storage.DB.HealthCheck(ctx, 3*time.Second); err != nil {
				logger.Error("db health failed", "err", err)
				status = healthpb.HealthCheckResponse_NOT_SERVING
			}
			hs.SetServingStatus(serviceName, status)
		}
	}
}

func writeReview(exporter *export.Service, q *importqueue.Queue, out string, logger *slog.Logger) {
	b, err := exporter.ExportQueueXLSX(q.Items())
	if err != nil {
		logger.Error("review export failed", "err", err)
		return
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		logger.Error("review write failed", "path", out, "err", err)
	}
}
