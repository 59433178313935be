package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"druid/internal/audit"
	directoryhandler "druid/internal/directory/handler"
	directorymetrics "druid/internal/directory/metrics"
	"druid/internal/directory/service"
	"druid/internal/directory/store"
	httpapi "druid/internal/http"
	"druid/internal/platform/config"
	"druid/internal/platform/httpserver"
	"druid/internal/platform/logger"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	st := store.NewMemory()
	if cfg.SeedDemoData {
		store.Seed(context.Background(), st)
	}

	auditStore := audit.NewMemoryStore()
	auditPublisher := audit.NewPublisher(cfg.AuditBuffer)
	auditWorker := audit.NewWorker(auditStore, auditPublisher.Inbox())

	directory := service.New(st,
		service.WithLogger(log),
		service.WithMetrics(directorymetrics.New()),
		service.WithAuditPublisher(auditPublisher),
	)

	router := httpapi.NewRouter(directoryhandler.New(directory, log))
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting druid directory server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
