package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cadastro/internal/platform/config"
	"cadastro/internal/platform/httpserver"
	"cadastro/internal/platform/logger"
	"cadastro/internal/platform/metrics"
	httptransport "cadastro/internal/transport/http"
	validationHandler "cadastro/internal/validation/handler"
	validationMetrics "cadastro/internal/validation/metrics"
	validationService "cadastro/internal/validation/service"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Validation logic lives in pkg/cnpj.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	for _, w := range cfg.Warnings {
		log.Warn("config fallback", "detail", w)
	}

	reg := metrics.NewRegistry()
	svc := validationService.New(
		validationService.WithLogger(log),
		validationService.WithMetrics(validationMetrics.New(reg)),
		validationService.WithBatchLimit(cfg.BatchLimit),
		validationService.WithConcurrency(cfg.BatchConcurrency),
	)
	router := httptransport.NewRouter(log, reg, validationHandler.New(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting cadastro", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
