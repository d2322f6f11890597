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

	"github.com/RoGogDBD/ticket-monitor/internal/config"
	"github.com/RoGogDBD/ticket-monitor/internal/event"
	"github.com/RoGogDBD/ticket-monitor/internal/handler"
	"github.com/RoGogDBD/ticket-monitor/internal/rhq"
	"github.com/RoGogDBD/ticket-monitor/internal/service"
	"github.com/RoGogDBD/ticket-monitor/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	logger, err := config.Initialize(config.EnvOrFlag(config.EnvLogLevel, flags.LogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	version.Log(logger)

	if err := config.EnvServer(flags.Address, config.EnvAddress); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	telemetry, err := rhq.NewTelemetry(reg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := rhq.New(logger, rhq.WithTelemetry(telemetry))
	client.Initialize(ctx, config.PropertiesLoader{
		Path: config.EnvOrFlag(config.EnvConfig, flags.ConfigPath),
	})

	dispatcher := event.NewDispatcher(logger)
	dispatcher.Attach(rhq.NewBookingReporter(client))

	srv := &http.Server{
		Addr:              flags.Address.String(),
		Handler:           service.NewRouter(handler.NewHandler(dispatcher, logger), reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", zap.String("address", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("HTTP server shutdown failed", zap.Error(shutdownErr))
	}
	client.Shutdown(shutdownCtx)

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
