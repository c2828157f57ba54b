package main

import (
	"context"
	"errors"
	"fmt"
	"hybrid-guard/infrastructure/grpc/health"
	"hybrid-guard/infrastructure/rest"
	"hybrid-guard/internal"
	"hybrid-guard/repositories"
	"hybrid-guard/runtime"
	"hybrid-guard/services"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires storage, the model registry and both listeners, then blocks until
// a signal or a listener failure. Returning instead of exiting lets the deferred
// cleanup close Badger.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Artifacts (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	artifacts := repositories.NewArtifactRepository(db, logger)

	// 3. Model snapshot
	// A missing model is not fatal: /analyze answers with the structured error until a reload succeeds.
	registry := runtime.NewModelRegistry(artifacts, logger)
	if _, err := registry.Reload(ctx); err != nil {
		if config.RequireModelAtBoot {
			return exitRuntime, fmt.Errorf("initial model load failed: %w", err)
		}
		logger.Warn("Starting without a model", "err", err)
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		stats := func() map[string]any {
			if s := registry.Current(); s != nil {
				return map[string]any{"Model": s.Version.String(), "Loaded": s.LoadedAt.Format(time.RFC822)}
			}
			return map[string]any{"Model": "none"}
		}
		debug := internal.StartDebugServer(db, config.DebugPort, repositories.Describe, stats, logger)
		defer func() { _ = debug.Close() }()
		logger.Info("Debug artifact inspector available", "url", fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errChan := make(chan error, 2)

	// 5. HTTP boundary
	gin.SetMode(gin.ReleaseMode)
	scorer := services.NewScorerService(registry, logger)
	httpServer := &http.Server{
		Addr:              config.HTTPAddress(),
		Handler:           rest.NewServer(scorer, registry, logger).Handler(),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 6. gRPC health
	listener, err := net.Listen("tcp", config.GRPCAddress())
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.GRPCAddress(), err)
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc3.UnaryLoggingInterceptor(logger)))
	healthServer := health.NewServer(registry, config.HealthInterval, logger)
	healthServer.Register(s)

	// 7. Background workers
	supervisor := runtime.NewSupervisor(logger).Add(healthServer)
	if config.ModelReloadInterval > 0 {
		supervisor.Add(runtime.NewModelWatcher(registry, artifacts, config.ModelReloadInterval, logger))
	}
	supervised := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(supervised)
	}()
	go func() {
		logger.Info("Starting gRPC server", "address", config.GRPCAddress(), "at", time.Now().UTC())
		for serviceName := range s.GetServiceInfo() {
			logger.Debug("gRPC exposed services", "name", serviceName)
		}
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 9. Graceful Shutdown
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "err", err)
	}
	s.GracefulStop()
	<-supervised
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}
