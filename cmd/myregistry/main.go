package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myregistry/handlers"
	"myregistry/helpers"
	"myregistry/interfaces"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

func main() {
	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := helpers.NewLogger(os.Stderr, config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "Starting MyRegistry service")
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"storage", config.Storage,
		"lease_duration", config.LeaseDuration,
		"eviction_interval", config.EvictionInterval,
		"rate_limit_rps", config.RateLimitRPS,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		registry      interfaces.Registry
		closeRegistry func() error
	)
	{
		registry, closeRegistry, err = newRegistry(ctx, config, service.NewTimeProvider(func() time.Time { return time.Now().UTC() }))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create registry", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Registry backend ready", "storage", config.Storage)
	}

	// Eviction sweep
	var evictionTask *service.RecurringTask
	{
		evictionTask = service.NewEvictionTask(registry, config.EvictionInterval, logger)
		if err := evictionTask.Start(ctx); err != nil {
			level.Error(logger).Log("msg", "Failed to start eviction", "err", err)
			os.Exit(1)
		}
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e, err = handlers.NewRouter(
			handlers.NewHTTPServer(registry, logger),
			handlers.RouterConfig{RateLimitRPS: config.RateLimitRPS, RateBurst: config.RateBurst},
			logger,
		)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create HTTP router", "err", err)
			os.Exit(1)
		}
	}

	// Create gRPC health server
	var (
		grpcServer   *grpc.Server
		healthServer *health.Server
	)
	if config.GRPCPort != 0 {
		grpcServer, healthServer = newGRPCServer()
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GRPCPort))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to listen", "err", err)
			os.Exit(1)
		}
		go func() {
			level.Info(logger).Log("msg", "Starting gRPC server", "addr", lis.Addr())
			if err := grpcServer.Serve(lis); err != nil {
				level.Error(logger).Log("msg", "gRPC server error", "err", err)
			}
		}()
	}

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			stop()
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	level.Info(logger).Log("msg", "Shutting down server...")
	shutdown(logger, e, grpcServer, healthServer, evictionTask, closeRegistry)
	level.Info(logger).Log("msg", "Server stopped")
}

func shutdown(logger log.Logger, e *echo.Echo, grpcServer *grpc.Server, healthServer *health.Server, evictionTask *service.RecurringTask, closeRegistry func() error) {
	if healthServer != nil {
		healthServer.Shutdown()
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	evictionTask.Stop()
	if err := closeRegistry(); err != nil {
		level.Error(logger).Log("msg", "Error closing registry backend", "err", err)
	}
}
