package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myregistry/adapters/registryhttp"
	"myregistry/helpers"
	"myregistry/registration"

	"github.com/go-kit/log/level"
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

	instance := config.Registration.Instance
	level.Info(logger).Log(
		"msg", "Starting MyClient service",
		"service_port_http", config.HTTPPort,
		"registry_url", config.RegistryURL,
		"service", instance.ServiceName,
		"instance_id", instance.InstanceID,
		"address", instance.Address,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := registryhttp.NewRegistryAPI(config.RegistryURL, &http.Client{Timeout: 10 * time.Second})

	var registrar *registration.Registrar
	{
		registrar = registration.NewRegistrar(api, config.Registration, logger)
		if err := registrar.Start(ctx); err != nil {
			level.Error(logger).Log("msg", "Failed to start registrar", "err", err)
			os.Exit(1)
		}
	}

	e := newRouter(api, logger)
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	level.Info(logger).Log("msg", "Shutting down...")

	registrar.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
