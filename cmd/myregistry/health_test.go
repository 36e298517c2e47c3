package main

import (
	"context"
	"net"
	"testing"
	"time"

	"myregistry/adapters/memory"
	"myregistry/handlers"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func TestHealthCheck(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	grpcServer, healthServer := newGRPCServer()
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			t.Logf("Server error: %v", err)
		}
	}()
	defer grpcServer.Stop()

	conn, err := grpc.NewClient(
		lis.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	healthClient := grpc_health_v1.NewHealthClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, name := range []string{"", healthServiceName} {
		resp, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: name})
		require.NoError(t, err)
		assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
	}

	healthServer.Shutdown()
	resp, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ""})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestShutdown(t *testing.T) {
	registry := memory.NewRegistry(service.NewTimeProvider(time.Now), time.Minute)
	e, err := handlers.NewRouter(handlers.NewHTTPServer(registry, log.NewNopLogger()), handlers.RouterConfig{}, log.NewNopLogger())
	require.NoError(t, err)
	task := service.NewEvictionTask(registry, time.Hour, log.NewNopLogger())
	require.NoError(t, task.Start(context.Background()))
	grpcServer, healthServer := newGRPCServer()

	closed := false
	shutdown(log.NewNopLogger(), e, grpcServer, healthServer, task, func() error {
		closed = true
		return nil
	})

	assert.True(t, closed)
	resp, err := healthServer.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: healthServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.Status)
	// stopped tasks can be started again
	require.NoError(t, task.Start(context.Background()))
	task.Stop()
}
