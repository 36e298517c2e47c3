// Package handlers contains http handlers for myregistry.
//
//go:generate oapi-codegen -config openapi-api.config.yaml ../api/my-registry.openapi.yaml
//go:generate oapi-codegen -config openapi-types.config.yaml ../api/my-registry.openapi.yaml
package handlers

import (
	"fmt"
	"net/http"

	"myregistry/helpers"
	"myregistry/interfaces"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface generated from OpenAPI spec.
type HTTPServer struct {
	registry interfaces.Registry
	logger   log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on nil registry or logger.
func NewHTTPServer(registry interfaces.Registry, logger log.Logger) *HTTPServer {
	logger = helpers.NilPanic(logger, "handlers.http.go: logger is required")
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		registry: helpers.NilPanic(registry, "handlers.http.go: registry is required"),
		logger:   logger,
	}
}

// PutInstance (PUT /services/{name}/{instance_id}) registers the instance when the request has a body
// and renews its lease otherwise. Returns 404 when renewing an unknown instance.
func (h *HTTPServer) PutInstance(ectx echo.Context, name ServiceName, instanceId InstanceId) error {
	ctx := ectx.Request().Context()

	if !hasBody(ectx.Request()) {
		if _, err := h.registry.Renew(ctx, name, instanceId); err != nil {
			return fmt.Errorf("putInstance failed to renew instance, err: %w", err)
		}
		return ectx.NoContent(http.StatusOK)
	}

	var req RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	instance, err := fromRegisterRequest(name, instanceId, req)
	if err != nil {
		return fmt.Errorf("putInstance failed to convert request to instance, err: %w", err)
	}

	stored, err := h.registry.Register(ctx, instance)
	if err != nil {
		return fmt.Errorf("putInstance failed to register instance, err: %w", err)
	}
	level.Debug(h.logger).Log(
		"msg", "instance registered",
		"service", stored.ServiceName,
		"instance_id", stored.InstanceID,
		"lease_expires_at", stored.LeaseExpiresAt,
	)

	return ectx.NoContent(http.StatusOK)
}

// DeregisterInstance (DELETE /services/{name}/{instance_id}) removes the instance. Absent instances are not an error.
func (h *HTTPServer) DeregisterInstance(ectx echo.Context, name ServiceName, instanceId InstanceId) error {
	ctx := ectx.Request().Context()
	if err := h.registry.Deregister(ctx, name, instanceId); err != nil {
		return fmt.Errorf("deregisterInstance failed to deregister instance, err: %w", err)
	}

	return ectx.NoContent(http.StatusOK)
}

// QueryInstances (GET /services/{name}) returns the live instances of one service.
func (h *HTTPServer) QueryInstances(ectx echo.Context, name ServiceName) error {
	ctx := ectx.Request().Context()
	instances, err := h.registry.Query(ctx, name)
	if err != nil {
		return fmt.Errorf("queryInstances failed to query registry, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toInstancesResponse(instances))
}

// ListServices (GET /services) returns every service with at least one live instance.
func (h *HTTPServer) ListServices(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	apps, err := h.registry.Applications(ctx)
	if err != nil {
		return fmt.Errorf("listServices failed to list applications, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toServicesResponse(apps))
}

func hasBody(r *http.Request) bool {
	return r.Body != nil && r.Body != http.NoBody && r.ContentLength != 0
}
