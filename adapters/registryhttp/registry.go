// Package registryhttp talks to a MyRegistry server over its HTTP API.
package registryhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"
	"myregistry/service"
)

// DefaultRequestTimeout bounds each call when the caller's context has no earlier deadline.
const DefaultRequestTimeout = 5 * time.Second

// NewRegistryAPI creates an interfaces.RegistryAPI for the registry at baseURL (e.g. http://myregistry:8080).
// A trailing slash on baseURL is ignored. Panics on empty baseURL or nil client.
//
// Responses are mapped to service.MyError codes: 404 entity_not_found, 400 and other 4xx bad_parameter,
// 429, 5xx and transport failures unavailable.
func NewRegistryAPI(baseURL string, client *http.Client) interfaces.RegistryAPI {
	baseURL = helpers.StrPanic(baseURL, "adapters.registryhttp.registry.go: baseURL is required")
	return &registryAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  helpers.NilPanic(client, "adapters.registryhttp.registry.go: http client is required"),
		timeout: DefaultRequestTimeout,
	}
}

type registryAPI struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

type registerRequest struct {
	Address         string `json:"address"`
	Status          string `json:"status,omitempty"`
	LeaseDurationMs int64  `json:"lease_duration_ms,omitempty"`
}

type instanceInfo struct {
	Name       string `json:"name"`
	InstanceID string `json:"instance_id"`
	Address    string `json:"address"`
	Status     string `json:"status"`
}

type instancesResponse struct {
	Instances []instanceInfo `json:"instances"`
}

type servicesResponse struct {
	Services []struct {
		Name      string         `json:"name"`
		Instances []instanceInfo `json:"instances"`
	} `json:"services"`
}

type errResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (r *registryAPI) Register(ctx context.Context, instance domain.Instance) error {
	body, err := json.Marshal(registerRequest{
		Address:         instance.Address,
		Status:          string(instance.Status),
		LeaseDurationMs: instance.LeaseDuration.Milliseconds(),
	})
	if err != nil {
		return service.NewInternalServerError("can't encode register request", err)
	}
	return r.do(ctx, http.MethodPut, instancePath(instance.ServiceName, instance.InstanceID), body, nil)
}

func (r *registryAPI) Renew(ctx context.Context, serviceName, instanceID string) error {
	return r.do(ctx, http.MethodPut, instancePath(serviceName, instanceID), nil, nil)
}

func (r *registryAPI) Deregister(ctx context.Context, serviceName, instanceID string) error {
	return r.do(ctx, http.MethodDelete, instancePath(serviceName, instanceID), nil, nil)
}

func (r *registryAPI) Query(ctx context.Context, serviceName string) ([]domain.Instance, error) {
	var raw instancesResponse
	if err := r.do(ctx, http.MethodGet, "/services/"+url.PathEscape(serviceName), nil, &raw); err != nil {
		return nil, err
	}
	if raw.Instances == nil {
		return nil, service.NewUnavailableError("registry response missing instances field", nil)
	}
	return fromInstanceInfos(raw.Instances), nil
}

func (r *registryAPI) Applications(ctx context.Context) ([]domain.Application, error) {
	var raw servicesResponse
	if err := r.do(ctx, http.MethodGet, "/services", nil, &raw); err != nil {
		return nil, err
	}
	if raw.Services == nil {
		return nil, service.NewUnavailableError("registry response missing services field", nil)
	}
	apps := make([]domain.Application, 0, len(raw.Services))
	for _, s := range raw.Services {
		apps = append(apps, domain.Application{Name: s.Name, Instances: fromInstanceInfos(s.Instances)})
	}
	return apps, nil
}

// do sends one request and decodes a 200 JSON body into out when out is not nil.
func (r *registryAPI) do(ctx context.Context, method, path string, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return service.NewBadParameterError("can't build registry request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return service.NewUnavailableError("registry is unreachable", fmt.Errorf("%s %s, err: %w", method, path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(method, path, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return service.NewUnavailableError("can't decode registry response", fmt.Errorf("%s %s, err: %w", method, path, err))
	}
	return nil
}

func statusError(method, path string, resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)
	var raw errResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&raw); err == nil && raw.Error != nil && raw.Error.Message != "" {
		message = raw.Error.Message
	}
	inner := fmt.Errorf("%s %s returned %d", method, path, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return service.NewEntityNotFoundError(message, inner)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return service.NewUnavailableError(message, inner)
	case resp.StatusCode >= http.StatusBadRequest:
		return service.NewBadParameterError(message, inner)
	default:
		return service.NewUnavailableError(message, inner)
	}
}

func fromInstanceInfos(in []instanceInfo) []domain.Instance {
	out := make([]domain.Instance, 0, len(in))
	for _, i := range in {
		out = append(out, domain.Instance{
			ServiceName: i.Name,
			InstanceID:  i.InstanceID,
			Address:     i.Address,
			Status:      domain.Status(i.Status),
		})
	}
	return out
}

func instancePath(serviceName, instanceID string) string {
	return "/services/" + url.PathEscape(serviceName) + "/" + url.PathEscape(instanceID)
}
