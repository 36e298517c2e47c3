package handlers

import (
	"testing"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRegisterRequest(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		status := InstanceStatusDOWN
		got, err := fromRegisterRequest("orders", "i1", RegisterRequest{
			Address:         "10.0.0.1:8080",
			Status:          &status,
			LeaseDurationMs: service.Ptr(1500),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.Instance{
			ServiceName:   "orders",
			InstanceID:    "i1",
			Address:       "10.0.0.1:8080",
			Status:        domain.StatusDown,
			LeaseDuration: 1500 * time.Millisecond,
		}, got)
	})

	t.Run("negative lease", func(t *testing.T) {
		_, err := fromRegisterRequest("orders", "i1", RegisterRequest{Address: "10.0.0.1:8080", LeaseDurationMs: service.Ptr(-1)})
		require.Error(t, err)
		assert.True(t, service.IsBadParameterError(err))
	})

	t.Run("lease overflowing time.Duration", func(t *testing.T) {
		_, err := fromRegisterRequest("orders", "i1", RegisterRequest{Address: "10.0.0.1:8080", LeaseDurationMs: service.Ptr(18446744073710)})
		require.Error(t, err)
		assert.True(t, service.IsBadParameterError(err))
		assert.Contains(t, err.Error(), "lease_duration_ms must not exceed 9223372036854")
	})

	t.Run("largest lease", func(t *testing.T) {
		got, err := fromRegisterRequest("orders", "i1", RegisterRequest{Address: "10.0.0.1:8080", LeaseDurationMs: service.Ptr(int(helpers.MaxMillis))})
		require.NoError(t, err)
		assert.True(t, got.LeaseDuration > 0)
	})

	t.Run("unknown status", func(t *testing.T) {
		status := InstanceStatus("GONE")
		_, err := fromRegisterRequest("orders", "i1", RegisterRequest{Address: "10.0.0.1:8080", Status: &status})
		require.Error(t, err)
		assert.True(t, service.IsBadParameterError(err))
	})
}

func TestToServicesResponse(t *testing.T) {
	got := toServicesResponse(nil)
	assert.NotNil(t, got.Services)
	assert.Empty(t, got.Services)

	got = toServicesResponse([]domain.Application{{Name: "audit"}})
	require.Len(t, got.Services, 1)
	assert.Equal(t, "audit", got.Services[0].Name)
	assert.NotNil(t, got.Services[0].Instances)
}
