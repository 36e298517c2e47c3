package handlers

import (
	"fmt"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/service"
)

func fromRegisterRequest(name, instanceID string, req RegisterRequest) (domain.Instance, error) {
	instance := domain.Instance{
		ServiceName: name,
		InstanceID:  instanceID,
		Address:     req.Address,
		Status:      domain.Status(service.Value(req.Status)),
	}

	if req.LeaseDurationMs != nil {
		if *req.LeaseDurationMs <= 0 {
			return domain.Instance{}, service.NewBadParameterError("lease_duration_ms must be positive", nil)
		}
		if int64(*req.LeaseDurationMs) > helpers.MaxMillis {
			return domain.Instance{}, service.NewBadParameterError(fmt.Sprintf("lease_duration_ms must not exceed %d", helpers.MaxMillis), nil)
		}
		instance.LeaseDuration = time.Duration(*req.LeaseDurationMs) * time.Millisecond
	}

	if err := instance.Validate(); err != nil {
		return domain.Instance{}, service.NewBadParameterError(err.Error(), nil)
	}

	return instance, nil
}
