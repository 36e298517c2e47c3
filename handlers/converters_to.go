package handlers

import (
	"myregistry/domain"
)

func toInstanceInfo(instance domain.Instance) InstanceInfo {
	return InstanceInfo{
		Name:       instance.ServiceName,
		InstanceId: instance.InstanceID,
		Address:    instance.Address,
		Status:     InstanceStatus(instance.Status),
	}
}

func toInstanceInfos(instances []domain.Instance) []InstanceInfo {
	out := make([]InstanceInfo, 0, len(instances))
	for _, inst := range instances {
		out = append(out, toInstanceInfo(inst))
	}
	return out
}

func toInstancesResponse(instances []domain.Instance) InstancesResponse {
	return InstancesResponse{Instances: toInstanceInfos(instances)}
}

func toServicesResponse(apps []domain.Application) ServicesResponse {
	services := make([]ServiceInfo, 0, len(apps))
	for _, app := range apps {
		services = append(services, ServiceInfo{
			Name:      app.Name,
			Instances: toInstanceInfos(app.Instances),
		})
	}
	return ServicesResponse{Services: services}
}
