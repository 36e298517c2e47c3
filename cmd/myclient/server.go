package main

import (
	"fmt"
	"net/http"

	"myregistry/handlers"
	"myregistry/interfaces"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const helloMessage = "Hello world from Service A!"

type instanceView struct {
	Name       string `json:"name"`
	InstanceID string `json:"instance_id"`
	Address    string `json:"address"`
	Status     string `json:"status"`
}

// newRouter serves the demo endpoints. /service-instances/{name} looks the service up in the registry.
func newRouter(api interfaces.RegistryAPI, logger log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	service.RegisterErrorHandler(e, logger)
	e.Use(middleware.Recover())
	e.Use(handlers.NewRequestLogger(logger))

	e.GET("/helloWorld", func(c echo.Context) error {
		return c.String(http.StatusOK, helloMessage)
	})
	e.GET("/service-instances/:name", func(c echo.Context) error {
		name := c.Param("name")
		instances, err := api.Query(c.Request().Context(), name)
		if err != nil {
			return fmt.Errorf("serviceInstances failed to query registry, err: %w", err)
		}
		out := make([]instanceView, 0, len(instances))
		for _, inst := range instances {
			out = append(out, instanceView{
				Name:       inst.ServiceName,
				InstanceID: inst.InstanceID,
				Address:    inst.Address,
				Status:     string(inst.Status),
			})
		}
		return c.JSON(http.StatusOK, out)
	})
	return e
}
