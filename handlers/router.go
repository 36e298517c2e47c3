package handlers

import (
	"fmt"
	"math"
	"time"

	"myregistry/api"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RouterConfig tunes the echo instance built by NewRouter.
type RouterConfig struct {
	// RateLimitRPS is the per client IP request rate. Zero disables rate limiting.
	RateLimitRPS float64
	// RateBurst defaults to RateLimitRPS rounded up.
	RateBurst int
}

// NewRouter creates the echo instance serving server with error handling, access logging,
// optional rate limiting and OpenAPI request validation.
func NewRouter(server ServerInterface, cfg RouterConfig, logger log.Logger) (*echo.Echo, error) {
	validator, err := NewOpenAPIValidator(api.OpenAPISpec())
	if err != nil {
		return nil, fmt.Errorf("newRouter failed to create request validator, err: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	service.RegisterErrorHandler(e, logger)

	e.Use(middleware.Recover())
	e.Use(NewRequestLogger(logger))
	if cfg.RateLimitRPS > 0 {
		e.Use(newRateLimiter(cfg))
	}
	e.Use(validator)

	RegisterHandlers(e, server)
	return e, nil
}

func newRateLimiter(cfg RouterConfig) echo.MiddlewareFunc {
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = int(math.Ceil(cfg.RateLimitRPS))
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RateLimitRPS),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiter(store)
}
