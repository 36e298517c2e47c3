package handlers

import (
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// NewRequestLogger returns an access log middleware. Handler errors are rendered through the echo
// error handler first so the logged status is the one sent to the client.
func NewRequestLogger(logger log.Logger) echo.MiddlewareFunc {
	logger = log.WithPrefix(logger, "component", "http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			level.Debug(logger).Log(
				"msg", "request served",
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"remote_ip", c.RealIP(),
				"took", time.Since(start),
			)
			return nil
		}
	}
}
