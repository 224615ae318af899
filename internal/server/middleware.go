package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs failed requests at error level with their resolved
// status; successful requests only show up at debug.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"latency", time.Since(start).String(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
			}

			if err != nil {
				zap.S().Errorw("request failed", append(fields, "error", err.Error())...)
				return nil
			}

			zap.S().Debugw("request", fields...)
			return nil
		}
	}
}
