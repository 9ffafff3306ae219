package observability

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// RequestLogger logs one line per request and feeds the request counters.
// It must run inside the error-handling middleware so the final status is known.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = apperrors.ToDomainError(err).HTTPStatus
			}
		}
		route := c.Route().Path
		metrics.RecordRequest(route, c.Method(), status)

		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetRespHeader(RequestIDHeader)),
		)
		return err
	}
}
