package http

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/observability"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// MiddlewareConfig tunes the global middleware chain.
type MiddlewareConfig struct {
	Timeout     time.Duration
	CORSOrigins []string
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	app.Use(requestIDMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

// ErrorHandler renders errors that escape the middleware chain, such as
// failures raised before errorHandlingMiddleware runs.
func ErrorHandler(logger *zap.Logger, metrics *observability.Metrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return renderError(c, logger, metrics, err)
	}
}

func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(observability.RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(observability.RequestIDHeader, id)
		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				err = renderError(c, logger, metrics, err)
			}
		}()
		return c.Next()
	}
}

func renderError(c *fiber.Ctx, logger *zap.Logger, metrics *observability.Metrics, err error) error {
	domainErr := toDomainError(err)
	metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)

	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	if domainErr.HTTPStatus >= 500 {
		logger.Error("request failed",
			zap.Error(domainErr),
			zap.String("path", c.Path()),
			zap.String("request_id", c.GetRespHeader(observability.RequestIDHeader)),
		)
	}
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
}

// toDomainError also covers *fiber.Error, which fiber raises for unknown
// routes, disallowed methods and unparsable bodies.
func toDomainError(err error) *apperrors.DomainError {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fromStatus(fe.Code, fe.Message)
	}
	return apperrors.ToDomainError(err)
}

func fromStatus(status int, message string) *apperrors.DomainError {
	var code string
	switch {
	case status == http.StatusUnauthorized:
		code = apperrors.CodeUnauthorized
	case status == http.StatusForbidden:
		code = apperrors.CodeForbidden
	case status == http.StatusNotFound || status == http.StatusMethodNotAllowed:
		code = apperrors.CodeNotFound
	case status == http.StatusConflict:
		code = apperrors.CodeConflict
	case status >= 400 && status < 500:
		code = apperrors.CodeInvalidInput
	default:
		return apperrors.NewInternalError(errors.New(message)).(*apperrors.DomainError)
	}
	return apperrors.NewDomainError(code, message, status, nil)
}

func corsOrigins(origins []string) string {
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	if len(cleaned) == 0 {
		return "*"
	}
	return strings.Join(cleaned, ",")
}
