package logging

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request ID on requests and responses
const HeaderRequestID = "X-Request-ID"

// MiddlewareConfig defines configuration for logging middleware
type MiddlewareConfig struct {
	// SkipPaths defines paths to skip logging
	SkipPaths []string
}

// DefaultMiddlewareConfig returns default middleware configuration
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		SkipPaths: []string{"/health"},
	}
}

// FiberMiddleware returns a Fiber middleware that tags every request with an ID, stores a
// request scoped logger in the user context and logs the outcome
func FiberMiddleware(logger *Logger, cfg MiddlewareConfig) fiber.Handler {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, exists := skip[c.Path()]; exists {
			return c.Next()
		}

		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(HeaderRequestID, requestID)

		reqLogger := logger.With("request_id", requestID)
		ctx := c.UserContext()
		ctx = WithRequestID(ctx, requestID)
		ctx = WithLogger(ctx, reqLogger)
		c.SetUserContext(ctx)

		err := c.Next()

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()
		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
			"status", statusCode,
			"duration_ms", duration.Milliseconds(),
		}

		if err != nil {
			fields = append(fields, "error", err)
			reqLogger.Error("Request failed", fields...)
			return err
		}

		switch {
		case statusCode >= 500:
			reqLogger.Error("Server error", fields...)
		case statusCode >= 400:
			reqLogger.Warn("Client error", fields...)
		default:
			reqLogger.Info("Request completed", fields...)
		}
		return nil
	}
}
