package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig holds configuration for the logging middleware
type LogConfig struct {
	Logger *zap.Logger
	// Skip logging for specific paths
	SkipPaths []string
}

func DefaultLogConfig(log *zap.Logger) LogConfig {
	return LogConfig{
		Logger:    log,
		SkipPaths: []string{"/health"},
	}
}

// LoggingMiddleware logs one entry per request with its status and latency.
func LoggingMiddleware(cfg LogConfig) fiber.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		// Fiber reuses the request buffers once the handler returns, and a
		// core may hold on to the fields longer than that.
		fields := []zap.Field{
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", utils.CopyString(c.IP())),
			zap.String("user_agent", utils.CopyString(c.Get(fiber.HeaderUserAgent))),
		}
		if id := c.Get(fiber.HeaderXRequestID); id != "" {
			fields = append(fields, zap.String("request_id", utils.CopyString(id)))
		}
		if s, _ := CurrentSession(c); s != nil {
			fields = append(fields, zap.String("observer", s.Observer))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		if ce := log.Check(levelFor(status), "request"); ce != nil {
			ce.Write(fields...)
		}
		return err
	}
}

func levelFor(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
