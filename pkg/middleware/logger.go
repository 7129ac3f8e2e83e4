package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*middleware.RequestLoggerConfig)

// WithSkipper excludes matching requests from the access log.
func WithSkipper(skipper middleware.Skipper) LoggerOpts {
	return func(cfg *middleware.RequestLoggerConfig) {
		cfg.Skipper = skipper
	}
}

// WithLogger writes the access log to l instead of slog.Default.
func WithLogger(l *slog.Logger) LoggerOpts {
	return func(cfg *middleware.RequestLoggerConfig) {
		cfg.LogValuesFunc = logValues(l)
	}
}

func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	o := defaultOpt()
	for _, opt := range opts {
		opt(&o)
	}

	return middleware.RequestLoggerWithConfig(o)
}

func defaultOpt() middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:     true,
		LogLatency:    true,
		LogURI:        true,
		LogMethod:     true,
		LogRequestID:  true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: logValues(nil),
	}
}

func logValues(l *slog.Logger) func(echo.Context, middleware.RequestLoggerValues) error {
	return func(c echo.Context, v middleware.RequestLoggerValues) error {
		logger := l
		if logger == nil {
			logger = slog.Default()
		}

		if v.Error == nil {
			logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("request_id", v.RequestID),
				slog.Duration("latency", v.Latency),
			)
		} else {
			logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("request_id", v.RequestID),
				slog.String("err", v.Error.Error()),
			)
		}
		return nil
	}
}
