// Package main serves the Monkey lexer and parser over HTTP.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/DjordjeVuckovic/monkey-parser/internal/parser"
	"github.com/DjordjeVuckovic/monkey-parser/internal/router"
	"github.com/DjordjeVuckovic/monkey-parser/internal/server"
	pkgserver "github.com/DjordjeVuckovic/monkey-parser/pkg/server"
	"github.com/labstack/echo/v4"
)

const healthProbe = "let probe = fn(x) { x + 1; }; probe(1);"

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	var s *server.Server
	healthChecker := newHealthChecker(func() context.Context { return s.Context() })

	s = server.New(cfg.Server, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Monkey parser API is running")
	})

	router.NewParseRouter(s.Echo, cfg.Parser).Bind()
	slog.Info("Parser configured", "mode", cfg.Parser.Mode, "maxSourceBytes", cfg.Parser.MaxSourceBytes)

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

// newHealthChecker reports unhealthy once the server context is cancelled and
// otherwise requires the probe program to parse in strict mode.
func newHealthChecker(serverCtx func() context.Context) pkgserver.HealthChecker {
	return pkgserver.FuncHealthChecker(func(ctx context.Context) bool {
		if serverCtx().Err() != nil {
			return false
		}
		_, err := parser.Parse(healthProbe, parser.WithMode(parser.ModeStrict))
		return err == nil
	})
}
