package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/monkey-parser/internal/parser"
	"github.com/DjordjeVuckovic/monkey-parser/internal/server"
	"github.com/DjordjeVuckovic/monkey-parser/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type ApiConfig struct {
	Server *server.Config
	Parser *parser.Config
}

func (as *AppConfig) Load() (*ApiConfig, error) {
	if err := env.LoadDotEnv(as.ENV, "cmd/monkey_api/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	serverCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server configuration", "error", err)
		return nil, err
	}

	parserCfg, err := parser.LoadEnv()
	if err != nil {
		slog.Error("Failed to load parser configuration", "error", err)
		return nil, err
	}

	return &ApiConfig{
		Server: serverCfg,
		Parser: parserCfg,
	}, nil
}
