package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from .env files without overriding ones already
// set. ENV_PATH takes precedence over defaultPaths. A missing file is an error
// only when env is "local" or empty.
func LoadDotEnv(env string, defaultPaths ...string) error {
	paths := defaultPaths
	if envPath := os.Getenv("ENV_PATH"); envPath != "" {
		paths = []string{envPath}
	} else {
		slog.Debug("ENV_PATH is not set, using default paths", "defaultPaths", defaultPaths)
	}

	err := godotenv.Load(paths...)
	if err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "paths", paths, "error", err)
			return err
		}
		slog.Debug("Skipping .env ...", "paths", paths)
	}

	return nil
}

// GetOr returns the value of key, or fallback when it is unset or empty.
func GetOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
