// Package main is the entry point for the Px3 catalog API server.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/nationalmap/px3-catalog-server/cmd/px3-catalog-api/app"
	"github.com/nationalmap/px3-catalog-server/internal/config"
	"github.com/nationalmap/px3-catalog-server/internal/logger"
)

// getLogLevel parses the PX3_CATALOG_LOG_LEVEL environment variable and returns
// the corresponding slog.Level. Falls back to LOG_LEVEL, then to slog.LevelInfo
// if neither is set or if the value is invalid.
func getLogLevel() slog.Level {
	// Create a Viper instance for application-level config
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Try PX3_CATALOG_LOG_LEVEL first (via Viper with PX3_CATALOG prefix)
	levelStr := v.GetString("LOG_LEVEL")

	// Fall back to LOG_LEVEL without prefix
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}

	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		slog.Warn("Invalid LOG_LEVEL, using INFO", "value", levelStr)
		return slog.LevelInfo
	}
}

func main() {
	// Structured JSON logging on stderr keeps stdout clean for commands that
	// output data (e.g., version --format json).
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: getLogLevel()})
	slog.SetDefault(slog.New(handler))

	// Library packages log through the shared zap facility
	logger.Initialize()

	slog.Info("Starting Px3 catalog API server")

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
