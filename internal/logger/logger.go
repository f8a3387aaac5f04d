// Package logger provides the shared logging facility for the catalog server.
// It wraps a zap sugared logger behind package-level helpers so library code
// can log without threading a logger through every constructor.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

// Initialize sets up the package logger. JSON output by default; set
// PX3_UNSTRUCTURED_LOGS=true for human-readable console output. The log
// level is taken from PX3_LOG_LEVEL (debug, info, warn, error).
func Initialize() {
	once.Do(func() {
		log = newSugaredLogger()
	})
}

func newSugaredLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(levelFromEnv())
	cfg.OutputPaths = []string{"stderr"}

	if unstructured, ok := os.LookupEnv("PX3_UNSTRUCTURED_LOGS"); ok && strings.EqualFold(unstructured, "true") {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(levelFromEnv())
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Logging must never take the process down; fall back to a no-op core.
		l = zap.NewNop()
	}
	return l.Sugar()
}

func levelFromEnv() zapcore.Level {
	switch strings.ToLower(os.Getenv("PX3_LOG_LEVEL")) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func instance() *zap.SugaredLogger {
	Initialize()
	return log
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) { instance().Debugf(format, args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) { instance().Infof(format, args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) { instance().Warnf(format, args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) { instance().Errorf(format, args...) }

// Info logs a message at info level.
func Info(args ...any) { instance().Info(args...) }

// Warn logs a message at warn level.
func Warn(args ...any) { instance().Warn(args...) }

// Error logs a message at error level.
func Error(args ...any) { instance().Error(args...) }

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(format string, args ...any) { instance().Fatalf(format, args...) }
