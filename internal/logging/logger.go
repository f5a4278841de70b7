package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "MARQUEE_LOG_LEVEL"

// LogFileEnvVar redirects log output to a file. The terminal front-end owns
// stdout, so interactive sessions should always log to a file.
const LogFileEnvVar = "MARQUEE_LOG_FILE"

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn, error. Empty falls back to
	// MARQUEE_LOG_LEVEL, and if that is empty too the logger is silent.
	Level string

	// File is the output path. Empty falls back to MARQUEE_LOG_FILE, then
	// stderr.
	File string
}

// Initialize creates a new logger with the specified level writing to stderr
// (or MARQUEE_LOG_FILE when set).
func Initialize(level string) error {
	return InitializeWithOptions(Options{Level: level})
}

// InitializeFromEnv initializes the logger from the environment only.
func InitializeFromEnv() error {
	return InitializeWithOptions(Options{})
}

// InitializeWithOptions builds the global logger.
func InitializeWithOptions(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	output := opts.File
	if output == "" {
		output = os.Getenv(LogFileEnvVar)
	}
	if output == "" {
		output = "stderr"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if output == "stderr" || output == "stdout" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use this with zap.NewNop or an
// observer core.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Named returns a child of the global logger for a component.
func Named(component string) *zap.Logger {
	return GetLogger().Named(component)
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogTransition logs a navigation state change. Transitions happen at frame
// rate during scroll bursts, so they are debug level.
func LogTransition(from, to string, event string) {
	Debug("Navigation transition",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("event", event),
	)
}

// LogLaunch logs the outcome of an external program run.
func LogLaunch(collection, item string, attract bool, played time.Duration, reboot bool, err error) {
	fields := []zap.Field{
		zap.String("collection", collection),
		zap.String("item", item),
		zap.Bool("attract", attract),
		zap.Duration("played", played),
		zap.Bool("reboot", reboot),
	}
	if err != nil {
		Warn("Launch failed", append(fields, zap.Error(err))...)
		return
	}
	Info("Launch finished", fields...)
}

// LogAttract logs an attract-mode decision.
func LogAttract(signal string, collection, playlist string) {
	Debug("Attract signal",
		zap.String("signal", signal),
		zap.String("collection", collection),
		zap.String("playlist", playlist),
	)
}

// LogResolution logs a collection that could not be entered.
func LogResolution(collection string, err error) {
	Warn("Collection could not be resolved, falling back",
		zap.String("collection", collection),
		zap.Error(err),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
