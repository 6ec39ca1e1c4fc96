package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff // Disables all logging
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "OFF":
		return LevelOff
	default:
		return LevelInfo // Default to INFO
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

var (
	currentLevel = LevelOff
	sugar        = zap.NewNop().Sugar()
	logFile      *os.File
)

// Setup configures the logging system with the specified level and optional
// file path. If filePath is empty, defaults to ~/.newslens/newslens.log.
// Logs go to a file rather than stdout because stdout belongs to the TUI.
func Setup(level LogLevel, filePath ...string) error {
	currentLevel = level

	// Close existing log file if open
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if level == LevelOff {
		sugar = zap.NewNop().Sugar()
		return nil
	}

	// Determine log file path
	var logPath string
	if len(filePath) > 0 && filePath[0] != "" {
		logPath = filePath[0]
	} else {
		home, _ := os.UserHomeDir()
		logPath = filepath.Join(home, ".newslens", "newslens.log")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(f),
		level.zapLevel(),
	)

	logFile = f
	sugar = zap.New(core).Sugar()
	return nil
}

// SetupStderr routes logs to stderr instead of a file. Server mode uses
// it; there the terminal is not a UI surface.
func SetupStderr(level LogLevel) error {
	currentLevel = level

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if level == LevelOff {
		sugar = zap.NewNop().Sugar()
		return nil
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level.zapLevel(),
	)

	sugar = zap.New(core).Sugar()
	return nil
}

// SetLevel changes the current logging level. Levels already wired into the
// zap core stay as configured; Off swaps in a nop logger.
func SetLevel(level LogLevel) {
	currentLevel = level
	if level == LevelOff {
		sugar = zap.NewNop().Sugar()
	}
}

// GetLevel returns the current logging level
func GetLevel() LogLevel {
	return currentLevel
}

// L exposes the underlying sugared logger for components that take one,
// like the proxy's request middleware.
func L() *zap.SugaredLogger {
	return sugar
}

// Close flushes and closes the log file if open
func Close() error {
	_ = sugar.Sync()
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		sugar = zap.NewNop().Sugar()
		return err
	}
	return nil
}

func Debugf(format string, args ...any) {
	sugar.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	sugar.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	sugar.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	sugar.Errorf(format, args...)
}

// With returns a sugared logger carrying the given key-value pairs.
func With(args ...any) *zap.SugaredLogger {
	return sugar.With(args...)
}
