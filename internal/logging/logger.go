package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// InitLogger initializes the global logger with configuration from environment variables
func InitLogger() {
	Logger = New(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")))
	Logger.Debug("Logger initialized successfully", "level", Logger.GetLevel())
}

// New creates a logger writing to w at the given level, with timestamps and caller info.
func New(w io.Writer, level LogLevel) *log.Logger {
	logger := log.New(w)
	setLogLevel(logger, level)
	logger.SetReportTimestamp(true)
	logger.SetReportCaller(true)
	return logger
}

// ParseLevel maps a level name to a LogLevel. Unknown or empty names fall back to debug.
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return DebugLevel
	}
}

// setLogLevel configures the logger with the specified level
func setLogLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case InfoLevel:
		logger.SetLevel(log.InfoLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.DebugLevel)
	}
}

// SetLevel changes the level of the global logger.
func SetLevel(level LogLevel) {
	setLogLevel(GetLogger(), level)
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithComponent creates a logger tagged with a component name
func WithComponent(component string) *log.Logger {
	return WithFields("component", component)
}

// WithTile creates a logger with tile origin context
func WithTile(originX, originZ int) *log.Logger {
	return WithFields("origin_x", originX, "origin_z", originZ)
}

// WithDuration creates a logger with duration context (for performance logging)
func WithDuration(operation string, duration interface{}) *log.Logger {
	return WithFields("operation", operation, "duration", duration)
}
