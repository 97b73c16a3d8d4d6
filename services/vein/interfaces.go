package vein

import (
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/orevein/internal/logging"
)

// ChannelNoise is the per-channel scalar noise a Sampler reads from.
// *noise.LayeredNoise satisfies it.
type ChannelNoise interface {
	Noise(x, y float64, thresholds []float64) float64
}

// LoggerInterface abstracts logging operations for dependency injection.
type LoggerInterface interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) LoggerInterface
}

// LoggerAdapter implements LoggerInterface over a charmbracelet logger.
type LoggerAdapter struct {
	logger *log.Logger
}

// NewLoggerAdapter wraps logger. A nil logger uses the global one.
func NewLoggerAdapter(logger *log.Logger) LoggerInterface {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &LoggerAdapter{logger: logger}
}

func (l *LoggerAdapter) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *LoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *LoggerAdapter) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *LoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *LoggerAdapter) With(keysAndValues ...interface{}) LoggerInterface {
	return &LoggerAdapter{logger: l.logger.With(keysAndValues...)}
}
