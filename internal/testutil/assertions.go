package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RecordedLog is a single call captured by RecordingLogger.
type RecordedLog struct {
	Level   string
	Message string
	KeyVals []interface{}
}

// RecordingLogger captures log calls for assertions. It satisfies the service logger
// interfaces by shape (Debug/Info/Warn/Error/With) and is safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []RecordedLog
	fields  []interface{}
	parent  *RecordingLogger
}

// NewRecordingLogger returns an empty recorder.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (r *RecordingLogger) root() *RecordingLogger {
	if r.parent != nil {
		return r.parent.root()
	}
	return r
}

func (r *RecordingLogger) record(level, msg string, keyvals []interface{}) {
	kv := append(append([]interface{}{}, r.fields...), keyvals...)
	root := r.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	root.entries = append(root.entries, RecordedLog{Level: level, Message: msg, KeyVals: kv})
}

func (r *RecordingLogger) Debug(msg string, keyvals ...interface{}) { r.record("debug", msg, keyvals) }
func (r *RecordingLogger) Info(msg string, keyvals ...interface{})  { r.record("info", msg, keyvals) }
func (r *RecordingLogger) Warn(msg string, keyvals ...interface{})  { r.record("warn", msg, keyvals) }
func (r *RecordingLogger) Error(msg string, keyvals ...interface{}) { r.record("error", msg, keyvals) }

// Child returns a recorder that prefixes fields and writes into the same entry list.
func (r *RecordingLogger) Child(keyvals ...interface{}) *RecordingLogger {
	return &RecordingLogger{
		fields: append(append([]interface{}{}, r.fields...), keyvals...),
		parent: r,
	}
}

// Entries returns a copy of everything recorded so far.
func (r *RecordingLogger) Entries() []RecordedLog {
	root := r.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	return append([]RecordedLog(nil), root.entries...)
}

// Messages returns all recorded messages at the given level.
func (r *RecordingLogger) Messages(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// AssertSameGrid fails the test with the first differing cell when two row-major grids differ.
func AssertSameGrid[T comparable](t *testing.T, expected, actual []T, width int, msgAndArgs ...interface{}) bool {
	t.Helper()

	require.Equal(t, len(expected), len(actual), "grid lengths differ")
	for i := range expected {
		if expected[i] != actual[i] {
			return assert.Fail(t,
				fmt.Sprintf("grids differ at (x=%d, z=%d): expected %v, got %v", i%width, i/width, expected[i], actual[i]),
				msgAndArgs...)
		}
	}
	return true
}
