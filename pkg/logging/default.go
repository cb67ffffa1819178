package logging

import (
	"os"
	"sync"
	"time"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
	defaultOnce   sync.Once
)

// DefaultLogger returns the process-wide logger, created on first use at
// the level named by FAULTFLOW_LOG_LEVEL (or LOG_LEVEL), writing to stderr.
func DefaultLogger() Logger {
	defaultOnce.Do(func() {
		name := os.Getenv("FAULTFLOW_LOG_LEVEL")
		if name == "" {
			name = os.Getenv("LOG_LEVEL")
		}
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = NewJSONLogger(os.Stderr, ParseLevel(name))
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide logger.
func SetDefaultLogger(l Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// TimedOperation logs a message with the elapsed time when it ends.
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer begins timing an operation.
func StartTimer(l Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{logger: OrNop(l), msg: msg, start: time.Now(), fields: fields}
}

// Elapsed reports the time since StartTimer.
func (t *TimedOperation) Elapsed() time.Duration { return time.Since(t.start) }

// End logs the operation at info level.
func (t *TimedOperation) End(extra ...Field) {
	t.logger.Info(t.msg, t.withLatency(extra)...)
}

// EndError logs the operation at error level with err attached.
func (t *TimedOperation) EndError(err error, extra ...Field) {
	t.logger.Error(t.msg, append(t.withLatency(extra), Error(err))...)
}

func (t *TimedOperation) withLatency(extra []Field) []Field {
	fields := make([]Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return append(fields, Latency(time.Since(t.start)))
}
