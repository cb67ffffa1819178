// Package logging provides the structured logger used while building and
// validating dependability models.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logging interface used across the module.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger that always carries fields.
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// Entry is one emitted log line.
type Entry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// JSONLogger writes one JSON object per line.
type JSONLogger struct {
	out    *lockedWriter
	level  *levelVar
	fields []Field
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

type levelVar struct {
	mu    sync.RWMutex
	level Level
}

func (v *levelVar) get() Level {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.level
}

func (v *levelVar) set(l Level) {
	v.mu.Lock()
	v.level = l
	v.mu.Unlock()
}

// NewJSONLogger creates a logger writing to w at the given minimum level.
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		out:   &lockedWriter{w: w},
		level: &levelVar{level: level},
	}
}

func (l *JSONLogger) emit(level Level, msg string, fields []Field) {
	if level < l.level.get() {
		return
	}

	entry := Entry{
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if n := len(l.fields) + len(fields); n > 0 {
		entry.Fields = make(map[string]any, n)
		for _, f := range l.fields {
			entry.Fields[f.Key] = f.Value
		}
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(entry)

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	if err != nil {
		fmt.Fprintf(l.out.w, "{\"level\":\"ERROR\",\"msg\":\"unencodable log entry\",\"error\":%q}\n", err.Error())
		return
	}
	l.out.w.Write(append(data, '\n'))
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.emit(DebugLevel, msg, fields) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.emit(InfoLevel, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.emit(WarnLevel, msg, fields) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.emit(ErrorLevel, msg, fields) }

// With returns a child logger sharing the writer and level of l.
func (l *JSONLogger) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &JSONLogger{out: l.out, level: l.level, fields: merged}
}

// SetLevel changes the level for l and every logger derived from it.
func (l *JSONLogger) SetLevel(level Level) { l.level.set(level) }

func (l *JSONLogger) GetLevel() Level { return l.level.get() }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field)  {}
func (NopLogger) Info(string, ...Field)   {}
func (NopLogger) Warn(string, ...Field)   {}
func (NopLogger) Error(string, ...Field)  {}
func (n NopLogger) With(...Field) Logger  { return n }
func (NopLogger) SetLevel(Level)          {}
func (NopLogger) GetLevel() Level         { return ErrorLevel }

// NewNopLogger returns a logger that discards all output.
func NewNopLogger() Logger { return NopLogger{} }

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
