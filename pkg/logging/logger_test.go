package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{" Warn ", WarnLevel},
		{"warning", WarnLevel},
		{"ERROR", ErrorLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", "warning", "error"} {
		if !ValidLevel(name) {
			t.Errorf("ValidLevel(%q) = false, want true", name)
		}
	}
	if ValidLevel("trace") {
		t.Error("ValidLevel(trace) = true, want false")
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []Entry {
	t.Helper()
	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestJSONLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("error mode attached", Component("IT"), Mode("IT_prop"), Condition("F1 && F2"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != "INFO" || e.Message != "error mode attached" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Fields["component"] != "IT" || e.Fields["mode"] != "IT_prop" || e.Fields["condition"] != "F1 && F2" {
		t.Errorf("unexpected fields %v", e.Fields)
	}
	if e.Time == "" {
		t.Error("time not set")
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("unexpected levels %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewJSONLogger(&buf, InfoLevel)
	child := parent.With(System("TCU"))

	parent.SetLevel(ErrorLevel)
	child.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatal("child should follow the parent's level")
	}

	child.Error("kept", Port("ITFailure", "ITF1", "AZ"))
	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Fields["system"] != "TCU" {
		t.Errorf("system field = %v", entries[0].Fields["system"])
	}
	if entries[0].Fields["port"] != "ITFailure->ITF1@AZ" {
		t.Errorf("port field = %v", entries[0].Fields["port"])
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("plain")
	if strings.Contains(buf.String(), "fields") {
		t.Errorf("expected no fields key, got %s", buf.String())
	}
}

func TestErrorField(t *testing.T) {
	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil).Value = %v, want nil", f.Value)
	}
	if f := Error(errors.New("boom")); f.Value != "boom" || f.Key != "error" {
		t.Errorf("Error(boom) = %+v", f)
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(InfoLevel)
	child := rec.With(System("S"))

	rec.Debug("dropped")
	child.Warn("orphan", Mode("F9"))
	rec.Info("done")

	all := rec.Records()
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	warns := rec.AtLevel(WarnLevel)
	if len(warns) != 1 || warns[0].Fields["mode"] != "F9" || warns[0].Fields["system"] != "S" {
		t.Errorf("unexpected warn records %+v", warns)
	}
}

func TestTimedOperation(t *testing.T) {
	rec := NewRecorder(DebugLevel)
	op := StartTimer(rec, "build", System("S"))
	time.Sleep(time.Millisecond)
	op.End(Count(3))
	op.EndError(errors.New("invalid"))

	records := rec.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if _, ok := records[0].Fields["latency"]; !ok {
		t.Error("latency missing")
	}
	if records[0].Fields["count"] != 3 {
		t.Errorf("count = %v", records[0].Fields["count"])
	}
	if records[1].Level != ErrorLevel || records[1].Fields["error"] != "invalid" {
		t.Errorf("unexpected error record %+v", records[1])
	}
	if op.Elapsed() <= 0 {
		t.Error("elapsed should be positive")
	}
}

func TestDefaultLogger(t *testing.T) {
	if DefaultLogger() == nil {
		t.Fatal("DefaultLogger() returned nil")
	}
	rec := NewRecorder(DebugLevel)
	SetDefaultLogger(rec)
	DefaultLogger().Info("hello")
	if len(rec.Records()) != 1 {
		t.Error("SetDefaultLogger did not take effect")
	}
}

func TestOrNop(t *testing.T) {
	if _, ok := OrNop(nil).(NopLogger); !ok {
		t.Error("OrNop(nil) should be a NopLogger")
	}
	rec := NewRecorder(InfoLevel)
	if OrNop(rec) != Logger(rec) {
		t.Error("OrNop should return non-nil loggers unchanged")
	}
}
