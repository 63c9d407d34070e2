package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func parseLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}
	return entry
}

func TestLoggerJSONKeys(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info("hello")

	entry := parseLine(t, buf.String())
	if entry["message"] != "hello" {
		t.Errorf("expected message key, got %v", entry)
	}
	if entry["level"] != "info" {
		t.Errorf("expected lowercase level, got %v", entry["level"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("expected timestamp key")
	}
}

func TestLoggerWarnLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Warn("careful")

	entry := parseLine(t, buf.String())
	if entry["level"] != "warning" {
		t.Errorf("expected level warning, got %v", entry["level"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Info("dropped")
	log.Debug("dropped")
	log.Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}
}

func TestLoggerChaining(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("router").
		WithEventID("evt-123").
		WithError(errors.New("boom")).
		WithField("count", 3).
		Error("failed")

	entry := parseLine(t, buf.String())
	if entry["module"] != "router" {
		t.Errorf("expected module field, got %v", entry)
	}
	if entry["event_id"] != "evt-123" {
		t.Errorf("expected event_id field, got %v", entry)
	}
	if entry["error"] != "boom" {
		t.Errorf("expected error field, got %v", entry)
	}
	if entry["count"] != float64(3) {
		t.Errorf("expected count field, got %v", entry)
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithFields(map[string]any{"a": "x", "b": "y"}).Info("multi")

	entry := parseLine(t, buf.String())
	if entry["a"] != "x" || entry["b"] != "y" {
		t.Errorf("expected both fields, got %v", entry)
	}
}
