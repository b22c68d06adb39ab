package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "test-svc", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "invalid-level")
	l.Info("hello")
	if buf.Len() == 0 {
		t.Fatal("expected info output with fallback level")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "debug").WithComponent("network")
	l.Debug("request completed", Fields(FieldMethod, "GET", FieldStatus, 200))

	m := decodeLine(t, &buf)
	if m["message"] != "request completed" {
		t.Errorf("unexpected message %v", m["message"])
	}
	if m[FieldComponent] != "network" {
		t.Errorf("expected component field, got %v", m[FieldComponent])
	}
	if m[FieldMethod] != "GET" {
		t.Errorf("expected method field, got %v", m[FieldMethod])
	}
	if m[FieldStatus] != float64(200) {
		t.Errorf("expected status 200, got %v", m[FieldStatus])
	}
	if m["service"] != "test-svc" {
		t.Errorf("expected service field, got %v", m["service"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %s", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected warn output")
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info").WithError(fmt.Errorf("boom"))
	l.Error("failed")
	m := decodeLine(t, &buf)
	if m[FieldError] != "boom" {
		t.Errorf("expected error field, got %v", m[FieldError])
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info").WithFields(map[string]interface{}{"key": "value"})
	l.Info("x")
	m := decodeLine(t, &buf)
	if m["key"] != "value" {
		t.Errorf("expected key=value, got %v", m["key"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("ignored")
	if l.WithComponent("x") == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestGlobalLogger(t *testing.T) {
	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}

	custom := Nop()
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected custom global logger")
	}

	Init(Config{Level: "info", Format: "json", Output: "discard"})
	if GetGlobalLogger() == custom {
		t.Error("expected Init to replace the global logger")
	}
}

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("unexpected fields %v", f)
	}
	f = MergeWithError(nil, fmt.Errorf("x"))
	if f[FieldError] != "x" {
		t.Errorf("expected error field, got %v", f)
	}
	f = MergeWithDuration(f, 1500*time.Millisecond)
	if f[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", f[FieldDuration])
	}
}

func TestConfig_ApplyDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid level error")
	}
	cfg.Level = "info"
	cfg.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid format error")
	}
}
