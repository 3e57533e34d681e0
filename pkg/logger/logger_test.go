package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"learnai_backend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetMode(t *testing.T) {
	defer SetMode("release")

	SetMode("debug")
	if !Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug mode should enable debug level")
	}
	SetMode("release")
	if Enabled(zapcore.DebugLevel) {
		t.Fatalf("release mode should not enable debug level")
	}
	if !Enabled(zapcore.InfoLevel) {
		t.Fatalf("info level should stay enabled")
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	SetMode("release")
	var console, file bytes.Buffer
	l := New(&console, &file)
	l.Info("activity recorded", zap.String("user", "u1"))
	l.Debug("hidden")
	_ = l.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(file.Bytes()), &entry); err != nil {
		t.Fatalf("file output is not a single JSON line: %v (%q)", err, file.String())
	}
	if entry["msg"] != "activity recorded" || entry["user"] != "u1" || entry["level"] != "INFO" {
		t.Fatalf("entry = %v", entry)
	}
	if !strings.Contains(console.String(), "activity recorded") {
		t.Fatalf("console = %q", console.String())
	}
	if strings.Contains(file.String(), "hidden") {
		t.Fatalf("debug entry leaked in release mode")
	}
}

func TestRotatingFileDisabled(t *testing.T) {
	if w := rotatingFile(config.LogConfig{}); w != nil {
		t.Fatalf("empty file should disable file output")
	}
	if w := rotatingFile(config.LogConfig{File: t.TempDir() + "/app.log", MaxSizeMB: 1}); w == nil {
		t.Fatalf("expected rotating writer")
	}

	var console bytes.Buffer
	New(&console, nil).Info("console only")
	if !strings.Contains(console.String(), "console only") {
		t.Fatalf("console = %q", console.String())
	}
}
