package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	prev := logger
	SetLogger(zap.New(core))
	t.Cleanup(func() { logger = prev })
	return logs
}

func TestLogAPICall(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	LogAPICall("get settings", "GET", "/api/settings", 200, 12*time.Millisecond, nil)
	LogAPICall("save settings", "POST", "/api/settings", 500, time.Millisecond, errors.New("boom"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel || entries[0].ContextMap()["path"] != "/api/settings" {
		t.Errorf("success entry = %+v", entries[0])
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].Message != "API call failed" {
		t.Errorf("failure entry = %+v", entries[1])
	}
	if entries[1].ContextMap()["error"] != "boom" {
		t.Errorf("failure entry carries error %v", entries[1].ContextMap()["error"])
	}
}

func TestLogWebSocketMessage_ContentOnlyAtDebug(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)
	LogWebSocketMessage("127.0.0.1:1", "out", 1, []byte(strings.Repeat("x", 300)))

	ctx := logs.All()[0].ContextMap()
	if ctx["message_type"] != "text" || ctx["length"] != int64(300) {
		t.Errorf("context = %v", ctx)
	}
	if content, _ := ctx["content"].(string); len(content) != 256+len("...") {
		t.Errorf("content length = %d, want truncated", len(content))
	}
}

func TestInitialize_SilentWithoutLevel(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	prev := logger
	defer func() { logger = prev }()

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be silent when no level is set")
	}
}

func TestInitializeWithOutput_File(t *testing.T) {
	prev := logger
	defer func() { logger = prev }()

	path := filepath.Join(t.TempDir(), "panel.log")
	if err := InitializeWithOutput("info", path); err != nil {
		t.Fatalf("InitializeWithOutput() error = %v", err)
	}
	Debug("hidden")
	Info("visible", zap.String("page", "alarms"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "visible") || strings.Contains(out, "hidden") {
		t.Errorf("log file = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("file output should not be colored")
	}
}
