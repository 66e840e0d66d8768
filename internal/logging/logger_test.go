package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"loud", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	t.Setenv(LogFileEnvVar, "")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected nop logger when no level is configured")
	}
}

func TestInitializeTo_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autodm.log")
	t.Cleanup(func() { SetLogger(nil) })

	if err := InitializeTo("info", path); err != nil {
		t.Fatalf("InitializeTo() error = %v", err)
	}
	LogStageChange("selection", "comment-config")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Stage changed") {
		t.Errorf("log file missing entry, got %q", data)
	}
}

func TestLogCommand(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	LogCommand("submit_comment", "comment-config", nil)
	LogCommand("submit_message", "message-config", errors.New("blank"))
	LogStageChange("selection", "selection")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Message != "Command applied" {
		t.Errorf("entry 0 = %q", entries[0].Message)
	}
	if entries[1].Message != "Command rejected" {
		t.Errorf("entry 1 = %q", entries[1].Message)
	}
	if got := entries[1].ContextMap()["command"]; got != "submit_message" {
		t.Errorf("command field = %v", got)
	}
}
