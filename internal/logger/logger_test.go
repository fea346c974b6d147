package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}

		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNew_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	z, closer, err := newLogger(Config{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}

	z.Info("hidden")
	z.Warn("shown", zap.Int("voices", 3))

	if err := closer(); err != nil {
		t.Fatalf("closer() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output %q contains an info entry at warn level", out)
	}

	if !strings.Contains(out, "shown") || !strings.Contains(out, "voices") {
		t.Errorf("output %q is missing the warn entry", out)
	}
}

func TestNew_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "sfsynth.log")

	var buf bytes.Buffer
	z, closer, err := newLogger(Config{File: path}, &buf)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}

	z.Info("to file")

	if err := closer(); err != nil {
		t.Fatalf("closer() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, want the entry", data)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("New() error = nil, want an error for an unknown level")
	}
}
