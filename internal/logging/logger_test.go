package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"upnext/internal/logging"
)

func TestConsoleLoggerFormatsWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "store")

	logger.Info("hidden at warn")
	logger.Warn("render failed", logging.String("error_kind", "schema"), logging.Error(errors.New("bad table")))

	out := buf.String()
	if strings.Contains(out, "hidden at warn") {
		t.Fatalf("expected info suppressed, got %q", out)
	}
	if !strings.Contains(out, "WARN [store] – render failed") {
		t.Fatalf("missing header in %q", out)
	}
	if !strings.Contains(out, "    - Error kind: schema\n") || !strings.Contains(out, "    - Error: bad table\n") {
		t.Fatalf("missing fields in %q", out)
	}
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller at warn level, got %q", out)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.With(logging.String("path", "/tmp/a.toml")).Debug("document loaded", logging.Int("series", 2))

	out := buf.String()
	if !strings.Contains(out, "DEBUG – document loaded [logger_test.go:") {
		t.Fatalf("expected caller in debug header, got %q", out)
	}
	if !strings.Contains(out, "    path: /tmp/a.toml\n") || !strings.Contains(out, "    series: 2\n") {
		t.Fatalf("missing debug fields in %q", out)
	}
}

func TestConsoleLoggerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Level: "debug", Output: &buf})
	logger.WithGroup("player").Debug("launch", logging.String("binary", "vlc"))
	if !strings.Contains(buf.String(), "    player.binary: vlc\n") {
		t.Fatalf("expected grouped key, got %q", buf.String())
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("series reconciled", logging.Int("pruned", 1))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode json line %q: %v", buf.String(), err)
	}
	if line["msg"] != "series reconciled" || line["level"] != "info" {
		t.Fatalf("unexpected line %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("expected ts key in %v", line)
	}
	if line["pruned"] != float64(1) {
		t.Fatalf("unexpected pruned %v", line["pruned"])
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	if _, err := logging.New(logging.Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"debug":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"error":   slog.LevelError,
	}
	for input, want := range tests {
		got, err := logging.ParseLevel(input)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v want %v", input, got, err, want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected nop logger to be disabled")
	}
	logging.NewComponentLogger(nil, "x").Error("dropped")
	logging.WarnWithContext(nil, "dropped", "test")
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Format: "json", Output: &buf})
	logging.WarnWithContext(logger, "episode check skipped", "episode_check_skipped", logging.String(logging.FieldImpact, "no check"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if line[logging.FieldEventType] != "episode_check_skipped" {
		t.Fatalf("missing event type in %v", line)
	}
	if line[logging.FieldImpact] != "no check" {
		t.Fatalf("expected caller impact kept, got %v", line[logging.FieldImpact])
	}
	if _, ok := line[logging.FieldErrorHint]; !ok {
		t.Fatalf("expected default hint in %v", line)
	}
}

func TestJSONLoggerRendersErrorsAsText(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Level: "warn", Format: "json", Output: &buf})
	logging.WarnWithContext(logger, "document not written", "document_invalid", logging.Error(errors.New("bad table")))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if line["error"] != "bad table" {
		t.Fatalf("expected error text, got %v", line["error"])
	}
	if line[logging.FieldImpact] != "the command continued" {
		t.Fatalf("expected default impact, got %v", line[logging.FieldImpact])
	}
}

func TestConsoleDebugQuotesAmbiguousValues(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Level: "debug", Output: &buf})
	logger.Debug("launch", logging.String("file", "/media/Show A/e1.mkv"), logging.String("binary", ""))

	out := buf.String()
	if !strings.Contains(out, "    file: \"/media/Show A/e1.mkv\"\n") {
		t.Fatalf("expected quoted path, got %q", out)
	}
	if !strings.Contains(out, "    binary: \"\"\n") {
		t.Fatalf("expected quoted empty value, got %q", out)
	}
}
