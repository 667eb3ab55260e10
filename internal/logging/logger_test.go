package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger = WithComponent(logger, "ingest")
	logger.Info("video persisted", String(FieldVideo, "abc123xyz00"), Int("cues", 42))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO ingest: video persisted") {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(line, "video=abc123xyz00") || !strings.Contains(line, "cues=42") {
		t.Fatalf("missing attrs in %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Warn("fetch failed", Error(errors.New("status 429")))
	if !strings.Contains(buf.String(), `error="status 429"`) {
		t.Fatalf("expected quoted error attr, got %q", buf.String())
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("statistics", Int("videos", 3))

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json line: %v", err)
	}
	if decoded["msg"] != "statistics" {
		t.Fatalf("unexpected msg %v", decoded["msg"])
	}
	if decoded["level"] != "info" {
		t.Fatalf("unexpected level %v", decoded["level"])
	}
	if decoded["videos"] != float64(3) {
		t.Fatalf("unexpected videos attr %v", decoded["videos"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("nothing should happen", Error(errors.New("boom")))
}
