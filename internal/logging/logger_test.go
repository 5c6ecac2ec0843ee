package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	scoped := NewComponentLogger(logger, "scan")
	scoped.Info("probed file", String("file", "a.mkv"), Int("chapters", 4))

	line := buf.String()
	if !strings.HasPrefix(line, "INFO scan: probed file") {
		t.Fatalf("unexpected prefix: %q", line)
	}
	if !strings.Contains(line, "file=a.mkv") || !strings.Contains(line, "chapters=4") {
		t.Fatalf("missing attrs: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Warn("skipping", String("path", "my file.mkv"))
	if !strings.Contains(buf.String(), `path="my file.mkv"`) {
		t.Fatalf("expected quoted value: %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("merge done", Int("segments", 3))

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json output: %v (%q)", err, buf.String())
	}
	if decoded["msg"] != "merge done" {
		t.Fatalf("unexpected msg: %v", decoded)
	}
	if decoded["segments"] != float64(3) {
		t.Fatalf("unexpected segments: %v", decoded)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("nothing happens", Error(nil))
}
